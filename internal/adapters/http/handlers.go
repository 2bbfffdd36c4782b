package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tasklist/core/internal/domain/entities"
	"github.com/tasklist/core/internal/infrastructure/logger"
	"github.com/tasklist/core/internal/ports"
)

// ContextUserID is the echo context key holding the authenticated user id.
const ContextUserID = "user_id"

// User-facing messages, kept in Portuguese as in the original product.
const (
	msgUserCreated   = "Usuário adicionado com sucesso!"
	msgTaskCreated   = "Tarefa criada com sucesso!"
	msgTaskUpdated   = "Tarefa atualizada com sucesso."
	msgTaskDeleted   = "Tarefa deletada com sucesso."
	msgInvalidParams = "Parâmetros de entrada inválidos."

	msgUserError  = "Ocorreu erro ao criar usuário, tente novamente."
	msgLoginError = "Ocorreu erro ao efetuar login, tente novamente."
	msgTaskError  = "Ocorreu erro ao gerenciar tarefas, tente novamente."
)

// errorMessages maps domain errors to their wire messages. Anything not
// listed here is an unexpected failure and surfaces as a generic 500.
var errorMessages = []struct {
	err error
	msg string
}{
	{entities.ErrInvalidName, "Nome do usuário inválido."},
	{entities.ErrInvalidEmail, "E-mail do usuário inválido."},
	{entities.ErrInvalidPassword, "Senha de usuário inválida."},
	{entities.ErrEmailTaken, "Já existe usuário com o e-mail informado."},
	{entities.ErrMissingParams, msgInvalidParams},
	{entities.ErrInvalidCredentials, "Usuário ou senha inválidos, tente novamente."},
	{entities.ErrUserMissing, "Usuário não informado"},
	{entities.ErrUserNotFound, "Usuário não encontrado"},
	{entities.ErrInvalidTaskName, "Nome da tarefa inválida."},
	{entities.ErrInvalidPrevision, "Data de previsão inválida ou menor que hoje."},
	{entities.ErrTaskNotFound, "Tarefa não encontrada."},
	{entities.ErrMethodNotSupported, "Método solicitado não existe."},
}

// respondError renders a known domain error as 400 with its message, or
// logs the underlying failure and answers a generic 500. The real error
// is never echoed to the caller.
func respondError(c echo.Context, log *logger.Logger, err error, fallback string) error {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: m.msg})
		}
	}

	log.Errorw("Request failed", "error", err, "path", c.Request().URL.Path)
	return c.JSON(http.StatusInternalServerError, ports.ErrorResponse{Error: fallback})
}

// UserIDFromContext extracts the authenticated user id set by the auth
// middleware, or uuid.Nil when absent.
func UserIDFromContext(c echo.Context) uuid.UUID {
	userID, ok := c.Get(ContextUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// UserHandler handles account creation
type UserHandler struct {
	userService ports.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService ports.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// Create handles /user. Only POST is supported; anything else answers
// the same "method does not exist" message the task endpoint uses.
func (h *UserHandler) Create(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return respondError(c, h.logger, entities.ErrMethodNotSupported, msgUserError)
	}

	var req ports.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: msgInvalidParams})
	}

	if err := h.userService.CreateUser(c.Request().Context(), req); err != nil {
		return respondError(c, h.logger, err, msgUserError)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Msg: msgUserCreated})
}

// AuthHandler handles login
type AuthHandler struct {
	authService ports.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles POST /login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: msgInvalidParams})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: msgInvalidParams})
	}

	data, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, err, msgLoginError)
	}

	return c.JSON(http.StatusOK, ports.DataResponse{Data: data})
}

// TaskHandler serves the /task endpoint, dispatching by HTTP verb
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// Handle dispatches /task by method. The auth middleware has already
// resolved the caller's identity into the context.
func (h *TaskHandler) Handle(c echo.Context) error {
	userID := UserIDFromContext(c)

	switch c.Request().Method {
	case http.MethodPost:
		return h.create(c, userID)
	case http.MethodGet:
		return h.list(c, userID)
	case http.MethodPut:
		return h.update(c, userID)
	case http.MethodDelete:
		return h.delete(c, userID)
	default:
		return respondError(c, h.logger, entities.ErrMethodNotSupported, msgTaskError)
	}
}

func (h *TaskHandler) create(c echo.Context, userID uuid.UUID) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: msgInvalidParams})
	}

	if err := h.taskService.CreateTask(c.Request().Context(), userID, req); err != nil {
		return respondError(c, h.logger, err, msgTaskError)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Msg: msgTaskCreated})
}

func (h *TaskHandler) list(c echo.Context, userID uuid.UUID) error {
	start, err := ports.ParseDate(c.QueryParam("finishPrevisionStart"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: msgInvalidParams})
	}

	end, err := ports.ParseDate(c.QueryParam("finishPrevisionEnd"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: msgInvalidParams})
	}

	query := ports.TaskQuery{
		PrevisionStart: start,
		PrevisionEnd:   end,
		Status:         c.QueryParam("status"),
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), userID, query)
	if err != nil {
		return respondError(c, h.logger, err, msgTaskError)
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) update(c echo.Context, userID uuid.UUID) error {
	taskID, err := uuid.Parse(c.QueryParam("id"))
	if err != nil {
		// An unparseable or missing id behaves like a missing task.
		return respondError(c, h.logger, entities.ErrTaskNotFound, msgTaskError)
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: msgInvalidParams})
	}

	if err := h.taskService.UpdateTask(c.Request().Context(), userID, taskID, req); err != nil {
		return respondError(c, h.logger, err, msgTaskError)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Msg: msgTaskUpdated})
}

func (h *TaskHandler) delete(c echo.Context, userID uuid.UUID) error {
	taskID, err := uuid.Parse(c.QueryParam("id"))
	if err != nil {
		return respondError(c, h.logger, entities.ErrTaskNotFound, msgTaskError)
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), userID, taskID); err != nil {
		return respondError(c, h.logger, err, msgTaskError)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Msg: msgTaskDeleted})
}
