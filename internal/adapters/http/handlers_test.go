package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasklist/core/internal/domain/entities"
	"github.com/tasklist/core/internal/infrastructure/logger"
	"github.com/tasklist/core/internal/ports"
)

type stubValidator struct {
	validate *validator.Validate
}

func (v *stubValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &stubValidator{validate: validator.New()}
	return e
}

func doRequest(e *echo.Echo, handler echo.HandlerFunc, method, target, body string, userID uuid.UUID) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != uuid.Nil {
		c.Set(ContextUserID, userID)
	}

	_ = handler(c)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ports.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ports.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Msg
}

type stubUserService struct {
	err     error
	created []ports.CreateUserRequest
}

func (s *stubUserService) CreateUser(_ context.Context, req ports.CreateUserRequest) error {
	s.created = append(s.created, req)
	return s.err
}

func (s *stubUserService) GetUser(context.Context, uuid.UUID) (*entities.User, error) {
	return nil, entities.ErrUserNotFound
}

type stubAuthService struct {
	data *ports.LoginData
	err  error
}

func (s *stubAuthService) Login(context.Context, ports.LoginRequest) (*ports.LoginData, error) {
	return s.data, s.err
}

func (s *stubAuthService) ValidateToken(string) (*ports.Claims, error) {
	return nil, errors.New("not implemented")
}

type stubTaskService struct {
	tasks     []*entities.Task
	err       error
	lastQuery ports.TaskQuery
	lastUser  uuid.UUID
	lastTask  uuid.UUID
}

func (s *stubTaskService) CreateTask(_ context.Context, userID uuid.UUID, _ ports.CreateTaskRequest) error {
	s.lastUser = userID
	return s.err
}

func (s *stubTaskService) ListTasks(_ context.Context, userID uuid.UUID, query ports.TaskQuery) ([]*entities.Task, error) {
	s.lastUser = userID
	s.lastQuery = query
	return s.tasks, s.err
}

func (s *stubTaskService) UpdateTask(_ context.Context, userID, taskID uuid.UUID, _ ports.UpdateTaskRequest) error {
	s.lastUser = userID
	s.lastTask = taskID
	return s.err
}

func (s *stubTaskService) DeleteTask(_ context.Context, userID, taskID uuid.UUID) error {
	s.lastUser = userID
	s.lastTask = taskID
	return s.err
}

func TestUserCreateOnlyAcceptsPost(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubUserService{}, logger.NewNop())

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		rec := doRequest(e, handler.Create, method, "/user", "", uuid.Nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, method)
		assert.Equal(t, "Método solicitado não existe.", decodeError(t, rec), method)
	}
}

func TestUserCreateSuccess(t *testing.T) {
	e := newTestEcho()
	svc := &stubUserService{}
	handler := NewUserHandler(svc, logger.NewNop())

	body := `{"name":"Maria Silva","email":"maria@exemplo.com.br","password":"Abcdef1!"}`
	rec := doRequest(e, handler.Create, http.MethodPost, "/user", body, uuid.Nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Usuário adicionado com sucesso!", decodeMsg(t, rec))
	require.Len(t, svc.created, 1)
	assert.Equal(t, "maria@exemplo.com.br", svc.created[0].Email)
}

func TestUserCreateDomainErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{entities.ErrInvalidName, "Nome do usuário inválido."},
		{entities.ErrInvalidEmail, "E-mail do usuário inválido."},
		{entities.ErrInvalidPassword, "Senha de usuário inválida."},
		{entities.ErrEmailTaken, "Já existe usuário com o e-mail informado."},
	}

	e := newTestEcho()
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			handler := NewUserHandler(&stubUserService{err: tt.err}, logger.NewNop())
			rec := doRequest(e, handler.Create, http.MethodPost, "/user", `{"name":"x"}`, uuid.Nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decodeError(t, rec))
		})
	}
}

func TestUserCreateUnexpectedErrorIsGeneric(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubUserService{err: errors.New("pq: connection refused")}, logger.NewNop())

	rec := doRequest(e, handler.Create, http.MethodPost, "/user", `{"name":"x"}`, uuid.Nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Ocorreu erro ao criar usuário, tente novamente.", decodeError(t, rec))
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestLoginResponseShape(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{data: &ports.LoginData{
		Token: "jwt-token",
		Name:  "Maria Silva",
		Email: "maria@exemplo.com.br",
	}}, logger.NewNop())

	body := `{"login":"maria@exemplo.com.br","password":"Abcdef1!"}`
	rec := doRequest(e, handler.Login, http.MethodPost, "/login", body, uuid.Nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data ports.LoginData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jwt-token", resp.Data.Token)
	assert.Equal(t, "Maria Silva", resp.Data.Name)
	assert.Equal(t, "maria@exemplo.com.br", resp.Data.Email)
}

func TestLoginValidatesRequiredFields(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{err: errors.New("must not be reached")}, logger.NewNop())

	for _, body := range []string{
		`{"login":"maria@exemplo.com.br"}`,
		`{"password":"Abcdef1!"}`,
		`{}`,
	} {
		rec := doRequest(e, handler.Login, http.MethodPost, "/login", body, uuid.Nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Parâmetros de entrada inválidos.", decodeError(t, rec), body)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{err: entities.ErrInvalidCredentials}, logger.NewNop())

	body := `{"login":"maria@exemplo.com.br","password":"Errada1!"}`
	rec := doRequest(e, handler.Login, http.MethodPost, "/login", body, uuid.Nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Usuário ou senha inválidos, tente novamente.", decodeError(t, rec))
}

func TestTaskHandleRejectsUnknownMethod(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{}, logger.NewNop())

	rec := doRequest(e, handler.Handle, http.MethodPatch, "/task", "", uuid.New())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Método solicitado não existe.", decodeError(t, rec))
}

func TestTaskCreate(t *testing.T) {
	e := newTestEcho()
	svc := &stubTaskService{}
	handler := NewTaskHandler(svc, logger.NewNop())
	userID := uuid.New()

	body := `{"name":"Lavar o carro","finishPrevisionDate":"2026-09-15"}`
	rec := doRequest(e, handler.Handle, http.MethodPost, "/task", body, userID)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tarefa criada com sucesso!", decodeMsg(t, rec))
	assert.Equal(t, userID, svc.lastUser)
}

func TestTaskListPassesQuery(t *testing.T) {
	e := newTestEcho()
	svc := &stubTaskService{tasks: []*entities.Task{}}
	handler := NewTaskHandler(svc, logger.NewNop())
	userID := uuid.New()

	target := "/task?finishPrevisionStart=2026-09-01&finishPrevisionEnd=2026-09-30&status=1"
	rec := doRequest(e, handler.Handle, http.MethodGet, target, "", userID)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, svc.lastUser)
	assert.Equal(t, "1", svc.lastQuery.Status)
	require.NotNil(t, svc.lastQuery.PrevisionStart)
	require.NotNil(t, svc.lastQuery.PrevisionEnd)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), svc.lastQuery.PrevisionStart.UTC())
}

func TestTaskListRejectsBadDate(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{}, logger.NewNop())

	rec := doRequest(e, handler.Handle, http.MethodGet, "/task?finishPrevisionStart=ontem", "", uuid.New())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Parâmetros de entrada inválidos.", decodeError(t, rec))
}

func TestTaskUpdateRequiresParseableID(t *testing.T) {
	e := newTestEcho()
	svc := &stubTaskService{}
	handler := NewTaskHandler(svc, logger.NewNop())

	for _, target := range []string{"/task", "/task?id=", "/task?id=not-a-uuid"} {
		rec := doRequest(e, handler.Handle, http.MethodPut, target, `{"name":"x"}`, uuid.New())
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "Tarefa não encontrada.", decodeError(t, rec), target)
	}
	assert.Equal(t, uuid.Nil, svc.lastTask)
}

func TestTaskUpdateAndDelete(t *testing.T) {
	e := newTestEcho()
	svc := &stubTaskService{}
	handler := NewTaskHandler(svc, logger.NewNop())
	userID := uuid.New()
	taskID := uuid.New()

	rec := doRequest(e, handler.Handle, http.MethodPut, "/task?id="+taskID.String(), `{"name":"Novo nome"}`, userID)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tarefa atualizada com sucesso.", decodeMsg(t, rec))
	assert.Equal(t, taskID, svc.lastTask)

	rec = doRequest(e, handler.Handle, http.MethodDelete, "/task?id="+taskID.String(), "", userID)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tarefa deletada com sucesso.", decodeMsg(t, rec))
	assert.Equal(t, userID, svc.lastUser)
}

func TestTaskNotFoundMessage(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{err: entities.ErrTaskNotFound}, logger.NewNop())

	rec := doRequest(e, handler.Handle, http.MethodDelete, "/task?id="+uuid.NewString(), "", uuid.New())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Tarefa não encontrada.", decodeError(t, rec))
}
