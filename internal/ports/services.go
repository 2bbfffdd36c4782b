package ports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tasklist/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginData, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// UserService interface for account operations
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) error
	GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// TaskService interface for task management operations
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, req CreateTaskRequest) error
	ListTasks(ctx context.Context, userID uuid.UUID, query TaskQuery) ([]*entities.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req UpdateTaskRequest) error
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

// Date accepts both date-only and timestamp inputs on the wire.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON parses a quoted date in any of the accepted layouts.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		return nil
	}
	return d.parse(s)
}

// MarshalJSON renders the date as RFC 3339.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.RFC3339) + `"`), nil
}

func (d *Date) parse(s string) error {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

// ParseDate parses a query-string date in any of the accepted layouts.
func ParseDate(s string) (*Date, error) {
	if s == "" {
		return nil, nil
	}
	var d Date
	if err := d.parse(s); err != nil {
		return nil, err
	}
	return &d, nil
}

// Request/Response Types

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginData is the payload returned under "data" on successful login.
type LoginData struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Claims is the identity resolved from a validated token.
type Claims struct {
	UserID uuid.UUID
}

type CreateTaskRequest struct {
	Name                string `json:"name"`
	FinishPrevisionDate *Date  `json:"finishPrevisionDate"`
	// Accepted on the wire but always discarded: a task cannot be
	// created already finished.
	FinishDate *Date `json:"finishDate"`
}

type UpdateTaskRequest struct {
	Name                string `json:"name"`
	FinishPrevisionDate *Date  `json:"finishPrevisionDate"`
	FinishDate          *Date  `json:"finishDate"`
}

// TaskQuery carries the raw listing predicates from the query string.
type TaskQuery struct {
	PrevisionStart *Date
	PrevisionEnd   *Date
	Status         string
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse wraps a payload under "data", the shape the login UI reads.
type DataResponse struct {
	Data interface{} `json:"data"`
}
