package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserMissing        = errors.New("user not informed")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidName        = errors.New("invalid user name")
	ErrInvalidEmail       = errors.New("invalid user email")
	ErrInvalidPassword    = errors.New("invalid user password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidTaskName    = errors.New("invalid task name")
	ErrInvalidPrevision   = errors.New("prevision date missing or in the past")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingParams      = errors.New("missing input parameters")
	ErrMethodNotSupported = errors.New("method does not exist")
)

// User represents a registered account.
type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	PasswordDigest string    `json:"-" db:"password_digest"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Task represents a task owned by a single user. FinishDate stays nil
// while the task is open.
type Task struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	UserID              uuid.UUID  `json:"userId" db:"user_id"`
	Name                string     `json:"name" db:"name"`
	FinishPrevisionDate time.Time  `json:"finishPrevisionDate" db:"finish_prevision_date"`
	FinishDate          *time.Time `json:"finishDate,omitempty" db:"finish_date"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
}

// IsFinished reports whether the task has an actual completion date.
func (t *Task) IsFinished() bool {
	return t.FinishDate != nil
}

// IsOverdue reports whether an open task is past its planned date.
func (t *Task) IsOverdue() bool {
	return !t.IsFinished() && time.Now().After(t.FinishPrevisionDate)
}

// OwnedBy reports whether the task belongs to the given user.
func (t *Task) OwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}
