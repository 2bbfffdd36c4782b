package ports

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/tasklist/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// Authenticate resolves the user whose login and stored password
	// digest both match. Credential comparison happens in the store so
	// that a miss on either field is indistinguishable to callers.
	Authenticate(ctx context.Context, login, passwordDigest string) (*entities.User, error)
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
}

// TaskCache caches task listings per filter and drops a user's entries
// when any of their tasks change.
type TaskCache interface {
	GetList(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	SetList(ctx context.Context, filter TaskFilter, tasks []*entities.Task) error
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}

// StatusFilter narrows task listings by completion state.
type StatusFilter int

const (
	StatusAny      StatusFilter = iota // no completion predicate
	StatusOpen                         // finish date absent
	StatusFinished                     // finish date present
)

// ParseStatusFilter maps the wire status code to a filter variant:
// "1" keeps only open tasks, "2" only finished ones, any other value
// (including garbage) applies no status predicate.
func ParseStatusFilter(raw string) StatusFilter {
	code, err := strconv.Atoi(raw)
	if err != nil {
		return StatusAny
	}
	switch code {
	case 1:
		return StatusOpen
	case 2:
		return StatusFinished
	default:
		return StatusAny
	}
}

// TaskFilter is the typed predicate set for task listings. UserID is
// always set; the remaining predicates are optional and composed
// explicitly rather than mutated into an untyped query object.
type TaskFilter struct {
	UserID         uuid.UUID
	PrevisionStart *time.Time // inclusive lower bound on the planned date
	PrevisionEnd   *time.Time // inclusive upper bound on the planned date
	Status         StatusFilter
}
