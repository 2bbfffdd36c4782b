package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/tasklist/core/internal/domain/entities"
	"github.com/tasklist/core/internal/ports"
)

// memUserRepo is an in-memory UserRepository for tests.
type memUserRepo struct {
	users []*entities.User
}

func (r *memUserRepo) Create(_ context.Context, user *entities.User) error {
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *memUserRepo) Authenticate(_ context.Context, login, passwordDigest string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == login && u.PasswordDigest == passwordDigest {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entities.ErrInvalidCredentials
}

// memTaskRepo is an in-memory TaskRepository that applies filters the
// way the SQL implementation does.
type memTaskRepo struct {
	tasks      []*entities.Task
	lastFilter ports.TaskFilter
}

func (r *memTaskRepo) Create(_ context.Context, task *entities.Task) error {
	cp := *task
	r.tasks = append(r.tasks, &cp)
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

func (r *memTaskRepo) Update(_ context.Context, task *entities.Task) error {
	for i, t := range r.tasks {
		if t.ID == task.ID {
			cp := *task
			r.tasks[i] = &cp
			return nil
		}
	}
	return entities.ErrTaskNotFound
}

func (r *memTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return entities.ErrTaskNotFound
}

func (r *memTaskRepo) List(_ context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	r.lastFilter = filter

	var out []*entities.Task
	for _, t := range r.tasks {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.PrevisionStart != nil && t.FinishPrevisionDate.Before(*filter.PrevisionStart) {
			continue
		}
		if filter.PrevisionEnd != nil && t.FinishPrevisionDate.After(*filter.PrevisionEnd) {
			continue
		}
		if filter.Status == ports.StatusOpen && t.IsFinished() {
			continue
		}
		if filter.Status == ports.StatusFinished && !t.IsFinished() {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

// memTaskCache records cache traffic for tests.
type memTaskCache struct {
	lists       map[string][]*entities.Task
	invalidated []uuid.UUID
}

func newMemTaskCache() *memTaskCache {
	return &memTaskCache{lists: make(map[string][]*entities.Task)}
}

func (c *memTaskCache) GetList(_ context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	return c.lists[cacheKey(filter)], nil
}

func (c *memTaskCache) SetList(_ context.Context, filter ports.TaskFilter, tasks []*entities.Task) error {
	c.lists[cacheKey(filter)] = tasks
	return nil
}

func (c *memTaskCache) InvalidateUser(_ context.Context, userID uuid.UUID) error {
	c.invalidated = append(c.invalidated, userID)
	for k := range c.lists {
		delete(c.lists, k)
	}
	return nil
}

func cacheKey(filter ports.TaskFilter) string {
	key := filter.UserID.String()
	if filter.PrevisionStart != nil {
		key += filter.PrevisionStart.String()
	}
	if filter.PrevisionEnd != nil {
		key += filter.PrevisionEnd.String()
	}
	return key + string(rune('0'+int(filter.Status)))
}
