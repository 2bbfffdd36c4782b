package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tasklist/core/internal/domain/entities"
	"github.com/tasklist/core/internal/infrastructure/logger"
	"github.com/tasklist/core/internal/ports"
)

// TaskService handles task operations, always scoped to the owning user
type TaskService struct {
	taskRepo ports.TaskRepository
	userRepo ports.UserRepository
	cache    ports.TaskCache
	logger   *logger.Logger
}

// NewTaskService creates a new task service. cache may be nil when the
// listing cache is disabled.
func NewTaskService(taskRepo ports.TaskRepository, userRepo ports.UserRepository, cache ports.TaskCache, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		cache:    cache,
		logger:   logger,
	}
}

// CreateTask validates and persists a new task for the given user. The
// actual completion date is always discarded: a task cannot be created
// already finished.
func (s *TaskService) CreateTask(ctx context.Context, userID uuid.UUID, req ports.CreateTaskRequest) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}

	if len(req.Name) < 2 {
		return entities.ErrInvalidTaskName
	}

	if req.FinishPrevisionDate == nil || req.FinishPrevisionDate.Before(startOfToday()) {
		return entities.ErrInvalidPrevision
	}

	task := &entities.Task{
		ID:                  uuid.New(),
		UserID:              userID,
		Name:                req.Name,
		FinishPrevisionDate: req.FinishPrevisionDate.Time,
		FinishDate:          nil,
		CreatedAt:           time.Now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID, "user_id", userID)
	s.invalidateCache(ctx, userID)

	return nil
}

// ListTasks returns the user's tasks narrowed by the optional prevision
// date range and status code.
func (s *TaskService) ListTasks(ctx context.Context, userID uuid.UUID, query ports.TaskQuery) ([]*entities.Task, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	filter := buildFilter(userID, query)

	if s.cache != nil {
		tasks, err := s.cache.GetList(ctx, filter)
		if err != nil {
			s.logger.Warnw("Task cache read failed", "error", err, "user_id", userID)
		} else if tasks != nil {
			return tasks, nil
		}
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, filter, tasks); err != nil {
			s.logger.Warnw("Task cache write failed", "error", err, "user_id", userID)
		}
	}

	return tasks, nil
}

// UpdateTask applies a partial overwrite to an owned task. A task that
// does not exist and a task owned by someone else report the same error.
// An already-set finish date cannot be cleared through this path, only
// replaced.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req ports.UpdateTaskRequest) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}

	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if strings.TrimSpace(req.Name) != "" {
		task.Name = req.Name
	}
	if req.FinishPrevisionDate != nil {
		task.FinishPrevisionDate = req.FinishPrevisionDate.Time
	}
	if req.FinishDate != nil {
		finish := req.FinishDate.Time
		task.FinishDate = &finish
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	s.logger.Infow("Task updated", "task_id", task.ID, "user_id", userID)
	s.invalidateCache(ctx, userID)

	return nil
}

// DeleteTask removes an owned task, with the same not-found collapsing
// as UpdateTask.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}

	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.logger.Infow("Task deleted", "task_id", task.ID, "user_id", userID)
	s.invalidateCache(ctx, userID)

	return nil
}

func (s *TaskService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return entities.ErrUserMissing
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return entities.ErrUserNotFound
	}
	return nil
}

func (s *TaskService) ownedTask(ctx context.Context, userID, taskID uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil || !task.OwnedBy(userID) {
		return nil, entities.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) invalidateCache(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warnw("Task cache invalidation failed", "error", err, "user_id", userID)
	}
}

func buildFilter(userID uuid.UUID, query ports.TaskQuery) ports.TaskFilter {
	filter := ports.TaskFilter{
		UserID: userID,
		Status: ports.ParseStatusFilter(query.Status),
	}
	if query.PrevisionStart != nil {
		start := query.PrevisionStart.Time
		filter.PrevisionStart = &start
	}
	if query.PrevisionEnd != nil {
		end := query.PrevisionEnd.Time
		filter.PrevisionEnd = &end
	}
	return filter
}

func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
