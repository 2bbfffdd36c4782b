package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tasklist/core/internal/domain/entities"
	"github.com/tasklist/core/internal/ports"
)

const taskKeyPrefix = "tasks:"

// TaskCache caches task listings in Redis, keyed per user and filter.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached listing for the filter, or nil on a miss.
func (c *TaskCache) GetList(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	b, err := c.rdb.Get(ctx, listKey(filter)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tasks []*entities.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SetList stores a listing for the filter.
func (c *TaskCache) SetList(ctx context.Context, filter ports.TaskFilter, tasks []*entities.Task) error {
	b, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(filter), b, c.ttl).Err()
}

// InvalidateUser drops every cached listing for the user.
func (c *TaskCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	pattern := taskKeyPrefix + userID.String() + ":*"

	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// listKey renders the filter into a stable cache key.
func listKey(filter ports.TaskFilter) string {
	start, end := int64(0), int64(0)
	if filter.PrevisionStart != nil {
		start = filter.PrevisionStart.Unix()
	}
	if filter.PrevisionEnd != nil {
		end = filter.PrevisionEnd.Unix()
	}
	return fmt.Sprintf("%s%s:%d:%d:%d", taskKeyPrefix, filter.UserID, start, end, filter.Status)
}
