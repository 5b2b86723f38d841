package profileinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abraxas-365/sift/screening/profile"
)

// RedisTaskQueue implements TaskQueue using a Redis list plus a sorted set
// for delayed tasks.
type RedisTaskQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisTaskQueue creates a new Redis-based task queue
func NewRedisTaskQueue(client *redis.Client, queueName string) profile.TaskQueue {
	return &RedisTaskQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue adds a task to the queue
func (q *RedisTaskQueue) Enqueue(ctx context.Context, task *profile.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task %s: %w", task.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue task %s: %w", task.ID, err)
	}
	return nil
}

// Dequeue pops a task, blocking up to timeout. Returns nil when the queue
// stayed empty.
func (q *RedisTaskQueue) Dequeue(ctx context.Context, timeout time.Duration) (*profile.Task, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue task: %w", err)
	}
	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var task profile.Task
	if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
		return nil, fmt.Errorf("unmarshal task payload: %w", err)
	}
	return &task, nil
}

// EnqueueDelayed schedules a task for later processing (retries)
func (q *RedisTaskQueue) EnqueueDelayed(ctx context.Context, task *profile.Task, delay time.Duration) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal delayed task %s: %w", task.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedQueue(), redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed task %s: %w", task.ID, err)
	}
	return nil
}

// MoveDelayedToReady moves due delayed tasks onto the main queue
func (q *RedisTaskQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := float64(time.Now().Unix())

	tasks, err := q.client.ZRangeByScore(ctx, q.delayedQueue(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed tasks: %w", err)
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	pipe := q.client.Pipeline()
	for _, t := range tasks {
		pipe.LPush(ctx, q.queueName, t)
		pipe.ZRem(ctx, q.delayedQueue(), t)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed tasks to ready: %w", err)
	}
	return len(tasks), nil
}

// Size returns the number of ready tasks
func (q *RedisTaskQueue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}

func (q *RedisTaskQueue) delayedQueue() string {
	return q.queueName + ":delayed"
}
