package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LeadConsult/alx-files-manager/internal/common"
	"github.com/LeadConsult/alx-files-manager/internal/server/models"
	"github.com/redis/go-redis/v9"
)

// listKey is the Redis list holding pending thumbnail jobs.
const listKey = "thumbnail_jobs"

// RedisQueue implements Queue over a Redis list (LPUSH producer,
// BRPOP consumer). A job popped by a crashing consumer is lost from the
// list, which is why producers may re-enqueue and the worker stays
// idempotent.
type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job models.Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	if err := q.client.LPush(ctx, listKey, payload).Err(); err != nil {
		return fmt.Errorf("%w: queue push: %v", common.ErrorTransientStorage, err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (models.Job, error) {
	var job models.Job

	// Timeout 0 blocks until an element arrives; ctx cancellation
	// interrupts the wait.
	res, err := q.client.BRPop(ctx, 0, listKey).Result()
	if err != nil {
		if ctx.Err() != nil {
			return job, ctx.Err()
		}
		return job, fmt.Errorf("%w: queue pop: %v", common.ErrorTransientStorage, err)
	}

	// BRPOP returns [key, value].
	if len(res) != 2 {
		return job, fmt.Errorf("unexpected BRPOP reply length: %d", len(res))
	}

	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return job, fmt.Errorf("unmarshal job: %w", err)
	}
	return job, nil
}
