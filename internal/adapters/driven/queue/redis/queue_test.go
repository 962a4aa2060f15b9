package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupQueue creates a queue backed by miniredis
func setupQueue(t *testing.T) (*Queue, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	q, err := NewQueue(client, "worker-test")
	require.NoError(t, err)
	return q, mr
}

func TestNewQueue_RequiresClient(t *testing.T) {
	_, err := NewQueue(nil, "worker-test")
	assert.Error(t, err)
}

func TestNewQueue_Idempotent(t *testing.T) {
	q, _ := setupQueue(t)

	// Creating a second queue against the same stream must not fail
	// on the existing consumer group.
	_, err := NewQueue(q.client, "worker-test-2")
	assert.NoError(t, err)
}

func TestEnqueueDequeue(t *testing.T) {
	q, _ := setupQueue(t)
	ctx := context.Background()

	task := domain.NewTranscribeTask("office-1", "case-1")
	require.NoError(t, q.Enqueue(ctx, task))

	got, err := q.DequeueWithTimeout(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, domain.TaskTypeTranscribeCase, got.Type)
	assert.Equal(t, "office-1", got.OfficeID)
	assert.Equal(t, "case-1", got.Payload["case_id"])
	assert.Equal(t, domain.TaskStatusProcessing, got.Status)
	assert.Equal(t, 1, got.Attempts)
}

func TestEnqueue_NilTask(t *testing.T) {
	q, _ := setupQueue(t)

	err := q.Enqueue(context.Background(), nil)
	assert.Error(t, err)
}

func TestDequeue_EmptyQueue(t *testing.T) {
	q, _ := setupQueue(t)

	got, err := q.DequeueWithTimeout(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAck_CompletesTask(t *testing.T) {
	q, _ := setupQueue(t)
	ctx := context.Background()

	task := domain.NewTranscribeTask("office-1", "case-1")
	require.NoError(t, q.Enqueue(ctx, task))

	got, err := q.DequeueWithTimeout(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NoError(t, q.Ack(ctx, got.ID))

	stored, err := q.GetTask(ctx, got.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.TaskStatusCompleted, stored.Status)
	assert.NotNil(t, stored.CompletedAt)

	// Task must not come around again
	again, err := q.DequeueWithTimeout(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestNack_SchedulesRetry(t *testing.T) {
	q, _ := setupQueue(t)
	ctx := context.Background()

	task := domain.NewTranscribeTask("office-1", "case-1")
	require.NoError(t, q.Enqueue(ctx, task))

	got, err := q.DequeueWithTimeout(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NoError(t, q.Nack(ctx, got.ID, "form-filler unavailable"))

	stored, err := q.GetTask(ctx, got.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.TaskStatusPending, stored.Status)
	assert.Equal(t, "form-filler unavailable", stored.Error)
	assert.True(t, stored.ScheduledFor.After(time.Now()), "retry should be delayed")

	// The retry waits in the scheduled set, not the stream
	score, err := q.client.ZScore(ctx, scheduledTasks, got.ID).Result()
	require.NoError(t, err)
	assert.InDelta(t, float64(stored.ScheduledFor.Unix()), score, 1)
}

func TestNack_ExhaustedAttemptsFails(t *testing.T) {
	q, _ := setupQueue(t)
	ctx := context.Background()

	task := domain.NewTranscribeTask("office-1", "case-1")
	task.MaxAttempts = 1
	require.NoError(t, q.Enqueue(ctx, task))

	got, err := q.DequeueWithTimeout(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NoError(t, q.Nack(ctx, got.ID, "template corrupt"))

	stored, err := q.GetTask(ctx, got.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.TaskStatusFailed, stored.Status)
	assert.Equal(t, "template corrupt", stored.Error)
}

func TestScheduledTask_PromotedWhenDue(t *testing.T) {
	q, _ := setupQueue(t)
	ctx := context.Background()

	task := domain.NewTranscribeTask("office-1", "case-1")
	task.ScheduledFor = time.Now().Add(time.Hour)
	require.NoError(t, q.Enqueue(ctx, task))

	// Not due yet
	got, err := q.DequeueWithTimeout(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Make it due
	err = q.client.ZAdd(ctx, scheduledTasks, goredis.Z{
		Score:  float64(time.Now().Add(-time.Minute).Unix()),
		Member: task.ID,
	}).Err()
	require.NoError(t, err)

	got, err = q.DequeueWithTimeout(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, task.ID, got.ID)

	// Promoted task leaves the scheduled set
	_, err = q.client.ZScore(ctx, scheduledTasks, task.ID).Result()
	assert.ErrorIs(t, err, goredis.Nil)
}

func TestGetTask_Missing(t *testing.T) {
	q, _ := setupQueue(t)

	got, err := q.GetTask(context.Background(), "no-such-task")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPing(t *testing.T) {
	q, mr := setupQueue(t)

	assert.NoError(t, q.Ping(context.Background()))

	mr.Close()
	assert.Error(t, q.Ping(context.Background()))
}
