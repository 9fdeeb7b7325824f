package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"event-management/internal/status"
	"event-management/models"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAvailability() *models.Availability {
	return &models.Availability{
		EventID:     "evt-1",
		EventTitle:  "Go Conference",
		Capacity:    100,
		Sold:        40,
		Available:   60,
		IsAvailable: true,
	}
}

func TestAvailabilityCache_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewAvailabilityCache(db, 5*time.Second)

	mock.ExpectGet("availability:evt-1").RedisNil()

	got, err := cache.Get(context.Background(), "evt-1")

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityCache_SetThenGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewAvailabilityCache(db, 5*time.Second)

	availability := sampleAvailability()
	data, err := json.Marshal(availability)
	require.NoError(t, err)

	mock.ExpectSet("availability:evt-1", data, 5*time.Second).SetVal("OK")
	mock.ExpectGet("availability:evt-1").SetVal(string(data))

	require.NoError(t, cache.Set(context.Background(), availability))

	got, err := cache.Get(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, availability, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityCache_CorruptEntryIsMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewAvailabilityCache(db, 5*time.Second)

	mock.ExpectGet("availability:evt-1").SetVal("{not json")

	got, err := cache.Get(context.Background(), "evt-1")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAvailabilityCache_Invalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewAvailabilityCache(db, 5*time.Second)

	mock.ExpectDel("availability:evt-1").SetVal(1)

	cache.Invalidate(context.Background(), "evt-1")

	assert.NoError(t, mock.ExpectationsWereMet())
}

type stubChecker struct {
	calls  int
	result *models.Availability
	err    error
}

func (s *stubChecker) Check(ctx context.Context, eventID string) (*models.Availability, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestCachedChecker_HitSkipsCompute(t *testing.T) {
	db, mock := redismock.NewClientMock()
	availability := sampleAvailability()
	data, _ := json.Marshal(availability)

	mock.ExpectGet("availability:evt-1").SetVal(string(data))

	inner := &stubChecker{result: availability}
	checker := NewCachedChecker(inner, NewAvailabilityCache(db, 5*time.Second))

	got, err := checker.Check(context.Background(), "evt-1")

	require.NoError(t, err)
	assert.Equal(t, availability, got)
	assert.Equal(t, 0, inner.calls)
}

func TestCachedChecker_MissComputesAndBackfills(t *testing.T) {
	db, mock := redismock.NewClientMock()
	availability := sampleAvailability()
	data, _ := json.Marshal(availability)

	mock.ExpectGet("availability:evt-1").RedisNil()
	mock.ExpectSet("availability:evt-1", data, 5*time.Second).SetVal("OK")

	inner := &stubChecker{result: availability}
	checker := NewCachedChecker(inner, NewAvailabilityCache(db, 5*time.Second))

	got, err := checker.Check(context.Background(), "evt-1")

	require.NoError(t, err)
	assert.Equal(t, availability, got)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedChecker_ComputeErrorPropagates(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectGet("availability:evt-1").RedisNil()

	inner := &stubChecker{err: fmt.Errorf("%w: event evt-1", status.ErrNotFound)}
	checker := NewCachedChecker(inner, NewAvailabilityCache(db, 5*time.Second))

	_, err := checker.Check(context.Background(), "evt-1")
	require.ErrorIs(t, err, status.ErrNotFound)
}

func TestCachedChecker_RedisDownDegradesToCompute(t *testing.T) {
	db, mock := redismock.NewClientMock()
	availability := sampleAvailability()
	data, _ := json.Marshal(availability)

	mock.ExpectGet("availability:evt-1").SetErr(fmt.Errorf("connection refused"))
	mock.ExpectSet("availability:evt-1", data, 5*time.Second).SetErr(fmt.Errorf("connection refused"))

	inner := &stubChecker{result: availability}
	checker := NewCachedChecker(inner, NewAvailabilityCache(db, 5*time.Second))

	got, err := checker.Check(context.Background(), "evt-1")

	require.NoError(t, err)
	assert.Equal(t, availability, got)
	assert.Equal(t, 1, inner.calls)
}
