package expiry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingService struct {
	calls atomic.Int64
	err   error
}

func (s *countingService) ExpireOverdue(_ context.Context, _ uint64) (int, error) {
	s.calls.Add(1)
	if s.err != nil {
		return 0, s.err
	}
	return 1, nil
}

func TestWorker_SweepsPeriodically(t *testing.T) {
	service := &countingService{}
	worker := NewWorker(service, 10*time.Millisecond, nopLogger{})

	worker.Start()
	time.Sleep(55 * time.Millisecond)
	worker.Stop()

	assert.GreaterOrEqual(t, service.calls.Load(), int64(3))
}

func TestWorker_StopBeforeFirstTick(t *testing.T) {
	service := &countingService{}
	worker := NewWorker(service, time.Hour, nopLogger{})

	worker.Start()
	worker.Stop()

	assert.Equal(t, int64(0), service.calls.Load())
}

// Ошибка одной итерации не останавливает воркер
func TestWorker_SurvivesSweepErrors(t *testing.T) {
	service := &countingService{err: errors.New("db down")}
	worker := NewWorker(service, 10*time.Millisecond, nopLogger{})

	worker.Start()
	time.Sleep(35 * time.Millisecond)
	worker.Stop()

	assert.GreaterOrEqual(t, service.calls.Load(), int64(2))
}
