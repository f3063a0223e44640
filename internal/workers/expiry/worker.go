package expiry

import (
	"context"
	"time"
)

const sweepBatchSize = 200

// RescheduleService интерфейс сервиса заявок на перенос
type RescheduleService interface {
	ExpireOverdue(ctx context.Context, batchSize uint64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker фоновый процесс истечения просроченных заявок на перенос
type Worker struct {
	service  RescheduleService
	interval time.Duration
	logger   Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWorker создает новый экземпляр воркера
func NewWorker(service RescheduleService, interval time.Duration, logger Logger) *Worker {
	return &Worker{
		service:  service,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start запускает периодическую проверку в отдельной горутине
func (w *Worker) Start() {
	w.logger.Info("expiry worker: started, interval=%s", w.interval)

	go func() {
		defer close(w.doneCh)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.sweep()
			case <-w.stopCh:
				w.logger.Info("expiry worker: stopped")
				return
			}
		}
	}()
}

// Stop останавливает воркер и дожидается завершения текущей итерации
func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *Worker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	expired, err := w.service.ExpireOverdue(ctx, sweepBatchSize)
	if err != nil {
		w.logger.Error("expiry worker: sweep failed: %v", err)
		return
	}

	if expired > 0 {
		w.logger.Info("expiry worker: expired %d requests", expired)
	}
}
