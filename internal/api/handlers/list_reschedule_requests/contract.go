package list_reschedule_requests

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/reschedule/models"
)

type RescheduleService interface {
	List(ctx context.Context, status *string, limit, offset uint64) (*models.RescheduleRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
