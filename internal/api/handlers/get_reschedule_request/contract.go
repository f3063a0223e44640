package get_reschedule_request

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/reschedule/models"
)

type RescheduleService interface {
	GetByID(ctx context.Context, id int64) (*models.RescheduleRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
