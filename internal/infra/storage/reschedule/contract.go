package reschedule

import (
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor
