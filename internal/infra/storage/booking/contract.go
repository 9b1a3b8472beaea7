package booking

import "github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"

// DBExecutor переиспользуем интерфейс из dbmetrics для работы с БД
// Реализуется *dbmetrics.DB и *dbmetrics.Tx
type DBExecutor = dbmetrics.DBExecutor
