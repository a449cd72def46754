package exchangerate

import "github.com/m04kA/SMC-RentalService/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов (*dbmetrics.DB или транзакция)
type DBExecutor = dbmetrics.DBExecutor
