package reservation

import "github.com/m04kA/ReDe-ReservationService/pkg/dbmetrics"

// DBExecutor переиспользуем интерфейс из dbmetrics
// Подходит *sql.DB, *dbmetrics.DB и транзакции из контекста
type DBExecutor = dbmetrics.DBExecutor
