// File: api/shutdown.go
// Package api defines unified graceful shutdown contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// GracefulShutdown объединяет логику корректного завершения планировщиков.
type GracefulShutdown interface {
	// Shutdown выполняет корректную остановку всех рабочих потоков
	// и освобождение ресурсов. Возвращает ошибку при неудаче.
	Shutdown() error
}
