package kv

import "errors"

var (
	// ErrNotFound возвращается, когда ключ отсутствует в хранилище
	ErrNotFound = errors.New("kv.repository: key not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("kv.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("kv.repository: failed to execute query")

	// ErrTransaction возвращается при ошибке открытия или фиксации транзакции
	ErrTransaction = errors.New("kv.repository: transaction failed")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("kv.repository: failed to scan row")
)
