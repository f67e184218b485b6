package availability

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект для записи дня не существует
	ErrPropertyNotFound = errors.New("availability.repository: property not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")

	// ErrConstraint возвращается при нарушении ограничений таблицы (например, CHECK на статус)
	ErrConstraint = errors.New("availability.repository: constraint violation")
)
