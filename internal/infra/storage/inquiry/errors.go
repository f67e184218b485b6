package inquiry

import "errors"

var (
	// ErrInquiryNotFound возвращается, когда запрос гостя не найден
	ErrInquiryNotFound = errors.New("inquiry.repository: inquiry not found")

	// ErrPropertyNotFound возвращается, когда объект запроса не существует
	ErrPropertyNotFound = errors.New("inquiry.repository: property not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("inquiry.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("inquiry.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("inquiry.repository: failed to scan row")
)
