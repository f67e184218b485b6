package formrelay

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("formrelay client: internal error")

	// ErrRejected возвращается, когда сервис отклонил отправку
	ErrRejected = errors.New("formrelay client: submission rejected")

	// ErrUnavailable возвращается, когда сервис недоступен
	ErrUnavailable = errors.New("formrelay client: service unavailable")
)
