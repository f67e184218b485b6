package inquiries

import "errors"

var (
	// ErrInquiryNotFound возвращается, когда запрос не найден
	ErrInquiryNotFound = errors.New("inquiry not found")

	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("property not found")

	// ErrPropertyInactive возвращается, когда объект снят с публикации
	ErrPropertyInactive = errors.New("property is not accepting inquiries")

	// ErrAccessDenied возвращается, когда пользователь не владелец объекта
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
