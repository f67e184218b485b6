package calendarsessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("calendar session not found")

	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("property not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец объекта или сессии
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrConflict возвращается, когда операция недопустима в текущем состоянии календаря
	ErrConflict = errors.New("operation not allowed in current calendar state")

	// ErrPersistFailed возвращается, когда изменение дня не сохранено
	ErrPersistFailed = errors.New("failed to save day")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
