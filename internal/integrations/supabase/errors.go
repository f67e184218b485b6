package supabase

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("supabase client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("supabase client: invalid response")

	// ErrUnauthorized возвращается, когда ключ API отклонен
	ErrUnauthorized = errors.New("supabase client: unauthorized")

	// ErrUnavailable возвращается, когда сервис недоступен или ответил 5xx
	ErrUnavailable = errors.New("supabase client: service unavailable")
)
