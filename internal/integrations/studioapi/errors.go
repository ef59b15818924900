package studioapi

import "errors"

var (
	// ErrTransport возвращается при сетевых ошибках и неуспешных HTTP статусах
	ErrTransport = errors.New("studioapi client: request failed")

	// ErrInvalidResponse возвращается, когда форма ответа нарушает контракт API
	ErrInvalidResponse = errors.New("studioapi client: invalid response")
)
