package telegram

import "errors"

var (
	// ErrMissingToken возвращается, когда токен бота не сконфигурирован
	ErrMissingToken = errors.New("telegram client: bot token is not configured")

	// ErrMissingChatID возвращается, когда идентификатор чата не сконфигурирован
	ErrMissingChatID = errors.New("telegram client: chat id is not configured")

	// ErrTransport возвращается при сетевых ошибках и неуспешных HTTP статусах
	ErrTransport = errors.New("telegram client: request failed")
)
