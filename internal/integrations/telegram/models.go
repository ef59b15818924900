package telegram

import "encoding/json"

// sendMessageRequest тело запроса метода sendMessage Bot API
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
	ParseMode             string `json:"parse_mode,omitempty"`
}

// SendMessageResponse ответ Bot API на отправку сообщения
type SendMessageResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}
