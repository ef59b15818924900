package telegram

import "strings"

// MessageLimit максимальная длина одного сообщения Bot API в символах
const MessageLimit = 4096

// SplitMessage режет длинное сообщение на куски, укладывающиеся в limit.
// Сначала пакует целые строки; строка, сама превышающая limit, нарезается
// на куски фиксированного размера. Контент никогда не теряется: конкатенация
// кусков (с "\n" на границах строк) восстанавливает исходное сообщение.
func SplitMessage(message string, limit int) []string {
	if runeLen(message) <= limit {
		return []string{message}
	}

	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = nil
			currentLen = 0
		}
	}

	for _, line := range strings.Split(message, "\n") {
		lineLen := runeLen(line)

		if lineLen > limit {
			// Гигантская строка: отправляем накопленное и нарезаем её напрямую
			flush()
			runes := []rune(line)
			for start := 0; start < len(runes); start += limit {
				end := start + limit
				if end > len(runes) {
					end = len(runes)
				}
				chunks = append(chunks, string(runes[start:end]))
			}
			continue
		}

		additional := lineLen
		if len(current) > 0 {
			additional = lineLen + 1
		}

		if len(current) > 0 && currentLen+additional > limit {
			flush()
			current = []string{line}
			currentLen = lineLen
		} else {
			if len(current) > 0 {
				currentLen += 1 + lineLen
			} else {
				currentLen = lineLen
			}
			current = append(current, line)
		}
	}

	flush()
	return chunks
}

func runeLen(s string) int {
	return len([]rune(s))
}
