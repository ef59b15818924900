package collect_spots

import "errors"

var (
	// ErrInvalidStartTime возвращается, когда start_time присутствует в записи
	// агенды, но не парсится как timestamp со смещением. Отличается от
	// отсутствующего start_time, который молча пропускается.
	ErrInvalidStartTime = errors.New("invalid start_time value")
)
