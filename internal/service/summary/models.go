package summary

import (
	"time"

	"github.com/m04kA/SMC-SpotWatcher/internal/domain"
)

// Summary упаковывает сводку в двух представлениях: HTML для Telegram
// и plain text для печати/логов
type Summary struct {
	HTML      string
	PlainText string
}

// eventGroup места одного занятия (один составной ключ событие+время)
type eventGroup struct {
	spots     []domain.AvailableSpot
	startTime *time.Time
}

// dayGroup занятия одной календарной даты, в порядке появления
type dayGroup struct {
	order  []string
	events map[string]*eventGroup
}
