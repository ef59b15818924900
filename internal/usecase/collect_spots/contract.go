package collect_spots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpotWatcher/internal/domain"
	"github.com/m04kA/SMC-SpotWatcher/internal/integrations/studioapi"
)

// StudioClient интерфейс клиента API расписания студии
type StudioClient interface {
	FetchSchedule(ctx context.Context, window studioapi.Window, pages []int) ([]studioapi.ScheduleEntry, error)
	FetchEventDetail(ctx context.Context, token string) (*studioapi.EventDetail, error)
}

// DayClassifier интерфейс классификатора дней календаря
type DayClassifier interface {
	Classify(t time.Time) domain.DayType
	AdmitsStart(t time.Time) bool
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
