package notifier

import (
	"context"

	"github.com/m04kA/SMC-SpotWatcher/internal/domain"
	"github.com/m04kA/SMC-SpotWatcher/internal/integrations/telegram"
	"github.com/m04kA/SMC-SpotWatcher/internal/service/summary"
	collectSpots "github.com/m04kA/SMC-SpotWatcher/internal/usecase/collect_spots"
)

// SpotCollector интерфейс пайплайна сбора свободных мест
type SpotCollector interface {
	Execute(ctx context.Context) (*collectSpots.Result, error)
}

// SummaryFormatter интерфейс форматтера сводок
type SummaryFormatter interface {
	Format(spots []domain.AvailableSpot) *summary.Summary
}

// MessageSender интерфейс клиента доставки уведомлений
type MessageSender interface {
	SendMessage(ctx context.Context, text string) (*telegram.SendMessageResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
