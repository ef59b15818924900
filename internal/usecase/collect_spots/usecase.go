package collect_spots

import (
	"context"

	"github.com/m04kA/SMC-SpotWatcher/internal/domain"
	"github.com/m04kA/SMC-SpotWatcher/internal/integrations/studioapi"
)

// UseCase use case сбора свободных мест: агенда → фильтрация → детали → места
type UseCase struct {
	studioClient StudioClient
	classifier   DayClassifier
	instructorID int64
	windowDays   int
	pages        []int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	studioClient StudioClient,
	classifier DayClassifier,
	instructorID int64,
	windowDays int,
	pages []int,
	logger Logger,
) *UseCase {
	if windowDays <= 0 {
		windowDays = domain.DefaultScheduleWindowDays
	}
	if len(pages) == 0 {
		pages = domain.DefaultSchedulePages
	}
	return &UseCase{
		studioClient: studioClient,
		classifier:   classifier,
		instructorID: instructorID,
		windowDays:   windowDays,
		pages:        pages,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет полный прогон пайплайна. Детали кандидатов загружаются
// строго последовательно в порядке кандидатов; ошибка любого шага прерывает
// прогон целиком — частичный результат не возвращается.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	startedAt := uc.timeProvider.Now()

	// 1. Загружаем агенду за окно по умолчанию
	window := studioapi.Window{
		From: startedAt,
		To:   startedAt.AddDate(0, 0, uc.windowDays),
	}
	uc.logger.Info("CollectSpots: fetching schedule window=%s..%s pages=%v",
		window.From.Format(domain.DateFormat), window.To.Format(domain.DateFormat), uc.pages)

	entries, err := uc.studioClient.FetchSchedule(ctx, window, uc.pages)
	if err != nil {
		uc.logger.Error("CollectSpots: failed to fetch schedule: %v", err)
		return nil, err
	}

	// 2. Фильтруем по инструктору и правилам дня/времени
	candidates, err := filterEvents(entries, uc.instructorID, uc.classifier, uc.logger)
	if err != nil {
		uc.logger.Error("CollectSpots: failed to filter schedule entries: %v", err)
		return nil, err
	}
	uc.logger.Info("CollectSpots: %d of %d schedule entries survived filtering",
		len(candidates), len(entries))

	// 3. Последовательно загружаем детали каждого кандидата и извлекаем места
	spots := make([]domain.AvailableSpot, 0)
	for _, candidate := range candidates {
		detail, err := uc.studioClient.FetchEventDetail(ctx, candidate.Token)
		if err != nil {
			uc.logger.Error("CollectSpots: failed to fetch detail for token=%s: %v", candidate.Token, err)
			return nil, err
		}

		startTime := candidate.StartTime
		spots = append(spots, extractAvailableSpots(detail, &startTime)...)
	}

	// 4. Фиксируем тайминги прогона
	finishedAt := uc.timeProvider.Now()
	result := &Result{
		Spots:      spots,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Elapsed:    finishedAt.Sub(startedAt),
	}

	uc.logger.Info("CollectSpots: collected %d available spots in %.2fs",
		len(spots), result.Elapsed.Seconds())
	return result, nil
}
