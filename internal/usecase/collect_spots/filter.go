package collect_spots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpotWatcher/internal/domain"
	"github.com/m04kA/SMC-SpotWatcher/internal/integrations/studioapi"
)

// filterEvents применяет бизнес-правила к записям агенды, сохраняя входной порядок.
// Запись выбывает, если: инструктор не совпадает; closed_at ненулевой (слот уже
// не бронируется); start_time отсутствует (молчаливый пропуск — мусор от upstream);
// день/время не проходят правило вечернего порога. Присутствующий, но
// некорректный start_time — ошибка, а не пропуск.
func filterEvents(
	entries []studioapi.ScheduleEntry,
	instructorID int64,
	classifier DayClassifier,
	logger Logger,
) ([]domain.CandidateEvent, error) {
	candidates := make([]domain.CandidateEvent, 0, len(entries))

	for _, entry := range entries {
		if entry.Instructor != instructorID {
			continue
		}

		if entry.ClosedAt != nil {
			continue
		}

		if entry.StartTime == "" {
			logger.Warn("CollectSpots: skipping schedule entry token=%s without start_time", entry.Token)
			continue
		}

		startTime, err := time.Parse(time.RFC3339, entry.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStartTime, entry.StartTime)
		}

		if !classifier.AdmitsStart(startTime) {
			continue
		}

		candidates = append(candidates, domain.CandidateEvent{
			Token:     entry.Token,
			StartTime: startTime,
		})
	}

	return candidates, nil
}
