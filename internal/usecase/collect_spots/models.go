package collect_spots

import (
	"time"

	"github.com/m04kA/SMC-SpotWatcher/internal/domain"
)

// Result итог одного прогона пайплайна. Неизменяем после построения;
// никакое состояние между прогонами не переживает.
type Result struct {
	Spots      []domain.AvailableSpot
	StartedAt  time.Time
	FinishedAt time.Time
	Elapsed    time.Duration
}
