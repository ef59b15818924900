package collect_spots

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SpotWatcher/internal/domain"
	"github.com/m04kA/SMC-SpotWatcher/internal/integrations/studioapi"
)

// extractAvailableSpots извлекает свободные места из payload события, сохраняя
// порядок map_spots. Место свободно, только если у него нет бронирований и не
// стоит флаг maintenance; отсутствующие поля трактуются как пустой список и false.
func extractAvailableSpots(detail *studioapi.EventDetail, startTime *time.Time) []domain.AvailableSpot {
	var nickname, firstName, lastName, tagline string
	if detail.InstructorDetail != nil {
		nickname = detail.InstructorDetail.Nickname
		firstName = detail.InstructorDetail.FirstName
		lastName = detail.InstructorDetail.LastName
		tagline = detail.InstructorDetail.Tagline
	}

	spots := make([]domain.AvailableSpot, 0, len(detail.MapSpots))

	for _, seat := range detail.MapSpots {
		if len(seat.Bookings) > 0 || seat.Maintenance {
			continue
		}

		spots = append(spots, domain.AvailableSpot{
			Token:     detail.Token,
			SpotCode:  seat.Code,
			EventName: detail.Name,
			EventHour: detail.EventHour,
			Duration: domain.Duration{
				Minutes: detail.DurationTime.Minutes,
				Label:   detail.DurationTime.Label,
			},
			InstructorNickname: nickname,
			InstructorName:     instructorFullName(firstName, lastName),
			InstructorTagline:  tagline,
			StartTime:          startTime,
		})
	}

	return spots
}

// instructorFullName склеивает имя и фамилию через пробел, опуская пустые части
func instructorFullName(firstName, lastName string) string {
	parts := make([]string, 0, 2)
	if firstName != "" {
		parts = append(parts, firstName)
	}
	if lastName != "" {
		parts = append(parts, lastName)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
