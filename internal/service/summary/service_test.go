package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpotWatcher/internal/domain"
	"github.com/m04kA/SMC-SpotWatcher/pkg/ptr"
)

// stubLogger no-op логгер для тестов
type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

func testStart(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return &parsed
}

func testSpot(t *testing.T, token, code, start string) domain.AvailableSpot {
	t.Helper()
	return domain.AvailableSpot{
		Token:              token,
		SpotCode:           code,
		EventName:          "Bike 45",
		EventHour:          "20:00",
		Duration:           domain.Duration{Minutes: ptr.Ptr(45.0)},
		InstructorNickname: "Cacau",
		InstructorName:     "Carolina Souza",
		InstructorTagline:  "Ride hard",
		StartTime:          testStart(t, start),
	}
}

func TestFormatEmpty(t *testing.T) {
	svc := NewService(stubLogger{})

	summary := svc.Format(nil)

	assert.Equal(t, "Nenhuma vaga disponível encontrada no período consultado.", summary.PlainText)
	assert.Equal(t, "<b>Nenhuma vaga disponível encontrada no período consultado.</b>", summary.HTML)
}

func TestFormatSingleSpot(t *testing.T) {
	svc := NewService(stubLogger{})

	summary := svc.Format([]domain.AvailableSpot{
		testSpot(t, "evt-1", "8", "2025-11-14T20:00:00-03:00"),
	})

	plain := summary.PlainText
	assert.Contains(t, plain, "🏋️‍♀️ Vagas de aula liberadas!")
	assert.Contains(t, plain, "📅 14/11/2025 (Sexta-feira)")
	assert.Contains(t, plain, "│ 🕒 20:00 • 45 min")
	assert.Contains(t, plain, "│ 🎯 Bike 45")
	assert.Contains(t, plain, "│ 👤 Carolina Souza (Cacau)")
	assert.Contains(t, plain, "│ ✨ Ride hard")
	assert.Contains(t, plain, "│ 🚲 1 bike livre: 8")
	assert.Contains(t, plain, "Boas pedaladas! 🚴‍♀️")

	html := summary.HTML
	assert.Contains(t, html, "<b>🏋️‍♀️ Vagas de aula liberadas!</b>")
	assert.Contains(t, html, "<b>📅 14/11/2025 (Sexta-feira)</b>")
	assert.Contains(t, html, "<b>1 bike livre:</b> 8")
	assert.Contains(t, html, "<i>Boas pedaladas! 🚴‍♀️</i>")
}

func TestFormatMergesSeatsOfSameEvent(t *testing.T) {
	svc := NewService(stubLogger{})

	summary := svc.Format([]domain.AvailableSpot{
		testSpot(t, "evt-1", "5", "2025-11-14T20:00:00-03:00"),
		testSpot(t, "evt-1", "8", "2025-11-14T20:00:00-03:00"),
	})

	// Одно занятие — один блок, все коды в одной строке
	assert.Equal(t, 1, strings.Count(summary.PlainText, "🎯"))
	assert.Contains(t, summary.PlainText, "2 bikes livres: 5, 8")
	assert.Contains(t, summary.HTML, "<b>2 bikes livres:</b> 5 • 8")
}

func TestFormatSeparatesEventsOfSameDay(t *testing.T) {
	svc := NewService(stubLogger{})

	summary := svc.Format([]domain.AvailableSpot{
		testSpot(t, "evt-1", "5", "2025-11-14T20:00:00-03:00"),
		testSpot(t, "evt-2", "8", "2025-11-14T21:00:00-03:00"),
	})

	// Одна дата, два блока с разделителем между ними
	assert.Equal(t, 1, strings.Count(summary.PlainText, "📅 14/11/2025"))
	assert.Equal(t, 2, strings.Count(summary.PlainText, "🎯"))
	assert.Equal(t, 1, strings.Count(summary.PlainText, eventSeparator))
}

func TestFormatSortsByStartTime(t *testing.T) {
	svc := NewService(stubLogger{})

	summary := svc.Format([]domain.AvailableSpot{
		testSpot(t, "evt-late", "5", "2025-11-21T20:00:00-03:00"),
		testSpot(t, "evt-early", "8", "2025-11-14T20:00:00-03:00"),
	})

	first := strings.Index(summary.PlainText, "📅 14/11/2025")
	second := strings.Index(summary.PlainText, "📅 21/11/2025")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestFormatUnknownDateGroupLast(t *testing.T) {
	svc := NewService(stubLogger{})

	undated := domain.AvailableSpot{
		Token:     "evt-undated",
		SpotCode:  "3",
		EventName: "Bike 45",
		EventHour: "10:00",
	}

	summary := svc.Format([]domain.AvailableSpot{
		undated,
		testSpot(t, "evt-1", "8", "2025-11-14T20:00:00-03:00"),
	})

	dated := strings.Index(summary.PlainText, "📅 14/11/2025")
	unknown := strings.Index(summary.PlainText, unknownDateHeader)
	require.GreaterOrEqual(t, dated, 0)
	require.GreaterOrEqual(t, unknown, 0)
	assert.Less(t, dated, unknown)
}

func TestFormatEscapesHTML(t *testing.T) {
	svc := NewService(stubLogger{})

	spot := testSpot(t, "evt-1", "8", "2025-11-14T20:00:00-03:00")
	spot.EventName = "Bike & Burn <3"

	summary := svc.Format([]domain.AvailableSpot{spot})

	assert.Contains(t, summary.HTML, "Bike &amp; Burn &lt;3")
	assert.Contains(t, summary.PlainText, "Bike & Burn <3")
}

func TestFormatSpotsWithoutCodes(t *testing.T) {
	svc := NewService(stubLogger{})

	spot := testSpot(t, "evt-1", "", "2025-11-14T20:00:00-03:00")

	summary := svc.Format([]domain.AvailableSpot{spot})
	assert.Contains(t, summary.PlainText, noCodedBikesMessage)
}

func TestDurationLabel(t *testing.T) {
	tests := []struct {
		name     string
		duration domain.Duration
		want     string
	}{
		{"minutes", domain.Duration{Minutes: ptr.Ptr(45.0)}, "45 min"},
		{"fractional minutes", domain.Duration{Minutes: ptr.Ptr(7.5)}, "7.5 min"},
		{"preformatted label", domain.Duration{Label: "45min"}, "45min"},
		{"missing", domain.Duration{}, unknownDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, durationLabel(tt.duration))
		})
	}
}

func TestInstructorLabel(t *testing.T) {
	tests := []struct {
		name     string
		spotName string
		nickname string
		want     string
	}{
		{"distinct nickname", "Carolina Souza", "Cacau", "Carolina Souza (Cacau)"},
		{"nickname contained in name wins as-is", "Carolina Souza", "carol", "carol"},
		{"nickname only", "", "Cacau", "Cacau"},
		{"name only", "Carolina Souza", "", "Carolina Souza"},
		{"nothing known", "", "", defaultInstructor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spot := domain.AvailableSpot{InstructorName: tt.spotName, InstructorNickname: tt.nickname}
			assert.Equal(t, tt.want, instructorLabel(spot))
		})
	}
}
