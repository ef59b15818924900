package collect_spots

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpotWatcher/internal/domain"
	"github.com/m04kA/SMC-SpotWatcher/internal/integrations/studioapi"
)

// stubLogger no-op логгер для тестов
type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

// fakeStudioClient управляемый клиент API студии
type fakeStudioClient struct {
	entries     []studioapi.ScheduleEntry
	scheduleErr error

	details    map[string]*studioapi.EventDetail
	detailErrs map[string]error

	window      studioapi.Window
	pages       []int
	detailCalls []string
}

func (f *fakeStudioClient) FetchSchedule(ctx context.Context, window studioapi.Window, pages []int) ([]studioapi.ScheduleEntry, error) {
	f.window = window
	f.pages = pages
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return f.entries, nil
}

func (f *fakeStudioClient) FetchEventDetail(ctx context.Context, token string) (*studioapi.EventDetail, error) {
	f.detailCalls = append(f.detailCalls, token)
	if err, ok := f.detailErrs[token]; ok {
		return nil, err
	}
	return f.details[token], nil
}

// fakeClock выдаёт заранее заданную последовательность моментов времени
type fakeClock struct {
	times []time.Time
	next  int
}

func (f *fakeClock) Now() time.Time {
	if f.next >= len(f.times) {
		return f.times[len(f.times)-1]
	}
	t := f.times[f.next]
	f.next++
	return t
}

func newTestUseCase(client *fakeStudioClient, clock TimeProvider) *UseCase {
	uc := NewUseCase(client, domain.NewDayClassifier("SP"), 525, 14, []int{1, 2}, stubLogger{})
	if clock != nil {
		uc.timeProvider = clock
	}
	return uc
}

func freeSeatDetail(token string) *studioapi.EventDetail {
	return &studioapi.EventDetail{
		Token:     token,
		Name:      "Bike 45",
		EventHour: "20:00",
		InstructorDetail: &studioapi.InstructorDetail{
			Nickname:  "Cacau",
			FirstName: "Carolina",
			LastName:  "Souza",
		},
		MapSpots: []studioapi.MapSpot{
			{Code: "5", Bookings: []json.RawMessage{json.RawMessage(`{}`)}},
			{Code: "8"},
		},
	}
}

func TestExecuteHappyPath(t *testing.T) {
	startedAt := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)
	finishedAt := startedAt.Add(2500 * time.Millisecond)

	client := &fakeStudioClient{
		entries: []studioapi.ScheduleEntry{
			{Token: "evt-1", Instructor: 525, StartTime: "2025-11-14T20:00:00-03:00"},
		},
		details: map[string]*studioapi.EventDetail{
			"evt-1": freeSeatDetail("evt-1"),
		},
	}
	uc := newTestUseCase(client, &fakeClock{times: []time.Time{startedAt, finishedAt}})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Spots, 1)
	spot := result.Spots[0]
	assert.Equal(t, "evt-1", spot.Token)
	assert.Equal(t, "8", spot.SpotCode)
	assert.Equal(t, "Bike 45", spot.EventName)
	assert.Equal(t, "Carolina Souza", spot.InstructorName)
	require.NotNil(t, spot.StartTime)
	assert.Equal(t, "2025-11-14", spot.StartTime.Format(domain.DateFormat))

	assert.Equal(t, startedAt, result.StartedAt)
	assert.Equal(t, finishedAt, result.FinishedAt)
	assert.Equal(t, 2500*time.Millisecond, result.Elapsed)

	assert.Equal(t, []string{"evt-1"}, client.detailCalls)
	assert.Equal(t, []int{1, 2}, client.pages)
	assert.Equal(t, startedAt, client.window.From)
	assert.Equal(t, startedAt.AddDate(0, 0, 14), client.window.To)
}

func TestExecuteRejectsEarlyWeekdayStart(t *testing.T) {
	client := &fakeStudioClient{
		entries: []studioapi.ScheduleEntry{
			{Token: "evt-1", Instructor: 525, StartTime: "2025-11-14T18:00:00-03:00"},
		},
	}
	uc := newTestUseCase(client, nil)

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, result.Spots)
	assert.Empty(t, result.Spots)
	assert.Empty(t, client.detailCalls)
}

func TestExecuteSkipsOtherInstructors(t *testing.T) {
	client := &fakeStudioClient{
		entries: []studioapi.ScheduleEntry{
			{Token: "evt-other", Instructor: 999, StartTime: "2025-11-14T20:00:00-03:00"},
			{Token: "evt-mine", Instructor: 525, StartTime: "2025-11-14T21:00:00-03:00"},
		},
		details: map[string]*studioapi.EventDetail{
			"evt-mine": freeSeatDetail("evt-mine"),
		},
	}
	uc := newTestUseCase(client, nil)

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"evt-mine"}, client.detailCalls)
	require.Len(t, result.Spots, 1)
	assert.Equal(t, "evt-mine", result.Spots[0].Token)
}

func TestExecuteDetailFailureAbortsRun(t *testing.T) {
	client := &fakeStudioClient{
		entries: []studioapi.ScheduleEntry{
			{Token: "evt-1", Instructor: 525, StartTime: "2025-11-14T20:00:00-03:00"},
			{Token: "evt-2", Instructor: 525, StartTime: "2025-11-14T21:00:00-03:00"},
		},
		details: map[string]*studioapi.EventDetail{
			"evt-1": freeSeatDetail("evt-1"),
		},
		detailErrs: map[string]error{
			"evt-2": studioapi.ErrTransport,
		},
	}
	uc := newTestUseCase(client, nil)

	result, err := uc.Execute(context.Background())
	require.ErrorIs(t, err, studioapi.ErrTransport)

	// Частичный результат не возвращается
	assert.Nil(t, result)
	assert.Equal(t, []string{"evt-1", "evt-2"}, client.detailCalls)
}

func TestExecuteScheduleFailure(t *testing.T) {
	client := &fakeStudioClient{scheduleErr: studioapi.ErrTransport}
	uc := newTestUseCase(client, nil)

	result, err := uc.Execute(context.Background())
	require.ErrorIs(t, err, studioapi.ErrTransport)
	assert.Nil(t, result)
	assert.Empty(t, client.detailCalls)
}

func TestExecuteInvalidStartTimeFailsRun(t *testing.T) {
	client := &fakeStudioClient{
		entries: []studioapi.ScheduleEntry{
			{Token: "evt-1", Instructor: 525, StartTime: "not-a-timestamp"},
		},
	}
	uc := newTestUseCase(client, nil)

	result, err := uc.Execute(context.Background())
	require.ErrorIs(t, err, ErrInvalidStartTime)
	assert.Nil(t, result)
	assert.Empty(t, client.detailCalls)
}
