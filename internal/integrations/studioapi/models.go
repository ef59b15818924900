package studioapi

import (
	"bytes"
	"encoding/json"
	"time"
)

// Window окно дат агенды, обе границы включительно
type Window struct {
	From time.Time
	To   time.Time
}

// ScheduleEntry одна запись из endpoint'а агенды.
// Интересующее подмножество полей, остальное отбрасывается при декодировании.
type ScheduleEntry struct {
	Token      string  `json:"token"`
	Instructor int64   `json:"instructor"`
	ClosedAt   *string `json:"closed_at"`
	StartTime  string  `json:"start_time"`
}

// schedulePage страница ответа endpoint'а агенды.
// Results декодируется лениво, чтобы отличить отсутствующее/не-списочное поле
// от пустого списка.
type schedulePage struct {
	Results json.RawMessage `json:"results"`
}

// EventDetail полный payload одного события
type EventDetail struct {
	Token            string            `json:"token"`
	Name             string            `json:"name"`
	EventHour        string            `json:"event_hour"`
	DurationTime     DurationValue     `json:"duration_time"`
	InstructorDetail *InstructorDetail `json:"instructor_detail"`
	MapSpots         []MapSpot         `json:"map_spots"`
}

// InstructorDetail данные инструктора события
type InstructorDetail struct {
	Nickname  string `json:"nickname"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Tagline   string `json:"tagline"`
}

// MapSpot одно место в карте зала.
// Непустой список bookings означает занятое место, maintenance — место на обслуживании.
type MapSpot struct {
	Code        string            `json:"code"`
	Bookings    []json.RawMessage `json:"bookings"`
	Maintenance bool              `json:"maintenance"`
}

// DurationValue принимает duration_time и как число минут, и как готовую строку
type DurationValue struct {
	Minutes *float64
	Label   string
}

// UnmarshalJSON декодирует число в Minutes, строку в Label, null в пустое значение
func (d *DurationValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &d.Label)
	}
	var minutes float64
	if err := json.Unmarshal(data, &minutes); err != nil {
		return err
	}
	d.Minutes = &minutes
	return nil
}

// ErrorResponse тело ошибки от API студии
type ErrorResponse struct {
	Detail string `json:"detail"`
}
