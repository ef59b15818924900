package summary

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SpotWatcher/internal/domain"
)

// Фиксированные тексты сводки (пользовательский вывод на португальском,
// как у самой студии)
const (
	noSpotsMessage      = "Nenhuma vaga disponível encontrada no período consultado."
	headerMessage       = "🏋️‍♀️ Vagas de aula liberadas!"
	subheaderMessage    = "Confira as oportunidades nas próximas duas semanas:"
	footerMessage       = "Boas pedaladas! 🚴‍♀️"
	unknownDateHeader   = "📅 Data não informada"
	unknownHourLabel    = "Horário não informado"
	unknownDuration     = "Duração não informada"
	defaultEventName    = "Aula"
	defaultInstructor   = "Instrutor"
	noCodedBikesMessage = "Nenhuma bike com código disponível"
	eventSeparator      = "──────────────"
)

// Ключи-заглушки для группировки записей с отсутствующими полями
const (
	unknownDateKey  = "sem-data"
	unknownTokenKey = "sem-token"
	unknownStartKey = "sem-inicio"
	unknownHourKey  = "sem-horario"
	unknownNameKey  = "sem-nome"
)

// weekdayLabels локализованные названия дней недели, индекс — time.Weekday
var weekdayLabels = [7]string{
	"Domingo",
	"Segunda-feira",
	"Terça-feira",
	"Quarta-feira",
	"Quinta-feira",
	"Sexta-feira",
	"Sábado",
}

// Service форматирует список свободных мест в человекочитаемую сводку
type Service struct {
	logger Logger
}

// NewService создает новый экземпляр сервиса сводок
func NewService(logger Logger) *Service {
	return &Service{logger: logger}
}

// Format строит сгруппированную сводку: сортировка по времени начала, группы
// по календарной дате (записи без даты — последними), внутри даты — по
// составному ключу события, чтобы несколько мест одного занятия слились в один
// блок. Пустой вход всегда даёт фиксированное сообщение, никогда пустую строку.
func (s *Service) Format(spots []domain.AvailableSpot) *Summary {
	if len(spots) == 0 {
		return &Summary{
			HTML:      fmt.Sprintf("<b>%s</b>", html.EscapeString(noSpotsMessage)),
			PlainText: noSpotsMessage,
		}
	}

	sorted := make([]domain.AvailableSpot, len(spots))
	copy(sorted, spots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKey(sorted[i]) < sortKey(sorted[j])
	})

	dayOrder, grouped := groupByDay(sorted)

	htmlLines := []string{
		fmt.Sprintf("<b>%s</b>", headerMessage),
		"",
		subheaderMessage,
		"",
	}
	textLines := []string{
		headerMessage,
		"",
		subheaderMessage,
		"",
	}

	for _, dayKey := range dayOrder {
		day := grouped[dayKey]

		headerHTML, headerText := dayHeader(day)
		htmlLines = append(htmlLines, headerHTML)
		textLines = append(textLines, headerText)

		for index, eventKey := range day.order {
			event := day.events[eventKey]
			if len(event.spots) == 0 {
				continue
			}

			if index > 0 {
				htmlLines = append(htmlLines, eventSeparator, "")
				textLines = append(textLines, eventSeparator, "")
			}

			eventHTML, eventText := renderEvent(event)
			htmlLines = append(htmlLines, eventHTML...)
			textLines = append(textLines, eventText...)
		}

		htmlLines = append(htmlLines, "")
		textLines = append(textLines, "")
	}

	htmlLines = append(htmlLines, fmt.Sprintf("<i>%s</i>", footerMessage))
	textLines = append(textLines, footerMessage)

	summary := &Summary{
		HTML:      strings.TrimSpace(strings.Join(htmlLines, "\n")),
		PlainText: strings.TrimSpace(strings.Join(textLines, "\n")),
	}

	s.logger.Info("Summary: formatted %d spots into %d day groups", len(spots), len(dayOrder))
	return summary
}

// sortKey ключ сортировки: время начала, иначе отображаемый час, иначе пусто
func sortKey(spot domain.AvailableSpot) string {
	if spot.StartTime != nil {
		return spot.StartTime.Format(time.RFC3339)
	}
	if spot.EventHour != "" {
		return spot.EventHour
	}
	return ""
}

// groupByDay группирует места по дате, внутри даты — по составному ключу
// события. Группа без даты всегда уходит в конец.
func groupByDay(spots []domain.AvailableSpot) ([]string, map[string]*dayGroup) {
	grouped := make(map[string]*dayGroup)
	dayOrder := make([]string, 0)

	for _, spot := range spots {
		dayKey := unknownDateKey
		if spot.StartTime != nil {
			dayKey = spot.StartTime.Format(domain.DateFormat)
		}

		day, ok := grouped[dayKey]
		if !ok {
			day = &dayGroup{events: make(map[string]*eventGroup)}
			grouped[dayKey] = day
			dayOrder = append(dayOrder, dayKey)
		}

		eventKey := compositeEventKey(spot)
		event, ok := day.events[eventKey]
		if !ok {
			event = &eventGroup{}
			day.events[eventKey] = event
			day.order = append(day.order, eventKey)
		}

		if event.startTime == nil && spot.StartTime != nil {
			event.startTime = spot.StartTime
		}
		event.spots = append(event.spots, spot)
	}

	// Записи без даты рендерятся последними
	for i, key := range dayOrder {
		if key == unknownDateKey && i != len(dayOrder)-1 {
			dayOrder = append(append(dayOrder[:i:i], dayOrder[i+1:]...), unknownDateKey)
			break
		}
	}

	return dayOrder, grouped
}

// compositeEventKey составной ключ занятия: token + start_time + event_hour + name
func compositeEventKey(spot domain.AvailableSpot) string {
	token := spot.Token
	if token == "" {
		token = unknownTokenKey
	}

	start := unknownStartKey
	if spot.StartTime != nil {
		start = spot.StartTime.Format(time.RFC3339)
	}

	hour := spot.EventHour
	if hour == "" {
		hour = unknownHourKey
	}

	name := spot.EventName
	if name == "" {
		name = unknownNameKey
	}

	return strings.Join([]string{token, start, hour, name}, "|")
}

// dayHeader заголовок даты: DD/MM/YYYY и локализованный день недели
func dayHeader(day *dayGroup) (string, string) {
	var startTime *time.Time
	for _, key := range day.order {
		if st := day.events[key].startTime; st != nil {
			startTime = st
			break
		}
	}

	if startTime == nil {
		return fmt.Sprintf("<b>%s</b>", unknownDateHeader), unknownDateHeader
	}

	weekday := weekdayLabels[startTime.Weekday()]
	dateLabel := startTime.Format(domain.DisplayDateFormat)
	header := fmt.Sprintf("📅 %s (%s)", dateLabel, weekday)
	return fmt.Sprintf("<b>%s</b>", html.EscapeString(header)), header
}

// renderEvent рендерит блок одного занятия в HTML и plain text
func renderEvent(event *eventGroup) ([]string, []string) {
	representative := event.spots[0]

	hourLabel := representative.EventHour
	if hourLabel == "" && event.startTime != nil {
		hourLabel = event.startTime.Format(domain.HourFormat)
	}
	if hourLabel == "" {
		hourLabel = unknownHourLabel
	}

	duration := durationLabel(representative.Duration)

	eventName := representative.EventName
	if eventName == "" {
		eventName = defaultEventName
	}

	instructor := instructorLabel(representative)
	tagline := representative.InstructorTagline

	codes := make([]string, 0, len(event.spots))
	for _, spot := range event.spots {
		if spot.SpotCode != "" {
			codes = append(codes, spot.SpotCode)
		}
	}
	bikesHTML, bikesText := formatBikeCodes(codes)

	htmlLines := []string{
		"╭────────────────────────────╮",
		fmt.Sprintf("│ 🕒 <b>%s</b> • %s", html.EscapeString(hourLabel), html.EscapeString(duration)),
		fmt.Sprintf("│ 🎯 %s", html.EscapeString(eventName)),
		fmt.Sprintf("│ 👤 %s", html.EscapeString(instructor)),
	}
	textLines := []string{
		"╭────────────────────────────╮",
		fmt.Sprintf("│ 🕒 %s • %s", hourLabel, duration),
		fmt.Sprintf("│ 🎯 %s", eventName),
		fmt.Sprintf("│ 👤 %s", instructor),
	}

	if tagline != "" {
		htmlLines = append(htmlLines, fmt.Sprintf("│ ✨ %s", html.EscapeString(tagline)))
		textLines = append(textLines, fmt.Sprintf("│ ✨ %s", tagline))
	}

	htmlLines = append(htmlLines,
		fmt.Sprintf("│ 🚲 %s", bikesHTML),
		"╰────────────────────────────╯",
		"",
	)
	textLines = append(textLines,
		fmt.Sprintf("│ 🚲 %s", bikesText),
		"╰────────────────────────────╯",
		"",
	)

	return htmlLines, textLines
}

// durationLabel человекочитаемая длительность: число минут, готовая строка
// из API или заглушка
func durationLabel(d domain.Duration) string {
	if d.Minutes != nil {
		return fmt.Sprintf("%g min", *d.Minutes)
	}
	if d.Label != "" {
		return d.Label
	}
	return unknownDuration
}

// instructorLabel подпись инструктора: "Имя (ник)", когда ник не содержится
// в имени без учёта регистра; иначе что есть; иначе заглушка
func instructorLabel(spot domain.AvailableSpot) string {
	nickname := spot.InstructorNickname
	name := spot.InstructorName

	if nickname != "" && name != "" &&
		!strings.Contains(strings.ToLower(name), strings.ToLower(nickname)) {
		return fmt.Sprintf("%s (%s)", name, nickname)
	}
	if nickname != "" {
		return nickname
	}
	if name != "" {
		return name
	}
	return defaultInstructor
}

// formatBikeCodes представление списка свободных байков в HTML и plain text
func formatBikeCodes(codes []string) (string, string) {
	if len(codes) == 0 {
		return noCodedBikesMessage, noCodedBikesMessage
	}

	label := fmt.Sprintf("%d bikes livres", len(codes))
	if len(codes) == 1 {
		label = "1 bike livre"
	}

	joinedHTML := html.EscapeString(strings.Join(codes, " • "))
	joinedPlain := strings.Join(codes, ", ")

	return fmt.Sprintf("<b>%s:</b> %s", label, joinedHTML),
		fmt.Sprintf("%s: %s", label, joinedPlain)
}
