package domain

import "time"

// DayType classifies the calendar day a class falls on
type DayType string

const (
	DayTypeHoliday DayType = "holiday"
	DayTypeWeekend DayType = "weekend"
	DayTypeWeekday DayType = "weekday"
)

// DayClassifier resolves the day type of a timestamp using a regional public
// holiday calendar. Holiday years are computed lazily and cached; the pipeline
// is strictly sequential, so no locking is needed.
type DayClassifier struct {
	region string
	years  map[int]map[string]string
}

// NewDayClassifier creates a classifier for the given Brazilian state
// subdivision (e.g. "SP"). An empty region falls back to DefaultRegion.
func NewDayClassifier(region string) *DayClassifier {
	if region == "" {
		region = DefaultRegion
	}
	return &DayClassifier{
		region: region,
		years:  make(map[int]map[string]string),
	}
}

// Classify labels the timestamp. First match wins: a recognized holiday beats
// the weekend, the weekend beats the weekday. The date is taken in the
// timestamp's own offset.
func (c *DayClassifier) Classify(t time.Time) DayType {
	if _, ok := c.holidaysFor(t.Year())[t.Format(DateFormat)]; ok {
		return DayTypeHoliday
	}
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return DayTypeWeekend
	}
	return DayTypeWeekday
}

// AdmitsStart reports whether a class starting at t passes the evening cutoff
// rule. Weekday classes are admitted only strictly after 19:00 local time;
// exactly 19:00:00 is rejected. Holidays and weekends carry no time
// restriction.
func (c *DayClassifier) AdmitsStart(t time.Time) bool {
	if c.Classify(t) != DayTypeWeekday {
		return true
	}
	cutoff := EveningCutoffHour * 3600
	seconds := t.Hour()*3600 + t.Minute()*60 + t.Second()
	if seconds != cutoff {
		return seconds > cutoff
	}
	return t.Nanosecond() > 0
}

func (c *DayClassifier) holidaysFor(year int) map[string]string {
	if dates, ok := c.years[year]; ok {
		return dates
	}
	dates := holidayDates(year, c.region)
	c.years[year] = dates
	return dates
}
