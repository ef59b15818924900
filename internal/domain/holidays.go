package domain

import (
	"fmt"
	"strings"
	"time"
)

// holidayDates returns the public holidays of one calendar year keyed by
// YYYY-MM-DD: the Brazilian national holidays plus the state day of the given
// subdivision.
func holidayDates(year int, region string) map[string]string {
	goodFriday := easterSunday(year).AddDate(0, 0, -2)

	dates := map[string]string{
		fmt.Sprintf("%04d-01-01", year): "Confraternização Universal",
		goodFriday.Format(DateFormat):   "Sexta-feira Santa",
		fmt.Sprintf("%04d-04-21", year): "Tiradentes",
		fmt.Sprintf("%04d-05-01", year): "Dia do Trabalhador",
		fmt.Sprintf("%04d-09-07", year): "Independência do Brasil",
		fmt.Sprintf("%04d-10-12", year): "Nossa Senhora Aparecida",
		fmt.Sprintf("%04d-11-02", year): "Finados",
		fmt.Sprintf("%04d-11-15", year): "Proclamação da República",
		fmt.Sprintf("%04d-12-25", year): "Natal",
	}

	// National holiday since Lei 14.759/2023.
	if year >= 2024 {
		dates[fmt.Sprintf("%04d-11-20", year)] = "Dia da Consciência Negra"
	}

	if strings.EqualFold(region, "SP") {
		dates[fmt.Sprintf("%04d-07-09", year)] = "Revolução Constitucionalista"
	}

	return dates
}

// easterSunday computes the Gregorian Easter date using the anonymous computus
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
