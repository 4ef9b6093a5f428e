package stats

import (
	"fmt"
	"time"
)

// Catalan calendar names. The dashboard is Catalan-facing, so labels are
// produced here rather than in the presentation layer.
var (
	weekdayNamesSundayFirst = [7]string{
		"Diumenge", "Dilluns", "Dimarts", "Dimecres", "Dijous", "Divendres", "Dissabte",
	}
	weekdayOrderMondayFirst = [7]string{
		"Dilluns", "Dimarts", "Dimecres", "Dijous", "Divendres", "Dissabte", "Diumenge",
	}
	monthShortNames = [12]string{
		"Gen", "Feb", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Oct", "Nov", "Des",
	}
	monthLongNames = [12]string{
		"gener", "febrer", "març", "abril", "maig", "juny",
		"juliol", "agost", "setembre", "octubre", "novembre", "desembre",
	}
)

// dateKey formats a timestamp as its local calendar date ("2024-03-01").
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// monthKey formats a timestamp as its local calendar month ("2024-03").
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// shortDate formats a date as DD/MM/YYYY.
func shortDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// longDateCA formats a date the Catalan way: "1 de març de 2024",
// with the "d'" elision before vowel-initial month names.
func longDateCA(t time.Time) string {
	month := monthLongNames[t.Month()-1]
	particle := "de "
	switch month[0] {
	case 'a', 'o':
		particle = "d'"
	}
	return fmt.Sprintf("%d %s%s de %d", t.Day(), particle, month, t.Year())
}

// monthLabel formats a month as short name plus two-digit year ("Mar 24").
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %02d", monthShortNames[t.Month()-1], t.Year()%100)
}

// weekNumber computes the ISO-like week number used by the weekly series:
// ceil((daysSinceJan1 + jan1Weekday + 1) / 7) with Sunday-based weekdays.
func weekNumber(t time.Time) int {
	jan1 := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	days := t.YearDay() - 1
	return (days + int(jan1.Weekday()) + 1 + 6) / 7
}

// weekKey formats the weekly bucket key ("2024-W09").
func weekKey(t time.Time) string {
	return fmt.Sprintf("%d-W%02d", t.Year(), weekNumber(t))
}
