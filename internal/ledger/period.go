package ledger

import (
	"strconv"
	"time"
)

// Period is a (month, year) billing scope. It is a filter key, not a stored
// entity; a payment always belongs to exactly one period.
type Period struct {
	Month time.Month
	Year  int
}

var spanishMonths = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// NewPeriod builds a period from raw month/year numbers, rejecting values
// outside the calendar.
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, &ValidationError{Reason: "month must be between 1 and 12"}
	}
	if year < 2000 || year > 2100 {
		return Period{}, &ValidationError{Reason: "year out of range: " + strconv.Itoa(year)}
	}
	return Period{Month: time.Month(month), Year: year}, nil
}

// CurrentPeriod derives the period from wall-clock time.
func CurrentPeriod(now time.Time) Period {
	return Period{Month: now.Month(), Year: now.Year()}
}

// MonthName returns the localized (Spanish) month name used on screens and
// in the export detail text.
func (p Period) MonthName() string {
	return spanishMonths[int(p.Month)-1]
}

func (p Period) String() string {
	return p.MonthName() + " " + strconv.Itoa(p.Year)
}

// DayBounds returns the midnight-to-midnight range of the given date in its
// own location, used for the daily till "created today" query.
func DayBounds(date time.Time) (start, end time.Time) {
	start = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}
