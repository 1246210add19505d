package schedule

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format")

// ParseDate parses a YYYY-MM-DD value as midnight in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidDate reports whether date is a real calendar day in YYYY-MM-DD form.
func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// IsWeekend reports whether date falls on Saturday or Sunday. Malformed
// dates are never weekends; callers validate the format first.
func IsWeekend(date string) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func Weekday(date string) (time.Weekday, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, ErrInvalidDate
	}
	return t.Weekday(), nil
}

func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", ErrInvalidDate
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// MonthBounds returns the first and last day of the month.
func MonthBounds(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return FormatDate(first), FormatDate(last)
}

// WeekBounds returns the Sunday..Saturday week containing date.
func WeekBounds(date string) (string, string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", "", ErrInvalidDate
	}
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	return FormatDate(sunday), FormatDate(sunday.AddDate(0, 0, 6)), nil
}

// CalendarGridBounds widens a month to whole Sunday..Saturday weeks.
func CalendarGridBounds(year int, month time.Month) (string, string) {
	first, last := MonthBounds(year, month)
	start, _, _ := WeekBounds(first)
	_, end, _ := WeekBounds(last)
	return start, end
}

// DatesBetween lists every day from..to inclusive. An inverted range is empty.
func DatesBetween(from, to string) ([]string, error) {
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse(DateLayout, to)
	if err != nil {
		return nil, ErrInvalidDate
	}

	out := make([]string, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, FormatDate(d))
	}
	return out, nil
}

// YearsBetween lists the calendar years touched by from..to.
func YearsBetween(from, to string) ([]int, error) {
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse(DateLayout, to)
	if err != nil {
		return nil, ErrInvalidDate
	}

	years := make([]int, 0, 2)
	for y := start.Year(); y <= end.Year(); y++ {
		years = append(years, y)
	}
	return years, nil
}

// DateTimeOf combines a date and a slot into an instant in loc.
func DateTimeOf(date string, slot Slot, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	mins := slot.Minutes()
	if mins < 0 {
		return time.Time{}, ErrInvalidSlot
	}
	return time.Date(day.Year(), day.Month(), day.Day(), mins/60, mins%60, 0, 0, loc), nil
}
