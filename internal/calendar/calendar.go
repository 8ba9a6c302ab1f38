// Package calendar lays out Monday-first month grids and handles month
// navigation. It holds no state of its own.
package calendar

import (
	"fmt"
	"time"

	"github.com/goodsign/monday"

	"github.com/chris-regnier/famcal/internal/event"
)

// DefaultLocale is the display locale for month labels.
const DefaultLocale = "da_DK"

// Page identifies a displayed month. Month is zero-based (0 = January).
type Page struct {
	Year  int
	Month int
}

// PageOf returns the page containing t.
func PageOf(t time.Time) Page {
	return Page{Year: t.Year(), Month: int(t.Month()) - 1}
}

// Next returns the following month, rolling into the next year after December.
func (p Page) Next() Page {
	p.Month++
	if p.Month > 11 {
		p.Month = 0
		p.Year++
	}
	return p
}

// Prev returns the preceding month, rolling into the previous year before January.
func (p Page) Prev() Page {
	p.Month--
	if p.Month < 0 {
		p.Month = 11
		p.Year--
	}
	return p
}

// Shift moves delta months forward (or backward when negative).
func (p Page) Shift(delta int) Page {
	for ; delta > 0; delta-- {
		p = p.Next()
	}
	for ; delta < 0; delta++ {
		p = p.Prev()
	}
	return p
}

// First returns midnight local time on the first day of the page's month.
func (p Page) First() time.Time {
	return time.Date(p.Year, time.Month(p.Month+1), 1, 0, 0, 0, 0, time.Local)
}

// Label formats the page as full month name plus year in the given locale,
// e.g. "januar 2024" for da_DK.
func (p Page) Label(locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}
	return monday.Format(p.First(), "January 2006", monday.Locale(locale))
}

// MonthLabel is Page{year, month}.Label(locale).
func MonthLabel(year, month int, locale string) string {
	return Page{Year: year, Month: month}.Label(locale)
}

// WeekdayLabels returns short weekday names Monday first, e.g. "man." .. "søn."
// for da_DK.
func WeekdayLabels(locale string) [7]string {
	if locale == "" {
		locale = DefaultLocale
	}
	var out [7]string
	monday0 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = monday.Format(monday0.AddDate(0, 0, i), "Mon", monday.Locale(locale))
	}
	return out
}

// String returns the page as YYYY-MM.
func (p Page) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month+1)
}

// ParsePage parses a YYYY-MM string.
func ParsePage(s string) (Page, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Page{}, fmt.Errorf("invalid month %q: use YYYY-MM", s)
	}
	return PageOf(t), nil
}

// Cell is one square of the month grid. Cells outside the month have Other
// set and carry no date and no events.
type Cell struct {
	Other  bool
	Day    int
	Date   string
	Today  bool
	Events []event.Event
}

// DaysInMonth returns the number of days in the zero-based month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateString formats a zero-based month date as YYYY-MM-DD.
func DateString(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month+1, day)
}

// Today returns the YYYY-MM-DD string for now.
func Today(now time.Time) string {
	return now.Format(event.DateLayout)
}

// Offset returns the Monday-first column of the month's first day.
func Offset(year, month int) int {
	wd := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday()
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// BuildMonthGrid lays out whole weeks covering the month. Each in-month cell
// gets the events whose Date matches it and is flagged when its date equals today.
func BuildMonthGrid(year, month int, events []event.Event, today string) []Cell {
	offset := Offset(year, month)
	days := DaysInMonth(year, month)
	weeks := (offset + days + 6) / 7

	byDate := make(map[string][]event.Event)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	cells := make([]Cell, weeks*7)
	for i := range cells {
		day := i - offset + 1
		if day < 1 || day > days {
			cells[i] = Cell{Other: true}
			continue
		}
		date := DateString(year, month, day)
		cells[i] = Cell{
			Day:    day,
			Date:   date,
			Today:  date == today,
			Events: byDate[date],
		}
	}
	return cells
}

// Grid builds the month grid for the page.
func (p Page) Grid(events []event.Event, today string) []Cell {
	return BuildMonthGrid(p.Year, p.Month, events, today)
}

// IndexOf returns the grid position of date, or -1 if the date is not in the month.
func IndexOf(cells []Cell, date string) int {
	for i, c := range cells {
		if !c.Other && c.Date == date {
			return i
		}
	}
	return -1
}
