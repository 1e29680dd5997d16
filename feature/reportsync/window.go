package reportsync

import (
	"encoding/json"
	"fmt"
	"time"

	"report-sync/core/utils"
)

// Window is the inclusive range of days still to load.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowAfter returns [latest+1, yesterday].
func WindowAfter(latest, yesterday time.Time) Window {
	return Window{
		Start: utils.Date(latest).AddDate(0, 0, 1),
		End:   utils.Date(yesterday),
	}
}

// Empty reports whether the window holds no day.
func (w Window) Empty() bool {
	return w.Start.After(w.End)
}

// Days returns the number of days in the window.
func (w Window) Days() int {
	if w.Empty() {
		return 0
	}
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s]", w.Start.Format(utils.DateLayout), w.End.Format(utils.DateLayout))
}

// MarshalJSON renders the bounds as dates.
func (w Window) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Days  int    `json:"days"`
	}{w.Start.Format(utils.DateLayout), w.End.Format(utils.DateLayout), w.Days()})
}

// Yesterday returns the calendar day before now in loc, as a UTC-midnight date.
// The current day is never loaded since its files may still be incomplete.
func Yesterday(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return utils.Date(now.In(loc)).AddDate(0, 0, -1)
}

// FloorPolicy decides where loading starts for a table that was never loaded.
type FloorPolicy struct {
	// Date is the first day to load; zero means use LookbackDays.
	Date time.Time
	// LookbackDays is how many days up to yesterday are loaded.
	LookbackDays int
}

// Start returns the first day to load given yesterday.
func (p FloorPolicy) Start(yesterday time.Time) time.Time {
	if !p.Date.IsZero() {
		return utils.Date(p.Date)
	}
	days := p.LookbackDays
	if days < 1 {
		days = 1
	}
	return utils.Date(yesterday).AddDate(0, 0, -(days - 1))
}
