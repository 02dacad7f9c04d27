package service

import (
	"fmt"
	"time"

	"anoa.com/kitaplik/internal/catalog"
)

// PeriodFor returns the key of the period containing t and its exclusive end.
// Daily periods are calendar days and weekly periods are ISO weeks, both in loc.
func PeriodFor(period string, t time.Time, loc *time.Location) (string, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	if period == catalog.PeriodWeekly {
		year, week := local.ISOWeek()
		// Monday is day 1; Sunday becomes 7.
		weekday := int(local.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		end := dayStart.AddDate(0, 0, 8-weekday)
		return fmt.Sprintf("%04d-W%02d", year, week), end.UTC()
	}
	return local.Format("2006-01-02"), dayStart.AddDate(0, 0, 1).UTC()
}
