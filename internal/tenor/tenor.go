// Package tenor converts calendar expiries into year fractions for pricing.
package tenor

import (
	"fmt"
	"time"

	"github.com/scmhub/calendar"
)

// TradingDaysPerYear is the business-day year basis.
const TradingDaysPerYear = 252

const dateLayout = "2006-01-02"

// Counter counts exchange business days.
type Counter struct {
	cal      *calendar.Calendar
	location *time.Location
}

// NewNYSE returns a counter on the NYSE calendar in America/New_York, falling
// back to UTC when the zone database is unavailable.
func NewNYSE() *Counter {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return &Counter{cal: calendar.XNYS(), location: loc}
}

// BusinessDays counts business days in (from, to].
func (c *Counter) BusinessDays(from, to time.Time) int {
	start := c.noon(from)
	end := c.noon(to)

	count := 0
	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.cal.IsBusinessDay(d) {
			count++
		}
	}
	return count
}

// YearFraction returns business days in (from, expiry] over TradingDaysPerYear.
func (c *Counter) YearFraction(from, expiry time.Time) (float64, error) {
	if !c.noon(expiry).After(c.noon(from)) {
		return 0, fmt.Errorf("expiry %s must be after %s", expiry.Format(dateLayout), from.Format(dateLayout))
	}
	days := c.BusinessDays(from, expiry)
	if days == 0 {
		return 0, fmt.Errorf("no trading days between %s and %s", from.Format(dateLayout), expiry.Format(dateLayout))
	}
	return float64(days) / TradingDaysPerYear, nil
}

// ParseExpiry parses a YYYY-MM-DD expiry date.
func (c *Counter) ParseExpiry(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, c.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expiry date format (use YYYY-MM-DD): %w", err)
	}
	return t, nil
}

// noon pins a date to midday in the exchange zone so date matching is stable.
func (c *Counter) noon(t time.Time) time.Time {
	t = t.In(c.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, c.location)
}
