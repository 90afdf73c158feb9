package marketdata

import (
	"time"

	"StockPulse/internal/domain/models"
)

// MarketClock evaluates the NSE trading window: 09:15 to 15:30 IST, Monday
// through Friday. The time source is injectable for tests.
type MarketClock struct {
	loc *time.Location
	now func() time.Time
}

// NewMarketClock builds a clock on the Asia/Kolkata zone. If the zone
// database is unavailable the fixed +05:30 offset is used instead.
func NewMarketClock() *MarketClock {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	return &MarketClock{loc: loc, now: time.Now}
}

// Status reports whether the exchange is currently inside trading hours.
func (c *MarketClock) Status() *models.MarketStatus {
	now := c.now().In(c.loc)

	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return &models.MarketStatus{IsOpen: false, Message: "Market Closed (Weekend)"}
	}

	opens := time.Date(now.Year(), now.Month(), now.Day(), 9, 15, 0, 0, c.loc)
	closes := time.Date(now.Year(), now.Month(), now.Day(), 15, 30, 0, 0, c.loc)
	if !now.Before(opens) && !now.After(closes) {
		return &models.MarketStatus{IsOpen: true, Message: "Market Open"}
	}
	return &models.MarketStatus{IsOpen: false, Message: "Market Closed"}
}
