package preprocess

import (
	"errors"
	"slices"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
	"github.com/treecast/treecast/timedataset"
)

var ErrNilFeaturizer = errors.New("no inner featurizer to wrap")

// CalendarFeaturizer wraps another featurizer and appends calendar features of
// the forecast origin, the timestamp of the last observation in the context
// window: hour of day, day of week, a weekend flag, and an observed holiday
// flag from the configured business calendar.
type CalendarFeaturizer struct {
	Inner    Featurizer
	Calendar *cal.BusinessCalendar
}

// NewCalendarFeaturizer wraps inner with calendar features. A nil calendar
// defaults to the US business calendar.
func NewCalendarFeaturizer(inner Featurizer, calendar *cal.BusinessCalendar) (*CalendarFeaturizer, error) {
	if inner == nil {
		return nil, ErrNilFeaturizer
	}
	if calendar == nil {
		calendar = cal.NewBusinessCalendar()
		calendar.AddHoliday(us.Holidays...)
	}
	return &CalendarFeaturizer{
		Inner:    inner,
		Calendar: calendar,
	}, nil
}

func (c *CalendarFeaturizer) WindowSize() int {
	return c.Inner.WindowSize()
}

func (c *CalendarFeaturizer) Features(s *timedataset.Series, start int) []float64 {
	feats := c.Inner.Features(s, start)

	// start may be negative when the lookback extends before the series, but
	// the forecast origin itself always lands inside the series
	origin := s.TimeAt(start + c.Inner.WindowSize() - 1)

	var weekend float64
	switch origin.Weekday() {
	case time.Saturday, time.Sunday:
		weekend = 1.0
	}

	var holiday float64
	if _, observed, _ := c.Calendar.IsHoliday(origin); observed {
		holiday = 1.0
	}

	return append(feats,
		float64(origin.Hour()),
		float64(origin.Weekday()),
		weekend,
		holiday,
	)
}

func (c *CalendarFeaturizer) Names() []string {
	return append(slices.Clone(c.Inner.Names()), "hour_of_day", "day_of_week", "is_weekend", "is_holiday")
}
