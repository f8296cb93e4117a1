package simulator

import (
	"math"
	"math/rand"
	"time"

	"github.com/chrisdamba/surplussim/internal/reference"
)

// minOpenHours is the shortest trading day that fits a posting hour plus a
// one hour collection window.
const minOpenHours = 2

type Schedule struct {
	PostingTime     time.Time
	CollectionStart time.Time
	CollectionEnd   time.Time
}

type ScheduleGenerator struct {
	ref *reference.Data
}

func NewScheduleGenerator(ref *reference.Data) *ScheduleGenerator {
	return &ScheduleGenerator{ref: ref}
}

// Schedule places a posting time and a whole-hour collection window inside
// the vendor's opening hours on date:
//
//	open <= posting <= start < end <= close
func (g *ScheduleGenerator) Schedule(rng *rand.Rand, vendorID string, date time.Time) (Schedule, error) {
	day := startOfDay(date)
	h, err := g.ref.OpeningHours(vendorID, day.Weekday())
	if err != nil {
		return Schedule{}, err
	}
	if h.Close <= h.Open || h.Span() < minOpenHours {
		return Schedule{}, &reference.ScheduleError{VendorID: vendorID, Weekday: day.Weekday(), Open: h.Open, Close: h.Close}
	}

	postingHour := float64(h.Open) + rng.Float64()*float64(h.Close-1-h.Open)
	startHour := uniformInt(rng, int(math.Ceil(postingHour)), h.Close-1)
	endHour := uniformInt(rng, startHour+1, h.Close)

	return Schedule{
		PostingTime:     atFractionalHour(day, postingHour),
		CollectionStart: day.Add(time.Duration(startHour) * time.Hour),
		CollectionEnd:   day.Add(time.Duration(endHour) * time.Hour),
	}, nil
}

// atFractionalHour converts 13.755 into 13:45:18, truncating rather than
// rounding so the result never passes the hour it came from.
func atFractionalHour(day time.Time, hour float64) time.Time {
	whole := math.Floor(hour)
	minutes := (hour - whole) * 60
	seconds := (minutes - math.Floor(minutes)) * 60
	return day.Add(time.Duration(whole)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second)
}
