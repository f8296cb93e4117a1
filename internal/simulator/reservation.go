package simulator

import (
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/chrisdamba/surplussim/internal/models"
	"github.com/chrisdamba/surplussim/internal/reference"
)

var ErrCapacityExceeded = errors.New("bundle has no reservation capacity left")

// Ledger counts accepted reservations per bundle. It is the only state
// shared between the goroutines simulating bundles.
type Ledger struct {
	mu       sync.Mutex
	capacity int
	held     map[string]int
}

func NewLedger(capacity int) *Ledger {
	return &Ledger{capacity: capacity, held: make(map[string]int)}
}

func (l *Ledger) Reserve(bundleID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[bundleID] >= l.capacity {
		return errors.Wrapf(ErrCapacityExceeded, "bundle %s", bundleID)
	}
	l.held[bundleID]++
	return nil
}

func (l *Ledger) Held(bundleID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held[bundleID]
}

// Outcome is the result of running one bundle through the reservation state
// machine. Reservation is nil when the bundle was never reserved.
type Outcome struct {
	State       string
	Reservation *models.Reservation
	Row         models.FeatureRow
	Reserve     Decision
	Collect     *Decision
}

type ReservationSimulator struct {
	ref           *reference.Data
	model         *DecisionModel
	ledger        *Ledger
	emptyDiscount float64
}

func NewReservationSimulator(ref *reference.Data, ledger *Ledger, emptyDiscount float64) *ReservationSimulator {
	return &ReservationSimulator{
		ref:           ref,
		model:         NewDecisionModel(ref),
		ledger:        ledger,
		emptyDiscount: emptyDiscount,
	}
}

// Features extracts the decision signals for a bundle, using the weather on
// its posting date.
func (s *ReservationSimulator) Features(b models.Bundle) (Features, models.WeatherObservation, error) {
	w, err := s.ref.Weather(b.PostingTime)
	if err != nil {
		return Features{}, w, errors.Wrapf(err, "bundle %s", b.ID)
	}
	mid := b.CollectionMidpoint()
	return Features{
		Discount:     b.Discount(s.emptyDiscount),
		Price:        b.Price,
		Temperature:  w.AvgTempC,
		LeadTime:     b.LeadTime().Hours(),
		WindowLength: b.WindowLength().Hours(),
		TimeOfDay:    float64(mid.Hour()) + float64(mid.Minute())/60 + float64(mid.Second())/3600,
		Day:          b.PostingTime.Weekday(),
		Category:     b.Category,
		Weather:      w.Condition,
	}, w, nil
}

// Simulate walks NOT_RESERVED -> RESERVED -> COLLECTED | NO_SHOW for one
// bundle. All randomness comes from rng, which should be the bundle's own
// sub-stream.
func (s *ReservationSimulator) Simulate(rng *rand.Rand, b models.Bundle, users []models.User) (Outcome, error) {
	f, w, err := s.Features(b)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		State: models.ReservationStateNotReserved,
		Row: models.FeatureRow{
			BundleID:     b.ID,
			Discount:     f.Discount,
			Price:        f.Price,
			Weather:      w.Condition,
			Category:     b.Category,
			Temperature:  w.AvgTempC,
			Day:          f.Day.String(),
			LeadTime:     f.LeadTime,
			WindowLength: f.WindowLength,
			TimeOfDay:    f.TimeOfDay,
		},
	}

	out.Reserve, err = s.model.Decide(rng, f, ReservationWeights)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, "bundle %s", b.ID)
	}
	if !out.Reserve.Accepted {
		return out, nil
	}

	if len(users) == 0 {
		return Outcome{}, errors.Errorf("bundle %s: no users to reserve it", b.ID)
	}
	if err := s.ledger.Reserve(b.ID); err != nil {
		return Outcome{}, err
	}

	reservedAt := uniformTime(rng, b.PostingTime, b.CollectionEnd.Add(-time.Hour))
	user := users[rng.Intn(len(users))]
	reservation := &models.Reservation{
		ID:              models.NewID(rng),
		BundleID:        b.ID,
		UserID:          user.ID,
		AmountDue:       b.Price,
		ReservationTime: reservedAt,
	}
	out.State = models.ReservationStateReserved
	out.Row.IsReserved = true

	untilClose := b.CollectionEnd.Sub(reservedAt).Hours()
	f.TimeToCollection = &untilClose
	collect, err := s.model.Decide(rng, f, CollectionWeights)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, "bundle %s", b.ID)
	}
	out.Collect = &collect

	if collect.Accepted {
		from := reservedAt
		if b.CollectionStart.After(from) {
			from = b.CollectionStart
		}
		collectedAt := uniformTime(rng, from, b.CollectionEnd)
		reservation.CollectionStatus = models.CollectionStatusCollected
		reservation.CollectionTime = &collectedAt
		out.State = models.ReservationStateCollected
		out.Row.IsCollected = true
	} else {
		reservation.CollectionStatus = models.CollectionStatusNoShow
		out.State = models.ReservationStateNoShow
	}

	out.Reservation = reservation
	return out, nil
}
