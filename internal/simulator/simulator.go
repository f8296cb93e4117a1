package simulator

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/lucsky/cuid"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/chrisdamba/surplussim/internal/models"
	"github.com/chrisdamba/surplussim/internal/reference"
)

// ResultWriter receives a finished simulation. Topic sinks and the postgres
// loader both implement it.
type ResultWriter interface {
	WriteResult(ctx context.Context, result *models.SimulationResult) error
}

type Simulator struct {
	Config     *models.Config
	Reference  *reference.Data
	Users      []models.User
	Rng        *rand.Rand
	EventQueue *models.EventQueue
	RunID      string

	vendorIDs    []string
	composer     *Composer
	schedules    *ScheduleGenerator
	ledger       *Ledger
	reservations *ReservationSimulator
	disputes     *DisputeSimulator
}

func NewSimulator(config *models.Config, ref *reference.Data, users []models.User) *Simulator {
	ledger := NewLedger(1)
	return &Simulator{
		Config:       config,
		Reference:    ref,
		Users:        users,
		Rng:          rand.New(rand.NewSource(config.Seed)),
		EventQueue:   models.NewEventQueue(),
		RunID:        cuid.New(),
		vendorIDs:    ref.VendorIDs(),
		composer:     NewComposer(ref, config),
		schedules:    NewScheduleGenerator(ref),
		ledger:       ledger,
		reservations: NewReservationSimulator(ref, ledger, config.EmptyBundleDiscount),
		disputes:     NewDisputeSimulator(config),
	}
}

type draft struct {
	bundle models.Bundle
	items  []models.LineItem
}

type slot struct {
	outcome Outcome
	err     error
}

// Run generates the dataset and hands it to w.
func (s *Simulator) Run(ctx context.Context, w ResultWriter) (*models.SimulationResult, error) {
	log.Printf("[%s] Simulation starts: %d bundles from %s to %s, seed %d, %d workers",
		s.RunID, s.Config.Bundles, models.DateKey(s.Config.StartDate), models.DateKey(s.Config.EndDate),
		s.Config.Seed, s.Config.Workers)

	result, err := s.Generate()
	if err != nil {
		return nil, err
	}

	if err := w.WriteResult(ctx, result); err != nil {
		return result, fmt.Errorf("failed to write simulation result: %w", err)
	}

	Summarize(result).Log(s.RunID)
	log.Printf("[%s] Simulation completed at %s", s.RunID, time.Now().UTC().Format(time.RFC3339))
	return result, nil
}

// Generate runs the whole pipeline in memory: bundles, reservations,
// streaks, disputes and the lifecycle event stream. It performs no I/O
// besides logging and progress output.
func (s *Simulator) Generate() (*models.SimulationResult, error) {
	result := &models.SimulationResult{
		RunID:         s.RunID,
		Seed:          s.Config.Seed,
		ReferenceDate: s.Config.ReferenceDate,
		Vendors:       s.Reference.Vendors(),
		Products:      s.Reference.AllProducts(),
	}

	drafts, err := s.generateBundles(result)
	if err != nil {
		return nil, err
	}

	slots, err := s.simulateReservations(drafts)
	if err != nil {
		return nil, err
	}

	for i, sl := range slots {
		b := drafts[i].bundle
		if sl.err != nil {
			s.skip(result, "bundle", b.ID, sl.err)
			continue
		}
		result.Bundles = append(result.Bundles, b)
		for _, item := range drafts[i].items {
			result.BundleProducts = append(result.BundleProducts, models.BundleProduct{
				BundleID:  b.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		result.Dataset = append(result.Dataset, sl.outcome.Row)
		result.ReservationScores = append(result.ReservationScores, sl.outcome.Reserve.Score)
		if sl.outcome.Reservation != nil {
			result.Reservations = append(result.Reservations, *sl.outcome.Reservation)
		}
	}

	result.Users = NewStreakCalculator(s.Config.ReferenceDate, result.Reservations).Apply(s.Users)
	result.Disputes = s.simulateDisputes(result)
	result.Events = s.lifecycleEvents(result)

	return result, nil
}

// generateBundles draws every bundle from the master stream, in order.
func (s *Simulator) generateBundles(result *models.SimulationResult) ([]draft, error) {
	drafts := make([]draft, 0, s.Config.Bundles)
	for i := 0; i < s.Config.Bundles; i++ {
		d, err := s.createBundle(s.Rng)
		if err != nil {
			if s.Config.FailFast {
				return nil, errors.Wrapf(err, "bundle #%d", i)
			}
			id := d.bundle.ID
			if id == "" {
				id = fmt.Sprintf("#%d", i)
			}
			s.skip(result, "bundle", id, err)
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func (s *Simulator) createBundle(rng *rand.Rand) (draft, error) {
	if len(s.vendorIDs) == 0 {
		return draft{}, &reference.MissingKeyError{Table: reference.TableVendors, Key: "*"}
	}
	date := pickDate(rng, s.Config.StartDate, s.Config.EndDate)
	vendorID := s.vendorIDs[rng.Intn(len(s.vendorIDs))]

	vendor, err := s.Reference.Vendor(vendorID)
	if err != nil {
		return draft{}, err
	}
	categories, err := s.Reference.Categories(vendorID)
	if err != nil {
		return draft{}, err
	}
	if len(categories) == 0 {
		return draft{}, &reference.MissingKeyError{Table: "vendor_categories", Key: vendorID}
	}
	category := categories[rng.Intn(len(categories))]

	d := draft{bundle: models.Bundle{ID: models.NewID(rng), VendorID: vendorID, Category: category}}

	d.items, d.bundle.RetailPrice, err = s.composer.Compose(rng, vendorID, category, s.Config.BundleBudget)
	if err != nil {
		return d, err
	}
	d.bundle.Price = s.composer.Price(rng, d.bundle.RetailPrice)

	sched, err := s.schedules.Schedule(rng, vendorID, date)
	if err != nil {
		return d, err
	}
	d.bundle.PostingTime = sched.PostingTime
	d.bundle.CollectionStart = sched.CollectionStart
	d.bundle.CollectionEnd = sched.CollectionEnd

	units := 0
	for _, item := range d.items {
		units += item.Quantity
	}
	label := models.CategoryLabel(category)
	d.bundle.Name = fmt.Sprintf("%s %s Bundle", vendor.Name, label)
	d.bundle.Description = fmt.Sprintf("%s bundle from %s. Contains %d product(s).", label, vendor.Name, units)

	return d, nil
}

// simulateReservations fans bundles out to the worker pool. Each bundle uses
// its own sub-stream and writes into its own slot, so the outcome does not
// depend on scheduling.
func (s *Simulator) simulateReservations(drafts []draft) ([]slot, error) {
	slots := make([]slot, len(drafts))
	bar := s.newProgressBar(len(drafts), "simulating reservations")

	g := new(errgroup.Group)
	g.SetLimit(s.Config.Workers)
	for i := range drafts {
		i := i
		g.Go(func() error {
			defer bar.Add(1)
			b := drafts[i].bundle
			out, err := s.reservations.Simulate(SubStream(s.Config.Seed, b.ID), b, s.Users)
			if err != nil {
				if s.Config.FailFast {
					return err
				}
				slots[i].err = err
				return nil
			}
			slots[i].outcome = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	_ = bar.Finish()

	return slots, nil
}

func (s *Simulator) simulateDisputes(result *models.SimulationResult) []models.Dispute {
	vendorOf := make(map[string]string, len(result.Bundles))
	for _, b := range result.Bundles {
		vendorOf[b.ID] = b.VendorID
	}

	var disputes []models.Dispute
	for _, r := range result.Reservations {
		if d := s.disputes.Simulate(SubStream(s.Config.Seed, r.ID), r, vendorOf[r.BundleID]); d != nil {
			disputes = append(disputes, *d)
		}
	}
	return disputes
}

func (s *Simulator) newProgressBar(n int, description string) *progressbar.ProgressBar {
	if s.Config.ShowProgress {
		return progressbar.Default(int64(n), description)
	}
	return progressbar.DefaultSilent(int64(n), description)
}

func (s *Simulator) skip(result *models.SimulationResult, entity, id string, err error) {
	log.Printf("[%s] Skipping %s %s: %v", s.RunID, entity, id, err)
	result.Skipped = append(result.Skipped, models.SkippedRecord{Entity: entity, ID: id, Reason: err.Error()})
}
