package output

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chrisdamba/surplussim/internal/models"
	"github.com/chrisdamba/surplussim/internal/repositories"
	"github.com/chrisdamba/surplussim/internal/repositories/postgres"
)

// PostgresOutput loads a finished simulation into PostgreSQL. Each run
// replaces the previous one inside a single transaction.
type PostgresOutput struct {
	pool       *pgxpool.Pool
	maxRetries int
}

func NewPostgresOutput(ctx context.Context, config models.DatabaseConfig) (*PostgresOutput, error) {
	poolConfig, err := pgxpool.ParseConfig(config.URL)
	if err != nil {
		return nil, fmt.Errorf("error parsing database url: %w", err)
	}
	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresOutput{pool: pool, maxRetries: 3}, nil
}

// store groups the repositories bound to one transaction.
type store struct {
	vendors      repositories.VendorRepository
	products     repositories.ProductRepository
	users        repositories.UserRepository
	bundles      repositories.BundleRepository
	reservations repositories.ReservationRepository
	disputes     repositories.DisputeRepository
	dataset      repositories.DatasetRepository
}

func newStore(db postgres.DB) *store {
	return &store{
		vendors:      postgres.NewVendorRepository(db),
		products:     postgres.NewProductRepository(db),
		users:        postgres.NewUserRepository(db),
		bundles:      postgres.NewBundleRepository(db),
		reservations: postgres.NewReservationRepository(db),
		disputes:     postgres.NewDisputeRepository(db),
		dataset:      postgres.NewDatasetRepository(db),
	}
}

func (p *PostgresOutput) WriteResult(ctx context.Context, result *models.SimulationResult) error {
	err := p.ExecTxWithRetry(ctx, func(tx pgx.Tx) error {
		return load(ctx, newStore(tx), result)
	})
	if err != nil {
		return err
	}
	log.Printf("[%s] Loaded %d bundles, %d reservations, %d disputes into postgres",
		result.RunID, len(result.Bundles), len(result.Reservations), len(result.Disputes))
	return nil
}

// load clears the previous run and inserts parents before children. Users
// go in unranked and receive their streaks once collections are stored.
func load(ctx context.Context, s *store, result *models.SimulationResult) error {
	tables := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"dataset", s.dataset.DeleteAll},
		{"disputes", s.disputes.DeleteAll},
		{"reservations", s.reservations.DeleteAll},
		{"bundles", s.bundles.DeleteAll},
		{"users", s.users.DeleteAll},
		{"products", s.products.DeleteAll},
		{"vendors", s.vendors.DeleteAll},
	}
	for _, c := range tables {
		if err := c.fn(ctx); err != nil {
			return fmt.Errorf("failed to clear %s: %w", c.name, err)
		}
	}

	if err := s.vendors.BulkCreate(ctx, result.Vendors); err != nil {
		return fmt.Errorf("failed to insert vendors: %w", err)
	}
	if err := s.products.BulkCreate(ctx, result.Products); err != nil {
		return fmt.Errorf("failed to insert products: %w", err)
	}
	if err := s.users.BulkCreate(ctx, unranked(result.Users)); err != nil {
		return fmt.Errorf("failed to insert users: %w", err)
	}
	if err := s.bundles.BulkCreate(ctx, result.Bundles, result.BundleProducts); err != nil {
		return fmt.Errorf("failed to insert bundles: %w", err)
	}
	if err := s.reservations.BulkCreate(ctx, result.Reservations); err != nil {
		return fmt.Errorf("failed to insert reservations: %w", err)
	}
	if err := s.disputes.BulkCreate(ctx, result.Disputes); err != nil {
		return fmt.Errorf("failed to insert disputes: %w", err)
	}
	if err := s.dataset.BulkCreate(ctx, result.Dataset); err != nil {
		return fmt.Errorf("failed to insert dataset: %w", err)
	}

	updates := make([]models.StreakUpdate, 0, len(result.Users))
	for _, u := range result.Users {
		updates = append(updates, u.StreakUpdate())
	}
	if err := s.users.UpdateStreaks(ctx, updates); err != nil {
		return fmt.Errorf("failed to update streaks: %w", err)
	}
	return nil
}

func unranked(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		u.Streak, u.LastCollectionTime = 0, nil
		out[i] = u
	}
	return out
}

func (p *PostgresOutput) Close() error {
	p.pool.Close()
	return nil
}

func (p *PostgresOutput) ExecTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx failed: %v, rollback failed: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (p *PostgresOutput) ExecTxWithRetry(ctx context.Context, fn func(pgx.Tx) error) error {
	var err error
	for i := 0; i < p.maxRetries; i++ {
		err = p.ExecTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryableError(err) {
			return err
		}
		log.Printf("Retrying transaction after %v", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff(i)):
		}
	}
	return fmt.Errorf("failed after %d retries: %w", p.maxRetries, err)
}

func retryBackoff(attempt int) time.Duration {
	return time.Duration(100<<attempt) * time.Millisecond
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", // serialization_failure
		"40P01", // deadlock_detected
		"55P03": // lock_not_available
		return true
	}
	return false
}
