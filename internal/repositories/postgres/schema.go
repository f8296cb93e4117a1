package postgres

import (
	"context"
	"fmt"
)

// Schema creates every table the simulator loads, parents first.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS vendors (
        id         TEXT PRIMARY KEY,
        name       TEXT NOT NULL,
        archetype  TEXT NOT NULL,
        postcode   TEXT NOT NULL,
        location   TEXT NOT NULL,
        categories TEXT[] NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS opening_hours (
        vendor_id    TEXT NOT NULL REFERENCES vendors(id) ON DELETE CASCADE,
        day          SMALLINT NOT NULL CHECK (day BETWEEN 0 AND 6),
        opening_hour SMALLINT NOT NULL,
        closing_hour SMALLINT NOT NULL,
        PRIMARY KEY (vendor_id, day)
    )`,
	`CREATE TABLE IF NOT EXISTS products (
        id           TEXT PRIMARY KEY,
        vendor_id    TEXT NOT NULL REFERENCES vendors(id) ON DELETE CASCADE,
        name         TEXT NOT NULL,
        category     TEXT NOT NULL,
        retail_price NUMERIC(10, 2) NOT NULL CHECK (retail_price > 0)
    )`,
	`CREATE TABLE IF NOT EXISTS users (
        id                   TEXT PRIMARY KEY,
        username             TEXT NOT NULL,
        email                TEXT NOT NULL,
        streak               INTEGER NOT NULL DEFAULT 0,
        date_last_collection TIMESTAMPTZ
    )`,
	`CREATE TABLE IF NOT EXISTS bundles (
        id               TEXT PRIMARY KEY,
        vendor_id        TEXT NOT NULL REFERENCES vendors(id) ON DELETE CASCADE,
        category         TEXT NOT NULL,
        name             TEXT NOT NULL,
        description      TEXT NOT NULL,
        retail_price     NUMERIC(10, 2) NOT NULL,
        price            NUMERIC(10, 2) NOT NULL,
        posting_time     TIMESTAMPTZ NOT NULL,
        collection_start TIMESTAMPTZ NOT NULL,
        collection_end   TIMESTAMPTZ NOT NULL,
        CHECK (price <= retail_price),
        CHECK (posting_time <= collection_start AND collection_start < collection_end)
    )`,
	`CREATE TABLE IF NOT EXISTS bundle_products (
        bundle_id  TEXT NOT NULL REFERENCES bundles(id) ON DELETE CASCADE,
        product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
        quantity   INTEGER NOT NULL CHECK (quantity > 0),
        PRIMARY KEY (bundle_id, product_id)
    )`,
	`CREATE TABLE IF NOT EXISTS reservations (
        id                TEXT PRIMARY KEY,
        bundle_id         TEXT NOT NULL UNIQUE REFERENCES bundles(id) ON DELETE CASCADE,
        user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        amount_due        NUMERIC(10, 2) NOT NULL,
        reservation_time  TIMESTAMPTZ NOT NULL,
        collection_status TEXT NOT NULL CHECK (collection_status IN ('COLLECTED', 'NO_SHOW')),
        collection_time   TIMESTAMPTZ,
        CHECK ((collection_status = 'COLLECTED') = (collection_time IS NOT NULL))
    )`,
	`CREATE TABLE IF NOT EXISTS disputes (
        id              TEXT PRIMARY KEY,
        reservation_id  TEXT NOT NULL REFERENCES reservations(id) ON DELETE CASCADE,
        user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        vendor_id       TEXT NOT NULL REFERENCES vendors(id) ON DELETE CASCADE,
        scenario        TEXT NOT NULL,
        reason          TEXT NOT NULL,
        vendor_response TEXT NOT NULL,
        status          TEXT NOT NULL CHECK (status IN ('APPROVED', 'DENIED'))
    )`,
	`CREATE TABLE IF NOT EXISTS dataset (
        bundle_id     TEXT PRIMARY KEY REFERENCES bundles(id) ON DELETE CASCADE,
        discount      DOUBLE PRECISION NOT NULL,
        price         DOUBLE PRECISION NOT NULL,
        weather       TEXT NOT NULL,
        category      TEXT NOT NULL,
        temperature   DOUBLE PRECISION NOT NULL,
        day           TEXT NOT NULL,
        lead_time     DOUBLE PRECISION NOT NULL,
        window_length DOUBLE PRECISION NOT NULL,
        time_of_day   DOUBLE PRECISION NOT NULL,
        is_reserved   BOOLEAN NOT NULL,
        is_collected  BOOLEAN NOT NULL
    )`,
}

func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range Schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
