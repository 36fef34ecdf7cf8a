package repository

import (
	"context"
	"fmt"
)

// migrations use portable column types so the same DDL runs on Postgres and
// SQLite.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS loans (
		id TEXT PRIMARY KEY,
		borrower_name TEXT,
		co_borrower_name TEXT,
		address TEXT,
		city TEXT,
		state TEXT,
		zip_code TEXT,
		loan_amount NUMERIC,
		interest_rate NUMERIC,
		maturity_date DATE,
		date_of_loan DATE,
		current_upb NUMERIC,
		accrued_interest NUMERIC,
		total_balance NUMERIC,
		last_paid_date DATE,
		next_due_date DATE,
		remaining_term INTEGER,
		legal_status TEXT,
		lien_position TEXT,
		investor_name TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		loan_id TEXT REFERENCES loans(id),
		document_type TEXT,
		recording_date DATE,
		instrument_number TEXT,
		original_lender TEXT,
		assignor TEXT,
		assignee TEXT,
		confidence_score NUMERIC NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_loans_borrower_name ON loans(borrower_name)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_loan_id ON documents(loan_id)`,
}

// Migrate creates the schema on startup. Statements are idempotent.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := d.SQL.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
