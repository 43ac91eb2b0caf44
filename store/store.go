package store

import (
	"context"

	"go.mau.fi/util/dbutil"
)

type SubmissionStore struct {
	DB *dbutil.Database
}

func NewSubmissionStore(db *dbutil.Database) *SubmissionStore {
	return &SubmissionStore{DB: db}
}

func (store *SubmissionStore) CreateTables(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS contact_submissions (
			id            VARCHAR(36) PRIMARY KEY,
			name          VARCHAR(255) NOT NULL,
			email         VARCHAR(255) NOT NULL,
			phone         VARCHAR(255),
			organisation  VARCHAR(255),
			message       TEXT NOT NULL,
			status        VARCHAR(32) NOT NULL DEFAULT 'new',
			submitted_at  TIMESTAMPTZ NOT NULL
		)
		`,
	}

	return store.DB.DoTxn(ctx, nil, func(ctx context.Context) error {
		for _, query := range queries {
			if _, err := store.DB.Exec(ctx, query); err != nil {
				return err
			}
		}
		return nil
	})
}
