package store

import (
	"context"
	"time"
)

// ContactSubmission is the single flat record this service persists.
type ContactSubmission struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Organisation string
	Message      string
	Status       string
	SubmittedAt  time.Time
}

func (store *SubmissionStore) InsertContactSubmission(ctx context.Context, submission *ContactSubmission) error {
	_, err := store.DB.Exec(ctx, `
		INSERT INTO contact_submissions (id, name, email, phone, organisation, message, status, submitted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		submission.ID,
		submission.Name,
		submission.Email,
		submission.Phone,
		submission.Organisation,
		submission.Message,
		submission.Status,
		submission.SubmittedAt,
	)
	return err
}
