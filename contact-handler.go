package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/scottyowen4683/aspiredentaldemo/store"
)

const contactSuccessMessage = "Thank you for contacting us. We'll get back to you within 24 hours."

const contactEmailTimeout = 30 * time.Second

type ContactSubmissionRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Organisation string `json:"organisation"`
	Message      string `json:"message"`
}

func decodeContactSubmission(r *http.Request) (*store.ContactSubmission, string) {
	var req ContactSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, "Invalid JSON body"
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return nil, "name, email and message are required"
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, "invalid email address"
	}

	return &store.ContactSubmission{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		Organisation: strings.TrimSpace(req.Organisation),
		Message:      req.Message,
		Status:       "new",
		SubmittedAt:  time.Now().UTC(),
	}, ""
}

func HandleContactSubmission(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	submission, errDetail := decodeContactSubmission(r)
	if submission == nil {
		respondError(w, http.StatusBadRequest, errDetail)
		return
	}
	log.Info().Str("submission_id", submission.ID).Msg("received contact submission")

	persistContactSubmission(r.Context(), submission)

	// The notification goes out in the background: delivery failures must
	// never leak into the response.
	go func() {
		ctx, cancel := context.WithTimeout(log.WithContext(context.Background()), contactEmailTimeout)
		defer cancel()
		if err := SendContactNotification(ctx, submission); err != nil {
			log.Err(err).Str("submission_id", submission.ID).Msg("failed to send contact notification")
		}
	}()

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": contactSuccessMessage,
		"id":      submission.ID,
	})
}

// HandleContactSubmissionDebug sends the notification synchronously so
// delivery errors surface in the response.
func HandleContactSubmissionDebug(w http.ResponseWriter, r *http.Request) {
	submission, errDetail := decodeContactSubmission(r)
	if submission == nil {
		respondError(w, http.StatusBadRequest, errDetail)
		return
	}

	persistContactSubmission(r.Context(), submission)

	if err := SendContactNotification(r.Context(), submission); err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("Email delivery failed: %s", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Email sent (debug route).",
		"id":      submission.ID,
	})
}

// Persistence is best-effort: a database failure never fails the request.
func persistContactSubmission(ctx context.Context, submission *store.ContactSubmission) {
	if submissionStore == nil {
		return
	}
	if err := submissionStore.InsertContactSubmission(ctx, submission); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("submission_id", submission.ID).Msg("failed to persist contact submission")
	}
}

func HandleDebugEnv(w http.ResponseWriter, r *http.Request) {
	apiKey, _ := configuration.GetBrevoAPIKey(hlog.FromRequest(r))
	respondJSON(w, http.StatusOK, map[string]any{
		"BREVO_API_KEY_set":     apiKey != "",
		"SENDER_EMAIL":          configuration.SenderEmail,
		"RECIPIENT_EMAIL":       configuration.RecipientEmail,
		"BREVO_API_KEY_preview": maskSecret(apiKey),
	})
}

func maskSecret(v string) string {
	if len(v) <= 8 {
		return v
	}
	return v[:4] + "..." + v[len(v)-4:]
}
