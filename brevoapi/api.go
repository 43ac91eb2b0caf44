package brevoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://api.brevo.com/"

// ErrDeliveryNotConfirmed means Brevo accepted the request but the response
// carried no messageId, so the send cannot be treated as delivered.
var ErrDeliveryNotConfirmed = errors.New("brevo did not confirm delivery (no messageId)")

// APIError is a non-2xx response from the Brevo API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("brevo API error: %s (%s, status %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("brevo API returned non-2xx status code: %d", e.StatusCode)
}

type BrevoAPI struct {
	BaseURL string
	APIKey  string

	Client *http.Client
}

func NewBrevoAPI(baseURL, apiKey string) *BrevoAPI {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &BrevoAPI{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many (>=10) redirects, cancelling request")
				}
				return nil
			},
		},
	}
}

func (api *BrevoAPI) DoRequest(req *http.Request) (*http.Response, error) {
	req.Header.Set("api-key", api.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	return api.Client.Do(req)
}

func (api *BrevoAPI) MakeUri(endpoint string) string {
	uri, err := url.Parse(api.BaseURL)
	if err != nil {
		panic(err)
	}
	uri.Path = path.Join(uri.Path, "v3", endpoint)
	return uri.String()
}

// SendTransactionalEmail posts to the transactional email endpoint and returns
// the message ID Brevo assigned.
func (api *BrevoAPI) SendTransactionalEmail(ctx context.Context, email *SendSmtpEmail) (string, error) {
	log := zerolog.Ctx(ctx).With().
		Str("component", "send_transactional_email").
		Str("subject", email.Subject).
		Logger()

	jsonValue, err := json.Marshal(email)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, api.MakeUri("smtp/email"), bytes.NewBuffer(jsonValue))
	if err != nil {
		log.Err(err).Msg("Failed to create request")
		return "", err
	}

	resp, err := api.DoRequest(req)
	if err != nil {
		log.Err(err).Msg("Failed to make request")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		data, err := io.ReadAll(resp.Body)
		if err == nil {
			log.Error().Int("status_code", resp.StatusCode).Str("data", string(data)).Msg("got non-2xx status code")
			var errorResponse ErrorResponse
			if json.Unmarshal(data, &errorResponse) == nil {
				apiErr.Code = errorResponse.Code
				apiErr.Message = errorResponse.Message
			}
		}
		return "", apiErr
	}

	var sent SendSmtpEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil {
		return "", err
	}
	if sent.MessageID == "" {
		return "", ErrDeliveryNotConfirmed
	}

	log.Debug().Str("message_id", sent.MessageID).Msg("Brevo accepted the email")
	return sent.MessageID, nil
}
