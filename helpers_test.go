package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scottyowen4683/aspiredentaldemo/brevoapi"
)

// fakeBrevo records every email the service tries to send.
type fakeBrevo struct {
	server *httptest.Server

	mu     sync.Mutex
	fail   bool
	emails []brevoapi.SendSmtpEmail
}

func newFakeBrevo(t *testing.T) *fakeBrevo {
	fake := &fakeBrevo{}
	fake.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/smtp/email" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var email brevoapi.SendSmtpEmail
		if err := json.NewDecoder(r.Body).Decode(&email); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fake.mu.Lock()
		fake.emails = append(fake.emails, email)
		failing := fake.fail
		fake.mu.Unlock()

		if failing {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"code": "unauthorized", "message": "Key not found"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"messageId": "<test@smtp-relay.mailin.fr>"})
	}))
	t.Cleanup(fake.server.Close)
	return fake
}

func (fake *fakeBrevo) setFail(fail bool) {
	fake.mu.Lock()
	fake.fail = fail
	fake.mu.Unlock()
}

func (fake *fakeBrevo) sent() []brevoapi.SendSmtpEmail {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return append([]brevoapi.SendSmtpEmail(nil), fake.emails...)
}

// setupTestService points the package globals at a fake Brevo backend and a
// config matching the sample. Handlers read those globals, so these tests
// cannot run in parallel with each other.
func setupTestService(t *testing.T, fake *fakeBrevo) http.Handler {
	configuration = Configuration{
		BrevoBaseURL:      fake.server.URL,
		SenderEmail:       "noreply@example.com",
		RecipientEmail:    "council@example.com",
		ContactSenderName: "Aspire Executive Solutions",
		CouncilSenderName: "Aspire AI – Hinchinbrook",
		ListenPort:        8080,
		AllowedOrigins:    []string{"*"},
		DebugRoutes:       true,
	}
	submissionStore = nil
	brevo = brevoapi.NewBrevoAPI(fake.server.URL, "test-key")
	return NewAPIRouter()
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func getPath(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}
