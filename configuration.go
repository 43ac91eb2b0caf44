package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.mau.fi/zeroconfig"
)

type Configuration struct {
	// Brevo authentication. BREVO_API_KEY in the environment takes
	// precedence over the key file.
	BrevoBaseURL    string `yaml:"brevo_base_url"`
	BrevoAPIKeyFile string `yaml:"brevo_api_key_file"`

	// Email routing
	SenderEmail       string `yaml:"sender_email"`
	RecipientEmail    string `yaml:"recipient_email"`
	ContactSenderName string `yaml:"contact_sender_name"`
	CouncilSenderName string `yaml:"council_sender_name"`

	// Database settings. Empty means run without persistence.
	DBConnectionString string `yaml:"db_connection_string"`

	// API listener settings
	ListenPort     int      `yaml:"listen_port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	DebugRoutes    bool     `yaml:"debug_routes"`

	// Logging configuration
	Logging zeroconfig.Config `yaml:"logging"`
}

func (c *Configuration) GetBrevoAPIKey(log *zerolog.Logger) (string, error) {
	if key := os.Getenv("BREVO_API_KEY"); key != "" {
		log.Debug().Msg("using Brevo API key from environment")
		return key, nil
	}
	log.Debug().Str("api_key_file", c.BrevoAPIKeyFile).Msg("reading Brevo API key from file")
	buf, err := os.ReadFile(c.BrevoAPIKeyFile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(buf)), nil
}

// ApplyEnvironmentOverrides keeps the original env-driven deployment working:
// SENDER_EMAIL and RECIPIENT_EMAIL beat whatever the yaml says.
func (c *Configuration) ApplyEnvironmentOverrides() {
	if v := os.Getenv("SENDER_EMAIL"); v != "" {
		c.SenderEmail = v
	}
	if v := os.Getenv("RECIPIENT_EMAIL"); v != "" {
		c.RecipientEmail = v
	}
}
