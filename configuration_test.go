package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestGetBrevoAPIKey_EnvironmentWins(t *testing.T) {
	nop := zerolog.Nop()
	t.Setenv("BREVO_API_KEY", "xkeysib-from-env")

	config := Configuration{BrevoAPIKeyFile: "/nonexistent"}
	key, err := config.GetBrevoAPIKey(&nop)
	require.NoError(t, err)
	assert.Equal(t, "xkeysib-from-env", key)
}

func TestGetBrevoAPIKey_FromFile(t *testing.T) {
	nop := zerolog.Nop()
	t.Setenv("BREVO_API_KEY", "")

	keyFile := filepath.Join(t.TempDir(), "brevo_api_key")
	require.NoError(t, os.WriteFile(keyFile, []byte("  xkeysib-from-file\n"), 0o600))

	config := Configuration{BrevoAPIKeyFile: keyFile}
	key, err := config.GetBrevoAPIKey(&nop)
	require.NoError(t, err)
	assert.Equal(t, "xkeysib-from-file", key)
}

func TestGetBrevoAPIKey_MissingFile(t *testing.T) {
	nop := zerolog.Nop()
	t.Setenv("BREVO_API_KEY", "")

	config := Configuration{BrevoAPIKeyFile: filepath.Join(t.TempDir(), "missing")}
	_, err := config.GetBrevoAPIKey(&nop)
	require.Error(t, err)
}

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv("SENDER_EMAIL", "env-sender@example.com")
	t.Setenv("RECIPIENT_EMAIL", "")

	config := Configuration{
		SenderEmail:    "yaml-sender@example.com",
		RecipientEmail: "yaml-recipient@example.com",
	}
	config.ApplyEnvironmentOverrides()

	assert.Equal(t, "env-sender@example.com", config.SenderEmail)
	assert.Equal(t, "yaml-recipient@example.com", config.RecipientEmail)
}

func TestConfigurationYAML(t *testing.T) {
	configYaml := `
listen_port: 9090
sender_email: noreply@example.com
recipient_email: council@example.com
db_connection_string: postgres://localhost/aspire
debug_routes: true
allowed_origins:
- https://example.com
`
	config := Configuration{
		ListenPort:        8080,
		ContactSenderName: "Aspire Executive Solutions",
		AllowedOrigins:    []string{"*"},
	}
	require.NoError(t, yaml.Unmarshal([]byte(configYaml), &config))

	assert.Equal(t, 9090, config.ListenPort)
	assert.True(t, config.DebugRoutes)
	assert.Equal(t, []string{"https://example.com"}, config.AllowedOrigins)
	// Values absent from the yaml keep their defaults.
	assert.Equal(t, "Aspire Executive Solutions", config.ContactSenderName)
}
