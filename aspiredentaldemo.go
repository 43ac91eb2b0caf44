package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.mau.fi/util/dbutil"
	"go.mau.fi/zeroconfig"
	"gopkg.in/yaml.v2"

	"github.com/scottyowen4683/aspiredentaldemo/brevoapi"
	"github.com/scottyowen4683/aspiredentaldemo/store"
)

var configuration Configuration
var submissionStore *store.SubmissionStore
var brevo *brevoapi.BrevoAPI

var VERSION = "0.1.0"

func main() {
	// Arg parsing
	configPath := flag.String("config", "./config.yaml", "config file location")
	flag.Parse()

	// A .env file is optional; deployments that configure everything
	// through the yaml or real environment variables won't have one.
	_ = godotenv.Load()

	// Load configuration
	configYaml, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config_path", *configPath).Msg("Failed reading the config")
	}

	// Default configuration values
	configuration = Configuration{
		BrevoBaseURL:      brevoapi.DefaultBaseURL,
		ContactSenderName: "Aspire Executive Solutions",
		CouncilSenderName: "Aspire AI – Hinchinbrook",
		ListenPort:        8080,
		AllowedOrigins:    []string{"*"},
		Logging: zeroconfig.Config{
			Writers: []zeroconfig.WriterConfig{{
				Type:   zeroconfig.WriterTypeStdout,
				Format: zeroconfig.LogFormatPrettyColored,
			}},
		},
	}

	err = yaml.Unmarshal(configYaml, &configuration)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse configuration YAML")
	}
	configuration.ApplyEnvironmentOverrides()

	// Configure logging
	logger, err := configuration.Logging.Compile()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compile logging config")
	}
	log.Logger = *logger

	log.Info().Str("version", VERSION).Msg("Aspire backend starting...")

	if configuration.SenderEmail == "" || configuration.RecipientEmail == "" {
		log.Fatal().Msg("sender_email and recipient_email must be configured")
	}

	// Open the submission database (optional)
	if configuration.DBConnectionString != "" {
		dbUri, err := url.Parse(configuration.DBConnectionString)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid database URI")
		}
		switch dbUri.Scheme {
		case "postgres", "postgresql":
		default:
			log.Fatal().Str("scheme", dbUri.Scheme).Msg("Invalid database scheme")
		}

		rawDB, err := sql.Open("pgx", dbUri.String())
		if err != nil {
			log.Fatal().Err(err).Msg("Could not open the submission database")
		}
		db, err := dbutil.NewWithDB(rawDB, "postgres")
		if err != nil {
			log.Fatal().Err(err).Msg("Could not wrap the submission database")
		}
		db.Log = dbutil.ZeroLogger(log.Logger)

		submissionStore = store.NewSubmissionStore(db)
		if err := submissionStore.CreateTables(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to create the contact submission tables")
		}
	} else {
		log.Warn().Msg("no database configured, contact submissions will not be persisted")
	}

	apiKey, err := configuration.GetBrevoAPIKey(&log.Logger)
	if err != nil {
		log.Fatal().Err(err).Str("api_key_file", configuration.BrevoAPIKeyFile).Msg("Could not read the Brevo API key")
	}
	brevo = brevoapi.NewBrevoAPI(configuration.BrevoBaseURL, apiKey)

	// Make sure to exit cleanly
	c := make(chan os.Signal, 1)
	signal.Notify(c,
		syscall.SIGABRT,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	go func() {
		for range c { // when the process is killed
			log.Info().Msg("Cleaning up")
			if submissionStore != nil {
				submissionStore.DB.Close()
			}
			os.Exit(0)
		}
	}()

	router := NewAPIRouter()
	log.Info().Int("listen_port", configuration.ListenPort).Msg("starting API listener")
	err = http.ListenAndServe(fmt.Sprintf(":%d", configuration.ListenPort), router)
	if err != nil {
		log.Error().Err(err).Msg("creating the API listener failed")
	}
}
