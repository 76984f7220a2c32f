package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/digitalocean/contact-form/pkg/api"
	"github.com/digitalocean/contact-form/pkg/clients/airtable"
	"github.com/digitalocean/contact-form/pkg/config"
	"github.com/digitalocean/contact-form/pkg/content"
	"github.com/digitalocean/contact-form/pkg/graphql"
	"github.com/digitalocean/contact-form/pkg/logging"
	"github.com/digitalocean/contact-form/pkg/notify"
	"github.com/digitalocean/contact-form/pkg/services"
	"github.com/digitalocean/contact-form/pkg/store"
	"github.com/digitalocean/contact-form/pkg/validation"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Error configuring logging: %v", err)
	}

	pages, err := content.LoadSite(cfg.SiteFile)
	if err != nil {
		logger.WithError(err).Fatal("Error loading site")
	}

	submissions, closeStore, err := openStore(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Error opening submission store")
	}
	defer closeStore()

	// Initialize services
	submissionService := services.NewSubmissionService(
		validation.NewEngine(),
		submissions,
		newSender(cfg, logger),
		logger,
	)

	schema, err := graphql.NewSchema(pages)
	if err != nil {
		logger.WithError(err).Fatal("Error building GraphQL schema")
	}

	gin.SetMode(cfg.GinMode)

	handlers := api.NewHandlers(pages, submissionService, schema, logger)
	router, err := api.NewRouter(handlers, logger, cfg.CORSAllowedOrigins)
	if err != nil {
		logger.WithError(err).Fatal("Error building router")
	}

	logger.WithFields(logrus.Fields{
		"port":  cfg.Port,
		"store": cfg.StoreBackend,
		"mail":  cfg.MailBackend,
		"forms": len(pages.FormPages()),
	}).Info("Server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Error starting server")
	}
}

func openStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case "airtable":
		client := airtable.NewClient(cfg.AirtableAPIKey, cfg.AirtableBaseID)
		return store.NewAirtable(client, cfg.AirtableTable), func() {}, nil
	case "memory":
		return store.NewMemory(), func() {}, nil
	}
	db, err := store.OpenSqlite(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

func newSender(cfg *config.Config, logger logrus.FieldLogger) notify.Sender {
	if cfg.MailBackend == "smtp" {
		return notify.NewSMTP(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		})
	}
	return notify.NewConsole(logger.WithField("component", "mail"))
}
