package di

import (
	"context"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/adapters/gmail"
	"github.com/mikey/inbox-assistant/internal/adapters/mongostore"
	"github.com/mikey/inbox-assistant/internal/config"
	"github.com/mikey/inbox-assistant/internal/core"
	"github.com/mikey/inbox-assistant/internal/factory"
	"github.com/mikey/inbox-assistant/internal/logging"
	"github.com/mikey/inbox-assistant/internal/server"
)

// connectTimeout bounds the initial document-store connection attempt
const connectTimeout = 10 * time.Second

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSenderFactory); err != nil {
		return nil, err
	}

	// Register text generator
	if err := container.Provide(func(f *factory.LLMFactory) (core.TextGenerator, error) {
		return f.CreateTextGenerator()
	}); err != nil {
		return nil, err
	}

	// Register enrichment cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.EnrichmentCache, error) {
		return f.CreateEnrichmentCache()
	}); err != nil {
		return nil, err
	}

	// Register mailbox client
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *gmail.Client {
		return gmail.NewFactory(cfg, logger).CreateClient()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(client *gmail.Client) core.Mailbox {
		return client
	}); err != nil {
		return nil, err
	}

	// Register reply sender
	if err := container.Provide(func(f *factory.SenderFactory, client *gmail.Client) (core.ReplySender, error) {
		return f.CreateReplySender(client)
	}); err != nil {
		return nil, err
	}

	// Register document store. The connection is owned here, established once,
	// and handed to the record stores by reference.
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (*mongostore.Store, error) {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		mongoCfg := cfg.GetMongo()
		return mongostore.NewStore(ctx, mongoCfg.URI, mongoCfg.Database, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(store *mongostore.Store) core.EmailStore {
		return mongostore.NewEmailStore(store)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(store *mongostore.Store) core.ResponseStore {
		return mongostore.NewResponseStore(store)
	}); err != nil {
		return nil, err
	}

	// Register enrichment service
	if err := container.Provide(func(
		llm core.TextGenerator,
		cache core.EnrichmentCache,
		cfg *config.Config,
		f *factory.CacheFactory,
		logger *zap.Logger,
	) (*core.EnrichmentService, error) {
		ttl, err := f.GetCacheTTL()
		if err != nil {
			return nil, err
		}
		return core.NewEnrichmentService(
			llm,
			cache,
			logger,
			f.IsCacheEnabled(),
			ttl,
			cfg.GetLLM().MaxPromptSize,
			cfg.GetGmail().SupportDomain,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register ingestion service
	if err := container.Provide(func(
		mailbox core.Mailbox,
		emails core.EmailStore,
		cfg *config.Config,
		logger *zap.Logger,
	) *core.IngestionService {
		return core.NewIngestionService(mailbox, emails, logger, cfg.GetGmail().MaxResults)
	}); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(server.NewHTTPServer); err != nil {
		return nil, err
	}

	return container, nil
}
