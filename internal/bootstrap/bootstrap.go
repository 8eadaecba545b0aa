package bootstrap

import (
	"context"
	"fmt"

	"github.com/kirillkom/outfit-assistant/internal/config"
	"github.com/kirillkom/outfit-assistant/internal/core/ports"
	"github.com/kirillkom/outfit-assistant/internal/core/usecase"
	"github.com/kirillkom/outfit-assistant/internal/infrastructure/llm/openai"
	"github.com/kirillkom/outfit-assistant/internal/infrastructure/queue/nats"
	"github.com/kirillkom/outfit-assistant/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/outfit-assistant/internal/infrastructure/resilience"
	"github.com/kirillkom/outfit-assistant/internal/infrastructure/storage/localfs"
)

// App holds the wired dependency graph shared by the api and the worker.
type App struct {
	Config *config.Config

	Wardrobe ports.WardrobeRepository
	Outfits  ports.OutfitRepository
	Requests ports.RequestLog
	Images   ports.ImageStore
	Queue    ports.MessageQueue

	IntakeUC  ports.ItemIngestor
	TaggingUC ports.TaggingProcessor
	ComposeUC ports.OutfitComposerService
	SaveUC    ports.OutfitSaver
	DeleteUC  ports.ItemRemover

	closeFn func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	wardrobe := postgres.NewWardrobeRepository(db)
	outfits := postgres.NewOutfitRepository(db)
	requests := postgres.NewRequestLogRepository(db)

	images, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init image storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	client := openai.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIVisionModel, cfg.OpenAIGenModel)
	tagger := openai.NewTagger(client, images, executor)
	selector := openai.NewSelector(client)

	intakeUC := usecase.NewIntakeItemUseCase(wardrobe, images, queue, tagger, cfg.TagTimeout)
	taggingUC := usecase.NewTagItemUseCase(wardrobe, tagger)
	composeUC := usecase.NewComposeOutfitUseCase(wardrobe, selector, requests, cfg.ComposeTimeout)
	saveUC := usecase.NewSaveOutfitUseCase(outfits)
	deleteUC := usecase.NewDeleteItemUseCase(wardrobe, images)

	return &App{
		Config: cfg,

		Wardrobe: wardrobe,
		Outfits:  outfits,
		Requests: requests,
		Images:   images,
		Queue:    queue,

		IntakeUC:  intakeUC,
		TaggingUC: taggingUC,
		ComposeUC: composeUC,
		SaveUC:    saveUC,
		DeleteUC:  deleteUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
