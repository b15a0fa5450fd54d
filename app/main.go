package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/recipehub/internal/blogservice"
	"github.com/sushihentaime/recipehub/internal/commentservice"
	"github.com/sushihentaime/recipehub/internal/common"
	"github.com/sushihentaime/recipehub/internal/mailservice"
	"github.com/sushihentaime/recipehub/internal/mediaservice"
	"github.com/sushihentaime/recipehub/internal/reactionservice"
	"github.com/sushihentaime/recipehub/internal/recipeservice"
	"github.com/sushihentaime/recipehub/internal/userservice"
	"github.com/sushihentaime/recipehub/internal/videoservice"
)

type application struct {
	config          *Config
	logger          *slog.Logger
	userService     *userservice.UserService
	videoService    *videoservice.VideoService
	blogService     *blogservice.BlogService
	commentService  *commentservice.CommentService
	reactionService *reactionservice.ReactionService
	recipeService   *recipeservice.RecipeService
	mediaService    *mediaservice.MediaService
	mailService     *mailservice.MailService
	limiter         common.Limiter
	broker          *common.MessageBroker

	// stopConsumers cancels the broker consumers on shutdown
	stopConsumers context.CancelFunc
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// run wires the services and serves until the process is signalled.
func run(cfg *Config) error {
	logger := newLogger(cfg)

	// Initialize the database
	db, err := common.NewDB(common.DBConfig{
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		User:         cfg.DBUser,
		Password:     cfg.DBPassword,
		Name:         cfg.DBName,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		MaxIdleTime:  cfg.DBMaxIdleTime,
	})
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		return err
	}
	defer common.CloseDB(db)

	// Initialize the message broker
	broker, err := common.NewMessageBroker(cfg.rabbitURI())
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		return err
	}
	defer broker.Close()

	if err := common.SetupUserExchange(broker); err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		return err
	}
	if err := common.SetupRecipeExchange(broker); err != nil {
		logger.Error("failed to setup the recipe exchange", slog.String("error", err.Error()))
		return err
	}

	generator, err := recipeservice.NewGenerator(recipeservice.GeneratorConfig{
		Provider: cfg.AIProvider,
		APIKey:   cfg.AIAPIKey,
		Model:    cfg.AIModel,
		BaseURL:  cfg.AIBaseURL,
	})
	if err != nil {
		logger.Error("failed to create the recipe generator", slog.String("error", err.Error()))
		return err
	}

	store, err := mediaservice.NewStore(context.Background(), mediaservice.StoreConfig{
		Driver:    cfg.StorageDriver,
		Endpoint:  cfg.StorageEndpoint,
		PublicURL: cfg.StoragePublicURL,
		Region:    cfg.StorageRegion,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		UseSSL:    cfg.StorageUseSSL,
	})
	if err != nil {
		logger.Error("failed to connect to the media store", slog.String("error", err.Error()))
		return err
	}

	cache := common.NewCache(userservice.UserCacheTime, 2*userservice.UserCacheTime)
	tokens := userservice.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	mailConfig := mailservice.MailConfig{
		Host:     cfg.MailHost,
		Port:     cfg.MailPort,
		Username: cfg.MailUser,
		Password: cfg.MailPassword,
		Sender:   cfg.MailSender,
	}

	// Initialize the services
	app := &application{
		config:          cfg,
		logger:          logger,
		userService:     userservice.NewUserService(db, broker, cache, tokens, logger),
		videoService:    videoservice.NewVideoService(db),
		blogService:     blogservice.NewBlogService(db),
		commentService:  commentservice.NewCommentService(db),
		reactionService: reactionservice.NewReactionService(db),
		recipeService:   recipeservice.NewRecipeService(db, generator, broker, logger, cfg.AITimeout),
		mediaService:    mediaservice.NewMediaService(store, logger),
		mailService:     mailservice.NewMailService(broker, mailConfig, logger),
		broker:          broker,
	}

	if cfg.RedisAddr != "" {
		limiter, err := common.NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("failed to connect to redis", slog.String("error", err.Error()))
			return err
		}
		defer limiter.Close()
		app.limiter = limiter
	}

	// Initialize the consumers
	if err := app.startConsumers(); err != nil {
		logger.Error("failed to start the consumers", slog.String("error", err.Error()))
		return err
	}

	// Start the HTTP server
	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		return err
	}

	return nil
}

func (app *application) startConsumers() error {
	ctx, cancel := context.WithCancel(context.Background())
	app.stopConsumers = cancel

	app.mailService.SendWelcomeEmail()

	if err := app.recipeService.ConsumeGenerated(ctx, app.broker); err != nil {
		cancel()
		return err
	}

	return nil
}

// shutdownConsumers stops the consumers and waits for in-flight work.
func (app *application) shutdownConsumers(timeout time.Duration) {
	if app.stopConsumers != nil {
		app.stopConsumers()
	}

	done := make(chan struct{})
	go func() {
		app.mailService.Close()
		app.recipeService.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		app.logger.Warn("consumers did not stop in time")
	}
}
