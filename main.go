// main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"storefront/checkout"
	"storefront/clients"
	"storefront/config"
	"storefront/controllers"
	"storefront/reviews"
	"storefront/routes"
	"storefront/store"
	"storefront/utils"
)

type orderBackend interface {
	checkout.OrderSubmitter
	controllers.OrderHistory
}

// backend is everything the storefront reads from or writes to
type backend struct {
	orders   orderBackend
	reviews  reviews.Source
	catalog  controllers.ProductSource
	creator  controllers.ProductCreator
	accounts controllers.AccountStore
	close    func()
}

func main() {
	cfg := config.Load()

	logger, err := utils.NewLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}
	utils.JwtKey = []byte(cfg.JWTSecret)

	be, err := newBackend(cfg, logger)
	if err != nil {
		logger.Fatal("backend setup failed", zap.Error(err))
	}
	defer be.close()

	var mailer checkout.Mailer
	if sender := newEmailSender(cfg, logger); sender != nil {
		mailer = utils.NewEmailService(sender, logger)
	}

	sessions := controllers.NewSessions(be.orders, mailer, logger)
	var userController *controllers.UserController
	if be.accounts != nil {
		userController = controllers.NewUserController(be.accounts, logger)
	}

	router := routes.NewRouter(routes.Controllers{
		User:    userController,
		Product: controllers.NewProductController(be.catalog, be.creator, logger),
		Cart:    controllers.NewCartController(sessions, be.catalog, logger),
		Order:   controllers.NewOrderController(sessions, be.orders, cfg.RequestTimeout, logger),
		Review:  controllers.NewReviewController(reviews.NewService(be.reviews, logger), logger),
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server is running", zap.String("port", cfg.Port), zap.String("backend", cfg.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func newBackend(cfg config.Config, logger *zap.Logger) (*backend, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		client, err := utils.ConnectDB(context.Background(), cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDB)
		accounts := store.NewAccountStore(db)
		products := store.NewProductStore(db)
		return &backend{
			orders:   store.NewOrderStore(db),
			reviews:  store.NewReviewStore(db, accounts),
			catalog:  products,
			creator:  products,
			accounts: accounts,
			close:    disconnect(client, logger),
		}, nil
	default:
		base, err := clients.NewClient("storefront-api", cfg.APIBaseURL, &http.Client{Timeout: cfg.UpstreamTimeout})
		if err != nil {
			return nil, err
		}
		return &backend{
			orders:  clients.NewOrderClient(base),
			reviews: clients.NewReviewClient(base),
			catalog: clients.NewProductClient(base),
			close:   func() {},
		}, nil
	}
}

func disconnect(client *mongo.Client, logger *zap.Logger) func() {
	return func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("mongo disconnect failed", zap.Error(err))
		}
	}
}

func newEmailSender(cfg config.Config, logger *zap.Logger) utils.EmailSender {
	switch cfg.EmailProvider {
	case config.EmailPostmark:
		if cfg.PostmarkAPIToken == "" {
			logger.Warn("POSTMARK_API_TOKEN is not set, confirmation emails are off")
			return nil
		}
		return utils.NewPostmarkSender(cfg.PostmarkAPIToken, cfg.EmailSender)
	case config.EmailSendGrid:
		if cfg.SendGridAPIKey == "" {
			logger.Warn("SENDGRID_API_KEY is not set, confirmation emails are off")
			return nil
		}
		return utils.NewSendGridSender(cfg.SendGridAPIKey, "", cfg.EmailSender)
	}
	return nil
}
