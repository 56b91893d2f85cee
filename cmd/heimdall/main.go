// Command heimdall starts the session authentication server.
package main

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/farstack/heimdall/adapters/events"
	"github.com/farstack/heimdall/adapters/status"
	"github.com/farstack/heimdall/adapters/store"
	"github.com/farstack/heimdall/adapters/tokenizer"
	"github.com/farstack/heimdall/adapters/verifier"
	"github.com/farstack/heimdall/config"
	"github.com/farstack/heimdall/ports"
	"github.com/farstack/heimdall/service"
	transporthttp "github.com/farstack/heimdall/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.InsecureSecret {
		logger.Warn("SESSION_SECRET not set, signing sessions with the built-in development secret")
	}

	// One verifier per process; it holds the RPC client and is
	// expensive to construct.
	signInVerifier, err := verifier.New(verifier.Config{
		RPCURL:              cfg.EthRPCURL,
		AcceptAuthAddresses: cfg.AcceptAuthAddrs,
	})
	if err != nil {
		logger.Fatal("failed to construct sign-in verifier", zap.Error(err))
	}
	if cfg.EthRPCURL == "" {
		logger.Warn("ETH_RPC_URL not set, skipping onchain fid custody checks")
	}

	var nonces ports.NonceStore
	var eventPub ports.EventPublisher
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("failed to parse Redis URL", zap.Error(err))
		}
		redisClient := redis.NewClient(opts)
		nonces = store.NewRedisStore(redisClient)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			logger.Fatal("failed to create Redis publisher", zap.Error(err))
		}
		eventPub = events.NewWatermillPublisher(publisher)
	} else {
		logger.Warn("REDIS_URL not set, nonce tracking is per-process and sign-in events are disabled")
		nonces = store.NewMemoryStore()
	}

	jwtTokenizer := tokenizer.NewJWTTokenizer([]byte(cfg.SessionSecret))
	statuses := status.NewHTTPProvider(cfg.StatusUpstreamURL)

	authService := service.NewAuthService(signInVerifier, jwtTokenizer, nonces, eventPub, logger)
	handlers := transporthttp.NewAuthHandlers(authService, statuses, cfg, logger)
	router := transporthttp.SetupRouter(handlers, authService)

	logger.Info("starting", zap.String("env", cfg.Env), zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
