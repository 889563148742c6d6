package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/republicadrc/memberkit/modules/account"
	"github.com/republicadrc/memberkit/pkg/auth"
	"github.com/republicadrc/memberkit/pkg/authz"
	"github.com/republicadrc/memberkit/pkg/config"
	"github.com/republicadrc/memberkit/pkg/cookie"
	"github.com/republicadrc/memberkit/pkg/email"
	"github.com/republicadrc/memberkit/pkg/httpserver"
	"github.com/republicadrc/memberkit/pkg/logger"
	"github.com/republicadrc/memberkit/pkg/mongo"
	"github.com/republicadrc/memberkit/pkg/otp"
	"github.com/republicadrc/memberkit/pkg/ratelimiter"
	"github.com/republicadrc/memberkit/pkg/redis"
	"github.com/republicadrc/memberkit/pkg/session"
	"github.com/republicadrc/memberkit/svc/store"
)

type appConfig struct {
	Name        string `env:"APP_NAME" envDefault:"memberkit"`
	Environment string `env:"APP_ENV" envDefault:"development"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg     appConfig
		httpCfg    httpserver.Config
		mongoCfg   mongo.Config
		redisCfg   redis.Config
		emailCfg   email.Config
		cookieCfg  cookie.Config
		sessionCfg session.Config
		googleCfg  auth.GoogleOAuthConfig
		accountCfg account.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&cookieCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&googleCfg)
	config.MustLoad(&accountCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, appCfg.Name))
	slog.SetDefault(log)

	mongoClient, err := mongo.New(ctx, mongoCfg)
	if err != nil {
		return fmt.Errorf("mongo connection failed: %w", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("mongo disconnect failed", "error", err)
		}
	}()

	db := mongoClient.Database(mongoCfg.Database)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("index setup failed: %w", err)
	}

	users := store.NewUserStore(db)
	otpStore := store.NewOTPStore(db)
	states := store.NewStateStore(db)

	healthchecks := []func(context.Context) error{mongo.Healthcheck(mongoClient)}

	// Redis is optional: without it sessions live in process memory, which
	// is fine for a single instance.
	var sessionStore session.Store
	if redisClient, err := redis.Connect(ctx, redisCfg); err != nil {
		log.Warn("redis unavailable, using in-memory sessions", "error", err)
		memStore := session.NewMemoryStore(sessionCfg.CleanupInterval)
		defer memStore.Close()
		sessionStore = memStore
	} else {
		defer func() { _ = redisClient.Close() }()
		sessionStore = session.NewRedisStore(redisClient)
		healthchecks = append(healthchecks, redis.Healthcheck(redisClient))
	}

	cookieMgr, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return fmt.Errorf("cookie manager setup failed: %w", err)
	}

	sessions := session.NewFromConfig(sessionCfg,
		session.WithStore(sessionStore),
		session.WithCookieManager(cookieMgr),
		session.WithLogger(log),
	)

	var mailer email.EmailSender
	if emailCfg.PostmarkServerToken != "" {
		mailer, err = email.NewPostmarkClient(emailCfg)
		if err != nil {
			return fmt.Errorf("postmark setup failed: %w", err)
		}
	} else {
		log.Warn("no postmark token set, writing emails to disk", "dir", emailCfg.DevOutputDir)
		mailer = email.NewDevSender(emailCfg.DevOutputDir)
	}

	limiterStore := ratelimiter.NewMemoryStore()
	defer limiterStore.Close()

	issueLimiter, err := ratelimiter.NewBucket(limiterStore, ratelimiter.Config{
		Capacity:       3,
		RefillRate:     3,
		RefillInterval: 10 * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("otp limiter setup failed: %w", err)
	}

	loginLimiter, err := ratelimiter.NewBucket(limiterStore, ratelimiter.Config{
		Capacity:       10,
		RefillRate:     10,
		RefillInterval: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("login limiter setup failed: %w", err)
	}

	ledger := otp.NewLedger(otpStore, mailer,
		otp.WithIssueLimiter(issueLimiter),
		otp.WithLogger(log),
	)

	resolver := auth.NewResolver(users, ledger, auth.WithResolverLogger(log))

	oauthSvc := auth.NewOAuthService(resolver, auth.NewGoogleAdapter(googleCfg), states,
		auth.WithStateTTL(googleCfg.StateTTL),
		auth.WithVerifiedOnly(googleCfg.VerifiedOnly),
		auth.WithOAuthLogger(log),
	)

	gate := authz.NewGate(sessions, users, authz.WithLogger(log))

	svc := account.NewService(accountCfg, resolver, oauthSvc, ledger, sessions, gate, users,
		account.WithLoginLimiter(loginLimiter),
		account.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log, healthchecks...))
	r.Mount("/", svc.Router())

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	log.Info("starting server", "addr", httpCfg.Addr, "env", appCfg.Environment)
	return srv.Run(ctx, r)
}
