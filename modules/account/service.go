package account

import (
	"io"
	"log/slog"
	"strings"

	"github.com/republicadrc/memberkit/pkg/auth"
	"github.com/republicadrc/memberkit/pkg/authz"
	"github.com/republicadrc/memberkit/pkg/otp"
	"github.com/republicadrc/memberkit/pkg/ratelimiter"
	"github.com/republicadrc/memberkit/pkg/session"
)

// Service wires the authentication services into an HTTP surface. It owns
// no business rules itself; every handler delegates to the resolver, ledger,
// OAuth service, or session manager and translates the outcome to JSON.
type Service struct {
	cfg          Config
	resolver     *auth.Resolver
	oauth        *auth.OAuthService
	ledger       *otp.Ledger
	sessions     *session.Manager
	gate         *authz.Gate
	users        auth.UserStore
	loginLimiter ratelimiter.RateLimiter
	log          *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLoginLimiter throttles the password login endpoint per client IP.
func WithLoginLimiter(limiter ratelimiter.RateLimiter) Option {
	return func(s *Service) {
		s.loginLimiter = limiter
	}
}

// WithLogger sets the logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates the account HTTP service.
func NewService(
	cfg Config,
	resolver *auth.Resolver,
	oauth *auth.OAuthService,
	ledger *otp.Ledger,
	sessions *session.Manager,
	gate *authz.Gate,
	users auth.UserStore,
	opts ...Option,
) *Service {
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")

	s := &Service{
		cfg:      cfg,
		resolver: resolver,
		oauth:    oauth,
		ledger:   ledger,
		sessions: sessions,
		gate:     gate,
		users:    users,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
