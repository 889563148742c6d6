package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/republicadrc/memberkit/pkg/ratelimiter"
)

// Router builds the module's route tree. Mount it at the application root:
//
//	r := chi.NewRouter()
//	r.Mount("/", svc.Router())
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()

	r.Route("/auth", func(ar chi.Router) {
		ar.Get("/google", s.handleGoogleRedirect)
		ar.Get("/google/callback", s.handleGoogleCallback)

		if s.loginLimiter != nil {
			ar.With(ratelimiter.Middleware(s.loginLimiter, ratelimiter.ByClientIP())).
				Post("/email-login", s.handleEmailLogin)
		} else {
			ar.Post("/email-login", s.handleEmailLogin)
		}

		ar.Post("/send-otp", s.handleSendOTP)
		ar.Post("/verify-otp", s.handleVerifyOTP)
		ar.Post("/email-signup", s.handleEmailSignup)
		ar.Post("/forgot-password-request", s.handleForgotPasswordRequest)
		ar.Post("/reset-password", s.handleResetPassword)

		ar.Get("/check", s.handleCheck)
		ar.Get("/logout", s.handleLogout)
	})

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(s.gate.RequireAdmin)
		admin.Get("/users", s.handleListUsers)
		admin.Post("/users/{id}/promote", s.handlePromoteUser)
	})

	return r
}
