// Package account exposes the authentication subsystem over HTTP: Google
// OAuth, email/password login, OTP-gated signup and password reset, session
// check/logout, and the admin user surface. All endpoints speak JSON except
// the OAuth redirects, which bounce the browser back to the frontend.
package account
