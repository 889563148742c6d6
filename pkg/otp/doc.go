// Package otp implements email-delivered one-time passcodes.
//
// A Ledger keeps at most one pending Challenge per email address. Issue
// generates a six-digit code, stores it with an expiry window and emails it;
// Verify checks a submitted code and marks the challenge verified; Consume
// redeems a verified challenge for a specific purpose and deletes it.
// Splitting Verify from Consume lets the frontend confirm the code in one
// request and complete signup or password reset in another, while the ledger
// still enforces expiry at redemption time.
//
// Example:
//
//	store := otp.NewMemoryStore()
//	defer store.Close()
//
//	ledger := otp.NewLedger(store, mailer,
//		otp.WithWindow(10*time.Minute),
//		otp.WithMaxAttempts(5),
//	)
//
//	if err := ledger.Issue(ctx, "user@example.com", otp.PurposeSignup); err != nil {
//		// handle delivery or throttling errors
//	}
//
//	if err := ledger.Verify(ctx, "user@example.com", submittedCode); err != nil {
//		// wrong, expired or missing code
//	}
//
//	// Later, while creating the account:
//	if err := ledger.Consume(ctx, "user@example.com", otp.PurposeSignup); err != nil {
//		// code was never verified or has since expired
//	}
package otp
