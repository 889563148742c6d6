// Package validator provides composable, closure-based validation rules.
// Rules are applied in batch so callers receive every field error at once:
//
//	err := validator.Apply(
//		validator.ValidEmail("email", email),
//		validator.StrongPassword("password", password, cfg),
//	)
package validator
