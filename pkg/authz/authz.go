package authz

import "github.com/republicadrc/memberkit/pkg/auth"

// IsAdmin reports whether the user holds the admin role. Pure and nil-safe:
// no user means no privileges.
func IsAdmin(user *auth.User) bool {
	return user != nil && user.Role == auth.RoleAdmin
}
