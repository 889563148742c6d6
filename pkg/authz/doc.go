// Package authz enforces role-based access on HTTP routes.
//
// The Gate middleware resolves the session, loads the backing account and
// injects it into the request context. Anonymous requests get 401,
// authenticated non-admins get 403 on admin routes. Sessions pointing at
// deleted accounts are destroyed on sight.
package authz
