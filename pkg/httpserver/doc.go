// Package httpserver provides an http.Server wrapper with graceful shutdown
// and health probe handlers.
//
// Example:
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", "error", err)
//	}
package httpserver
