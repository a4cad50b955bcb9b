// Package httpserver is a lightweight wrapper around net/http adding
// graceful shutdown, configurable timeouts, health-check handlers, and
// structured logging via slog.
//
// Construction goes through New or NewFromConfig with functional Option
// values. Run blocks until the context is cancelled or an interrupt/TERM
// signal is received, then shuts the server down with a configurable
// deadline. Startup errors are wrapped with ErrStart and shutdown errors
// with ErrShutdown so callers can distinguish them with errors.Is.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
