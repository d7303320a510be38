// Package httpserver runs the form validation HTTP service with graceful shutdown.
//
// Server is built from functional options or from an env-tagged Config:
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Run blocks until ctx is cancelled, SIGINT/SIGTERM arrives or the listener fails,
// then drains in-flight requests within the shutdown timeout. Start and stop hooks
// run around the server life-cycle; the service uses them to start and stop the
// rules file watcher.
//
// HealthCheckHandler serves liveness ("ALIVE") when given no checks and readiness
// ("READY" / "NOT_READY") otherwise.
//
// Listen failures are wrapped with ErrStart and shutdown failures with ErrShutdown.
package httpserver
