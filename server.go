// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
)

// Start starts the HTTP server with graceful shutdown.
// Start freezes the router before serving, making routes immutable.
//
// Start binds the configured port when free. When it is taken, Start walks
// upward one port at a time (up to the configured attempt count) and serves
// on the first free port; [App.URL] reports the effective address. With
// [WithStrictPort] the probe is disabled and a taken port is an error.
// An exhausted probe returns an error wrapping [ErrNoPortAvailable].
//
// The context controls the application lifecycle. When canceled, it
// triggers graceful shutdown of the server and the metrics recorder.
// Signal handling should be configured by the caller using
// signal.NotifyContext.
//
// Example:
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer cancel()
//
//	if err := app.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
func (a *App) Start(ctx context.Context) error {
	if a.metrics != nil {
		if err := a.metrics.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	// Execute OnStart hooks sequentially, stopping on first error
	if err := a.executeStartHooks(ctx); err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	// Freeze router before starting (point of no return)
	a.router.Freeze()

	listener, err := a.listen(ctx)
	if err != nil {
		return err
	}

	port := listener.Addr().(*net.TCPAddr).Port
	a.setURL(fmt.Sprintf("http://%s:%d", displayHost(a.config.server.host), port))

	sc := a.config.server
	server := &http.Server{
		Addr:              listener.Addr().String(),
		Handler:           a.router,
		ReadTimeout:       sc.readTimeout,
		WriteTimeout:      sc.writeTimeout,
		IdleTimeout:       sc.idleTimeout,
		ReadHeaderTimeout: sc.readHeaderTimeout,
		MaxHeaderBytes:    sc.maxHeaderBytes,
	}

	return a.runServer(ctx, server, listener)
}

// listen binds a listener using a sequential port probe: try the configured
// port, then the next one, until a bind succeeds or the attempt budget runs
// out. Strict mode makes a single attempt.
func (a *App) listen(ctx context.Context) (net.Listener, error) {
	sc := a.config.server
	attempts := sc.portAttempts
	if sc.strictPort {
		attempts = 1
	}

	var lc net.ListenConfig
	var lastErr error
	for i := 0; i < attempts; i++ {
		port := sc.port + i
		if port > 65535 {
			break
		}
		addr := net.JoinHostPort(sc.host, strconv.Itoa(port))
		listener, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			lastErr = err
			continue
		}
		if i > 0 {
			a.Logger().Info("configured port taken, using next available",
				"configured", sc.port,
				"port", port,
			)
		}
		return listener, nil
	}

	if sc.strictPort {
		return nil, fmt.Errorf("failed to listen on port %d: %w", sc.port, lastErr)
	}
	return nil, fmt.Errorf("%w: tried %d ports starting at %d (last error: %v)",
		ErrNoPortAvailable, attempts, sc.port, lastErr)
}

// displayHost returns the host to show in the effective URL. An empty bind
// host means all interfaces, displayed as localhost for a clickable URL.
func displayHost(host string) string {
	if host == "" || host == "0.0.0.0" || host == "::" {
		return "localhost"
	}
	return host
}

// runServer handles the common lifecycle for starting and shutting down the
// HTTP server. The context controls the server lifecycle: when canceled, it
// triggers graceful shutdown.
func (a *App) runServer(ctx context.Context, server *http.Server, listener net.Listener) error {
	serverErr := make(chan error, 1)
	serverReady := make(chan struct{})
	go func() {
		if a.config.banner {
			a.printStartupBanner()
		}
		a.logStartupInfo(ctx)

		// Signal that server is ready to accept connections
		close(serverReady)

		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	// Wait for server to be ready, then execute OnReady hooks
	<-serverReady
	a.executeReadyHooks()

	// Wait for context cancellation or server error.
	// Signal handling should be done by the caller via signal.NotifyContext.
	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		a.Logger().Info("server shutting down", "reason", ctx.Err())
	}

	// The original ctx is already canceled (that's what triggered the
	// shutdown), so the shutdown deadline derives from a fresh context.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.server.shutdownTimeout)
	defer cancel()

	// Execute OnShutdown hooks (LIFO order)
	a.executeShutdownHooks(shutdownCtx)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if a.metrics != nil {
		if err := a.metrics.Shutdown(shutdownCtx); err != nil {
			a.Logger().Warn("metrics shutdown failed", "error", err)
		}
	}

	if a.logging != nil {
		if err := a.logging.Shutdown(shutdownCtx); err != nil {
			a.Logger().Warn("logging shutdown failed", "error", err)
		}
	}

	a.Logger().Info("server exited")

	return nil
}

// logStartupInfo logs startup information including the effective URL and
// environment.
func (a *App) logStartupInfo(ctx context.Context) {
	attrs := []any{
		"url", a.URL(),
		"environment", a.config.environment,
	}
	if a.metrics != nil {
		attrs = append(attrs, "metrics_enabled", true, "metrics_address", a.metrics.ServerAddress())
	}
	a.Logger().InfoContext(ctx, "server starting", attrs...)
}
