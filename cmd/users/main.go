// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command users serves a small users API built from hyper computations.
//
//	GET /health          200
//	GET /users           200, all users as JSON
//	GET /user/{username} 200 with the user, or 404
//
// Other paths answer 404 and other methods 405.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.hybscloud.com/hyper"
	"code.hybscloud.com/hyper/connect"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func newApp(logger *slog.Logger) *connect.App {
	return connect.New(connect.WithLogger(logger)).
		Use(hyper.ToRequestHandler(router, hyper.WithLogger(logger)))
}

func main() {
	addr := flag.String("addr", ":3000", "listen address")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	srv := &http.Server{
		Addr:              *addr,
		Handler:           otelhttp.NewHandler(newApp(logger), "users"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
