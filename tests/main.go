// Command tests runs the in-memory booking backend so the service can be
// exercised locally without the real REST API:
//
//	go run ./tests -addr :8000
//	BACKEND_BASE_URL=http://localhost:8000 WIZARD_STORE=memory go run .
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YarKhan02/Workshop-sub000/services/backend/stub"
	"github.com/YarKhan02/Workshop-sub000/utils"

	"go.uber.org/zap"
)

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	flag.Parse()
	logger := utils.GetLogger()

	backend := stub.New()
	srv := &http.Server{Addr: *addr, Handler: backend.Handler(), ReadHeaderTimeout: 5 * time.Second}

	logger.Info("Stub backend listening",
		zap.String("addr", *addr),
		zap.String("email", stub.DemoEmail),
		zap.String("password", stub.DemoPassword))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("stub backend failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
