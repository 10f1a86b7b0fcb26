package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/valyala/fasthttp"

	"webcore/cmd/webcore/app"
	"webcore/pkg/banner"
	"webcore/pkg/config"
	"webcore/pkg/logger"
	"webcore/pkg/server"
	"webcore/pkg/transport/fasthttpx"
)

func main() {
	var (
		version = "dev"
	)

	_ = godotenv.Load(".env")
	flags := config.ParseCommandFlags()

	cfg, err := config.LoadEffective(flags)
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	logger.InitWithLevel(cfg.Logging.Level)

	srv := server.New(cfg.Worker.Count)
	app.Register(srv, cfg)

	onRequest := srv.Listen(nil)
	fasthttpHandler := fasthttpx.Adapter(onRequest, nil)

	banner.Print(cfg, srv.WorkerCount(), []string{"./viewer"}, version)

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		if cfg.Docs.Enabled {
			mux.Handle(cfg.Docs.Path+"/", httpSwagger.Handler(httpSwagger.URL("/openapi.yaml")))
			mux.Handle("/openapi.yaml", http.FileServer(http.Dir("./docs")))
		}
		metricsServer = &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	fasthttpServer := &fasthttp.Server{Handler: fasthttpHandler}
	errCh := make(chan error, 1)
	go func() {
		errCh <- fasthttpServer.ListenAndServe(cfg.Addr())
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigc:
		logger.Info("signal received, shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logger.Error("fasthttp server stopped", "error", err)
		}
	}

	_ = fasthttpServer.Shutdown()
	srv.Stop()
	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		_ = metricsServer.Shutdown(ctx)
	}
}
