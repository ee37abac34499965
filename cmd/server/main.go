package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/app"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/platform/config"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/platform/httpserver"
	"github.com/aws-samples/aws-contactus-serverless-website/internal/platform/logger"
	httptransport "github.com/aws-samples/aws-contactus-serverless-website/internal/transport/http"
)

// main serves the contact API locally with the same authorizer and handler
// the Lambda functions use. Business logic lives in internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	decider, err := app.NewAuthorizer(ctx, cfg.Authorizer, log, reg)
	if err != nil {
		log.Error("failed to initialize authorizer", "error", err)
		os.Exit(1)
	}
	svc, err := app.NewContact(ctx, cfg.Contact, log, reg)
	if err != nil {
		log.Error("failed to initialize contact service", "error", err)
		os.Exit(1)
	}
	limiter, redisClient, err := app.NewLimiter(ctx, cfg.RateLimit, log, reg)
	if err != nil {
		log.Error("failed to initialize rate limiter", "error", err)
		os.Exit(1)
	}

	deps := httptransport.Deps{
		Decider:  decider,
		Contact:  svc,
		Limiter:  limiter,
		Gatherer: reg,
		Logger:   log,
	}
	if redisClient != nil {
		defer redisClient.Close()
		deps.Health = redisClient.Health
	}

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(deps))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting contact-us server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
