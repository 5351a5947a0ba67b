package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"

	"wheeladmin/internal/client"
	"wheeladmin/internal/config"
	"wheeladmin/internal/handlers"
	"wheeladmin/internal/principal"
	"wheeladmin/internal/sandbox"
	"wheeladmin/internal/services"
)

const shutdownTimeout = 10 * time.Second

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "wheeladmin"
	app.Usage = "Fortune wheel admin backend"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "env-file",
			Value: ".env",
			Usage: "load environment variables from this file when it exists",
		},
	}
	app.Before = func(c *cli.Context) error {
		return config.LoadDotEnv(c.String("env-file"))
	}
	app.Commands = []*cli.Command{
		{
			Action:      serve,
			Name:        "serve",
			Usage:       "Start the admin API",
			Category:    "Api",
			Description: `Serves the admin API on top of the wheel service and keeps the wheel in sync with it.`,
		},
		{
			Action:      serveSandbox,
			Name:        "sandbox",
			Usage:       "Start an in-memory wheel service",
			Category:    "Development",
			Description: `Serves the wheel service contract from memory, for local development.`,
		},
		{
			Action:    inspectPrincipal,
			Name:      "principal",
			Usage:     "Validate a principal and print its canonical form",
			ArgsUsage: "<principal>",
		},
	}
	return app
}

// listen runs srv until ctx is done, then shuts it down gracefully.
func listen(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func serve(c *cli.Context) error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Connect to the wheel service and the boundary nodes.
	actor, err := client.DialRPCActor(ctx, cfg.BackendRPCURL)
	if err != nil {
		return err
	}
	defer actor.Close()
	registrar := client.NewBnRegistrationClient(cfg.BnRegistrationURL, nil, cfg.BnRegistrationMock)
	fetcher := client.NewAssetFetcher(cfg.AssetBaseURL, nil)

	// 2. Initialize the services.
	prizes := services.NewPrizeOrder(actor)
	spinner := services.NewSpinner(prizes.Snapshot)
	defer spinner.Close()
	scanner := services.NewScanner(actor)
	defer scanner.Close()
	domains := services.NewCustomDomains(actor, registrar)
	poller := services.NewExtractionPoller(actor, prizes.Snapshot, spinner)

	// 3. Start the background loops.
	if err := prizes.Fetch(ctx); err != nil {
		logger.Warningf("Initial prize fetch failed: %v", err)
	}
	go prizes.Run(ctx, cfg.PrizesRefreshInterval)
	go poller.Run(ctx, cfg.ExtractionPollInterval)
	if cfg.ServicePrincipal != "" {
		go domains.Run(client.WithCaller(ctx, cfg.ServicePrincipal), cfg.DomainPollInterval)
	} else {
		logger.Warningf("SERVICE_PRINCIPAL is not set, custom domain registrations are only checked on demand")
	}

	// 4. Set up the router.
	httpHandler := handlers.NewHTTPHandler(handlers.Services{
		Prizes:   prizes,
		Spinner:  spinner,
		Assets:   services.NewWheelAssets(actor, fetcher),
		Scanner:  scanner,
		Team:     services.NewTeam(actor),
		Activity: services.NewActivity(actor),
		Domains:  domains,
		Wallet:   services.NewWallet(actor),
		AssetURL: fetcher.URL,
	}, cfg.IdentityHeader)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	httpHandler.RegisterRoutes(r)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", cfg.IdentityHeader},
		AllowCredentials: true,
	})

	// 5. Run the server.
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           corsHandler.Handler(gzhttp.GzipHandler(r)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Infof("Admin API starting on %s, wheel service at %s", cfg.ListenAddr, cfg.BackendRPCURL)
	return listen(ctx, srv)
}

func serveSandbox(c *cli.Context) error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := sandbox.NewBackend(cfg.SandboxSelfPrincipal)
	if cfg.SandboxAdminPrincipal != "" {
		if err := b.Bootstrap(cfg.SandboxAdminPrincipal, cfg.SandboxSeedDefaults); err != nil {
			return fmt.Errorf("bootstrap sandbox: %w", err)
		}
		logger.Infof("Sandbox admin is %s", cfg.SandboxAdminPrincipal)
	} else {
		logger.Warningf("SANDBOX_ADMIN_PRINCIPAL is not set, the first caller becomes admin")
	}

	router, stopRPC, err := sandbox.NewRouter(b)
	if err != nil {
		return err
	}
	defer stopRPC()

	srv := &http.Server{
		Addr:              cfg.SandboxListenAddr,
		Handler:           gzhttp.GzipHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Infof("Sandbox wheel service starting on %s", cfg.SandboxListenAddr)
	return listen(ctx, srv)
}

func inspectPrincipal(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: wheeladmin principal <principal>", 2)
	}
	p, err := principal.Parse(c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintf(c.App.Writer, "principal: %s\nbytes:     %s\nanonymous: %t\n", p, hex.EncodeToString(p.Bytes()), p.IsAnonymous())
	return nil
}
