package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/igorls/fontawesome-mcp/src/auth"
	"github.com/igorls/fontawesome-mcp/src/catalog"
	"github.com/igorls/fontawesome-mcp/src/config"
	"github.com/igorls/fontawesome-mcp/src/server"
	"github.com/igorls/fontawesome-mcp/src/tools"
	"github.com/igorls/fontawesome-mcp/src/usage"
	"github.com/igorls/fontawesome-mcp/src/validation"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    server.Name,
		Usage:   "Font Awesome icon search and usage snippets over MCP",
		Version: server.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file read before the environment",
				Value: config.DefaultEnvFile,
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "Font Awesome API token (overrides FA_TOKEN)",
			},
			&cli.StringFlag{
				Name:    "framework",
				Aliases: []string{"f"},
				Usage:   "usage snippet framework: angular, react, vue or vanilla",
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "GraphQL endpoint",
			},
			&cli.StringFlag{
				Name:  "token-url",
				Usage: "token exchange endpoint",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve MCP over stdio (default)",
				Action: serve,
			},
			{
				Name:   "check",
				Usage:  "Check authentication and catalog connectivity",
				Action: check,
			},
		},
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(config.Options{
		ConfigFile: c.String("config"),
		EnvFile:    c.String("env-file"),
	})
	if err != nil {
		return cfg, err
	}
	cfg.Override(config.Config{
		APIToken:  c.String("token"),
		Framework: c.String("framework"),
		APIURL:    c.String("api-url"),
		TokenURL:  c.String("token-url"),
		LogLevel:  c.String("log-level"),
	})
	return cfg, nil
}

// stdout carries MCP frames, so logs always go to stderr.
func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
}

type services struct {
	tokens     *auth.TokenCache
	client     *catalog.Client
	dispatcher *tools.Dispatcher
}

func build(cfg config.Config, logger *slog.Logger) services {
	tokens := auth.NewTokenCache(cfg.APIToken,
		auth.WithTokenURL(cfg.TokenURL),
		auth.WithLogger(logger.With("component", "auth")),
	)
	client := catalog.NewClient(cfg.APIURL, tokens, catalog.WithLogger(logger.With("component", "catalog")))
	return services{
		tokens: tokens,
		client: client,
		dispatcher: tools.NewDispatcher(tools.Deps{
			Catalog:   client,
			Auth:      tokens,
			Framework: usage.ParseFramework(cfg.Framework),
			Logger:    logger.With("component", "tools"),
		}),
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, c.App.ErrWriter)
	if err := cfg.RequireToken(); err != nil {
		logger.Warn("pro features disabled", "reason", err)
	}
	svc := build(cfg, logger)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(svc.dispatcher, logger).Serve(ctx, os.Stdin, c.App.Writer)
}

// check prints the status report the server logs on startup.
func check(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, c.App.ErrWriter)
	svc := build(cfg, logger)
	out := c.App.Writer
	fw := usage.ParseFramework(cfg.Framework)

	fmt.Fprintf(out, "endpoint:  %s\n", cfg.APIURL)
	fmt.Fprintf(out, "framework: %s\n", usage.Guide(fw).Name)

	var authErr error
	if err := cfg.RequireToken(); err != nil {
		fmt.Fprintf(out, "auth:      free icons only (%v)\n", err)
	} else if cred, err := svc.tokens.Acquire(c.Context); err != nil {
		authErr = err
		fmt.Fprintf(out, "auth:      FAILED: %v\n", err)
	} else {
		fmt.Fprintf(out, "auth:      ok, scopes: %s\n", strings.Join(cred.Scopes, ", "))
		fmt.Fprintf(out, "pro:       %t\n", svc.tokens.HasProAccess(c.Context))
	}

	rel, err := svc.client.ReleaseInfo(c.Context, validation.DefaultVersion)
	if err != nil {
		return fmt.Errorf("release %s: %w", validation.DefaultVersion, err)
	}
	fmt.Fprintf(out, "release:   %s (%s), %d free / %d pro icons\n",
		rel.Version, rel.Date, rel.IconCount.Free, rel.IconCount.Pro)
	return authErr
}
