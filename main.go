package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/gnomegl/gitoverlap/internal/art"
	"github.com/gnomegl/gitoverlap/internal/auth"
	appcli "github.com/gnomegl/gitoverlap/internal/cli"
	"github.com/gnomegl/gitoverlap/internal/config"
	"github.com/gnomegl/gitoverlap/internal/service"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func runApp(c *cli.Context) error {
	cfg, err := config.ParseConfig(c)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := auth.SetupPool(ctx, c, cfg)
	if err != nil {
		return err
	}

	color.New(color.FgBlue).Fprintf(color.Error, "Candidates: %d | Clients: %d\n\n", len(cfg.Candidates), pool.Size())
	return service.NewOrchestrator(pool, cfg, logger).Run(ctx)
}

func main() {
	log.SetFlags(0)

	app := appcli.NewApp(runApp)
	app.Before = func(c *cli.Context) error {
		if !c.Bool("help") && !c.Bool("version") {
			art.PrintLogo()
		}
		return nil
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
