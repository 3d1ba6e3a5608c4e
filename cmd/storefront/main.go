package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
)

type CLI struct {
	Log config.Log `embed:""`

	Serve       serveCmd       `cmd:"" default:"withargs" help:"Run the storefront HTTP API."`
	ResetLimits resetLimitsCmd `cmd:"" help:"Clear every weekly order counter."`
	PickupDate  pickupDateCmd  `cmd:"" help:"Print the pickup date for an order placed now or at --at."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("storefront"),
		kong.Description("Storefront with weekly order limits, pickup scheduling and order submission."),
		kong.ShortUsageOnError(),
		kong.HelpOptions{Compact: true, WrapUpperBound: 80},
	)

	logger, err := logging.New(cli.Log.Level, cli.Log.Development)
	kctx.FatalIfErrorf(err)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.BindTo(os.Stdout, (*io.Writer)(nil))
	kctx.Bind(logger)

	if err := kctx.Run(); err != nil {
		logger.Error("command failed", zap.String("command", kctx.Command()), zap.Error(err))
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}
