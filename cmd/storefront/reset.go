package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storefront"
)

type resetLimitsCmd struct {
	Store config.Store `embed:""`
}

func (c *resetLimitsCmd) Run(ctx context.Context, logger *zap.Logger, out io.Writer) error {
	store, closeStore, err := openStore(ctx, c.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Reset(ctx); err != nil {
		return fmt.Errorf("reset order limits: %w", err)
	}
	logger.Info("order limits reset", zap.String("backend", c.Store.Backend), zap.String("record", c.Store.Record))
	_, err = fmt.Fprintln(out, storefront.ResetMessage)
	return err
}
