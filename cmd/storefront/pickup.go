package main

import (
	"fmt"
	"io"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pickup"
)

type pickupDateCmd struct {
	At string `name:"at" help:"Order time as RFC3339; defaults to now."`

	now func() time.Time
}

func (c *pickupDateCmd) Run(out io.Writer) error {
	placed := time.Now()
	if c.now != nil {
		placed = c.now()
	}
	if c.At != "" {
		t, err := time.Parse(time.RFC3339, c.At)
		if err != nil {
			return fmt.Errorf("parse --at: %w", err)
		}
		placed = t
	}

	_, err := fmt.Fprintln(out, pickup.Format(pickup.Date(placed)))
	return err
}
