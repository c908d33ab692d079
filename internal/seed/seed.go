// Package seed populates default reference content: the dream symbol
// dictionary and daily horoscope placeholders. Seeders fill gaps by
// default and never duplicate existing rows.
package seed

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("github.com/thebtf/dreamlog/internal/seed")

// Options controls the merge policy of a seeder.
type Options struct {
	// Overwrite deletes the existing rows in scope before inserting the
	// full reference list.
	Overwrite bool
}

func recordInserted(ctx context.Context, kind string, n int) {
	if n == 0 {
		return
	}
	counter, err := meter.Int64Counter("dreamlog.seed.rows_inserted",
		metric.WithDescription("Rows inserted by seeders"))
	if err != nil {
		return
	}
	counter.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
}
