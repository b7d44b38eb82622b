package pipeline

import (
	"context"
	"log/slog"

	"github.com/parth025sharma/ladybug-comfort/internal/comfort"
	"github.com/parth025sharma/ladybug-comfort/internal/domain"
)

// ComfortTransformer implements Transformer by parsing raw hourly observations
// and enriching them with a UTCI value and stress classification.
type ComfortTransformer struct {
	par    *comfort.UTCIParameter
	logger *slog.Logger
}

// NewTransformer creates a ComfortTransformer. Pass a nil parameter to use the
// standard assessment thresholds.
func NewTransformer(par *comfort.UTCIParameter, logger *slog.Logger) *ComfortTransformer {
	return &ComfortTransformer{
		par:    par,
		logger: logger,
	}
}

func (t *ComfortTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.ComfortReport, error) {
	obs, err := domain.ParseRawObservation(raw)
	if err != nil {
		return domain.ComfortReport{}, err
	}

	report := domain.EnrichObservation(obs, t.par)

	t.logger.Debug("observation enriched",
		"station", report.Station,
		"utci_c", report.UTCIC,
		"category", report.CategoryName,
	)

	return report, nil
}
