package internal

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/folio/config"
	"github.com/vadiminshakov/folio/internal/services/portfolio"
	"github.com/vadiminshakov/folio/internal/services/report"
)

// Overview runs the portfolio overview of one exchange account: read the
// account, aggregate per asset, render the table.
type Overview struct {
	Config config.Config
	client any
}

// NewOverview creates an overview on an explicitly constructed client. The
// client is a platform client (see NewClient) or any account.Reader.
func NewOverview(conf config.Config, client any) (*Overview, error) {
	if _, err := newAccountReader(client); err != nil {
		return nil, errors.Wrap(err, "failed to create account reader")
	}
	if !report.Style(conf.TableStyle).IsValid() {
		return nil, errors.Errorf("unknown table style %q", conf.TableStyle)
	}

	return &Overview{Config: conf, client: client}, nil
}

// Run builds the report and writes it to w. Any failure aborts the run
// before anything is written.
func (o *Overview) Run(ctx context.Context, logger *zap.Logger, w io.Writer) error {
	logger = logger.With(
		zap.String("run_id", uuid.New().String()),
		zap.String("platform", o.Config.Platform),
		zap.String("quote", o.Config.QuoteCurrency),
	)

	reader, err := newAccountReader(o.client)
	if err != nil {
		return errors.Wrap(err, "failed to create account reader")
	}

	agg := portfolio.NewAggregator(reader, o.Config.QuoteCurrency, logger)
	reporter := report.NewReporter(agg, logger)

	logger.Info("building portfolio overview")
	table, err := reporter.BuildReport(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to build overview")
	}
	logger.Info("portfolio overview built", zap.Int("assets", len(table.Rows)-1))

	return report.Render(w, table, report.Style(o.Config.TableStyle))
}
