package report

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/folio/internal/domain"
	"go.uber.org/zap"
)

const (
	ColumnTotInvested = "TotInvested"
	ColumnAmount      = "Amount"
	ColumnAvgBuyPrice = "AvgBuyPrice"
	ColumnCurPrice    = "CurPrice"
	ColumnValue       = "Value"
	ColumnYield       = "Yield"
	ColumnYieldPct    = "YieldPct"

	// TotalLabel label of the last row.
	TotalLabel = "Total"

	placeholder = "-"
	places      = 2
)

// Columns of the overview, in display order.
var Columns = []string{
	ColumnTotInvested,
	ColumnAmount,
	ColumnAvgBuyPrice,
	ColumnCurPrice,
	ColumnValue,
	ColumnYield,
	ColumnYieldPct,
}

var hundred = decimal.NewFromInt(100)

type summarizer interface {
	ListOwnedAssetSymbols(ctx context.Context) ([]string, error)
	SummaryRow(ctx context.Context, symbol string) (domain.AssetSummary, error)
}

// Reporter assembles the overview table from per-asset summaries.
type Reporter struct {
	summarizer summarizer
	logger     *zap.Logger
}

// NewReporter creates a reporter on top of the aggregator.
func NewReporter(s summarizer, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{summarizer: s, logger: logger}
}

// BuildReport produces one row per owned asset followed by the Total row.
// Any asset failure aborts the whole report.
func (r *Reporter) BuildReport(ctx context.Context) (*Table, error) {
	symbols, err := r.summarizer.ListOwnedAssetSymbols(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.AssetSummary, 0, len(symbols))
	for _, symbol := range symbols {
		s, err := r.summarizer.SummaryRow(ctx, symbol)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to summarize %s", symbol)
		}
		r.logger.Info("asset processed", zap.String("symbol", symbol))
		summaries = append(summaries, s)
	}

	return NewTableFromSummaries(summaries)
}

// NewTableFromSummaries lays out the summaries and appends the Total row:
// invested, value and yield are column sums, the yield percentage is
// ΣYield / ΣValue × 100, or "-" when ΣValue is zero. An empty portfolio
// yields domain.ErrInsufficientData.
func NewTableFromSummaries(summaries []domain.AssetSummary) (*Table, error) {
	t := NewTable(Columns...)

	invested, val, yield := decimal.Zero, decimal.Zero, decimal.Zero
	for _, s := range summaries {
		if err := t.AddRow(s.Symbol,
			s.TotalInvested.StringFixed(places),
			s.Amount.StringFixed(places),
			s.AverageBuyPrice.StringFixed(places),
			s.CurrentPrice.StringFixed(places),
			s.CurrentValue.StringFixed(places),
			s.YieldAbsolute.StringFixed(places),
			domain.FormatPercent(s.YieldPercent),
		); err != nil {
			return nil, err
		}

		invested = invested.Add(s.TotalInvested)
		val = val.Add(s.CurrentValue)
		yield = yield.Add(s.YieldAbsolute)
	}

	if len(summaries) == 0 {
		return nil, errors.Wrap(domain.ErrInsufficientData, "no owned assets to report")
	}

	// unpriced holdings leave the total percentage undefined, the rows still stand
	yieldPct := placeholder
	if !val.IsZero() {
		yieldPct = domain.FormatPercent(yield.Div(val).Mul(hundred))
	}

	if err := t.AddRow(TotalLabel,
		invested.StringFixed(places),
		placeholder,
		placeholder,
		placeholder,
		val.StringFixed(places),
		yield.StringFixed(places),
		yieldPct,
	); err != nil {
		return nil, err
	}

	return t, nil
}
