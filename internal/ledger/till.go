package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/models"
)

// PaymentSource is the slice of the store the till needs, kept narrow so
// the close-out computation is testable with a fake.
type PaymentSource interface {
	ListPaymentsCreatedOn(ctx context.Context, date time.Time) ([]models.PaymentRecord, error)
}

// Till produces the same-day cash/transfer/check breakdown for the
// end-of-day caja close-out.
type Till struct {
	source PaymentSource
}

func NewTill(source PaymentSource) *Till {
	return &Till{source: source}
}

// TillBreakdown is one day's collection summary.
type TillBreakdown struct {
	Date        string                      `json:"date"`
	Total       decimal.Decimal             `json:"total"`
	ByChannel   map[Channel]decimal.Decimal `json:"byChannel"`
	RecordCount int                         `json:"recordCount"`
}

// TodaysBreakdown recomputes the breakdown from the current record set on
// every call. Volume is low enough that no caching is warranted.
func (t *Till) TodaysBreakdown(ctx context.Context, now time.Time) (*TillBreakdown, error) {
	records, err := t.source.ListPaymentsCreatedOn(ctx, now)
	if err != nil {
		return nil, err
	}
	return &TillBreakdown{
		Date:        now.Format("2006-01-02"),
		Total:       CollectedTotal(records),
		ByChannel:   ByChannel(records),
		RecordCount: len(records),
	}, nil
}
