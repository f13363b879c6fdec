package ledger

import (
	"fmt"

	"github.com/Knetic/govaluate"
	"github.com/shopspring/decimal"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/models"
)

// The aggregation functions are pure computations over already-fetched
// slices so the period invariants can be tested without a database.

// EffectiveTariff resolves an alumno's monthly obligation: the base tariff
// (zero when none is on file) with the discount formula applied when one is
// set. The formula sees the base tariff as the variable "Tarifa".
func EffectiveTariff(a models.Alumno) (decimal.Decimal, error) {
	if a.Tariff == nil {
		return decimal.Zero, nil
	}
	base := *a.Tariff
	if a.DiscountFormula == "" {
		return base, nil
	}

	expression, err := govaluate.NewEvaluableExpression(a.DiscountFormula)
	if err != nil {
		return decimal.Zero, &ValidationError{Reason: fmt.Sprintf("invalid discount formula %q: %v", a.DiscountFormula, err)}
	}
	baseFloat, _ := base.Float64()
	result, err := expression.Evaluate(map[string]interface{}{"Tarifa": baseFloat})
	if err != nil {
		return decimal.Zero, &ValidationError{Reason: fmt.Sprintf("discount formula %q failed: %v", a.DiscountFormula, err)}
	}
	value, ok := result.(float64)
	if !ok {
		return decimal.Zero, &ValidationError{Reason: fmt.Sprintf("discount formula %q did not produce a number", a.DiscountFormula)}
	}
	return decimal.NewFromFloat(value).Round(2), nil
}

// ProjectedTotal sums the effective tariff over the active alumnos. Tariffs
// are read at aggregation time, not snapshotted per period.
func ProjectedTotal(alumnos []models.Alumno) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range alumnos {
		if !a.IsActive() {
			continue
		}
		tariff, err := EffectiveTariff(a)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(tariff)
	}
	return total, nil
}

// CollectedTotal sums every record's amount. Partial payments for the same
// (alumno, period) all count; there is no deduplication.
func CollectedTotal(records []models.PaymentRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// ByChannel sums amounts per collection channel. Channels with no records
// are omitted from the map.
func ByChannel(records []models.PaymentRecord) map[Channel]decimal.Decimal {
	sums := make(map[Channel]decimal.Decimal)
	for _, r := range records {
		c := Channel(r.Channel)
		sums[c] = sums[c].Add(r.Amount)
	}
	return sums
}

// ByPayer sums amounts per alumno within the queried set, surfacing
// duplicate and partial payments.
func ByPayer(records []models.PaymentRecord) map[uint]decimal.Decimal {
	sums := make(map[uint]decimal.Decimal)
	for _, r := range records {
		sums[r.AlumnoID] = sums[r.AlumnoID].Add(r.Amount)
	}
	return sums
}

// CompletionPercentage reports collected/projected as a percentage rounded
// to one decimal for display. Zero projected yields exactly zero; the value
// is not clamped and exceeds 100 on overpayment.
func CompletionPercentage(projected, collected decimal.Decimal) decimal.Decimal {
	if projected.IsZero() {
		return decimal.Zero
	}
	return collected.Div(projected).Mul(decimal.NewFromInt(100)).Round(1)
}

// OutstandingBalance is the uncollected remainder for the period. Policy:
// overpayment reports zero outstanding, never negative debt.
func OutstandingBalance(projected, collected decimal.Decimal) decimal.Decimal {
	diff := projected.Sub(collected)
	if diff.IsNegative() {
		return decimal.Zero
	}
	return diff
}
