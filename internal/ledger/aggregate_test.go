package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/models"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func alumnoWithTariff(t *testing.T, id uint, tariff string) models.Alumno {
	t.Helper()
	v := dec(t, tariff)
	a := models.Alumno{Tariff: &v}
	a.ID = id
	return a
}

func TestCollectedTotalSumsPartialPayments(t *testing.T) {
	// Tariff 15000, two partial payments of 5000 in the same period.
	records := []models.PaymentRecord{
		{AlumnoID: 1, Amount: dec(t, "5000"), Channel: string(ChannelCash)},
		{AlumnoID: 1, Amount: dec(t, "5000"), Channel: string(ChannelTransfer)},
	}

	collected := CollectedTotal(records)
	if !collected.Equal(dec(t, "10000")) {
		t.Errorf("collected = %s, want 10000", collected)
	}

	projected := dec(t, "15000")
	outstanding := OutstandingBalance(projected, collected)
	if !outstanding.Equal(dec(t, "5000")) {
		t.Errorf("outstanding = %s, want 5000", outstanding)
	}

	pct := CompletionPercentage(projected, collected)
	if !pct.Equal(dec(t, "66.7")) {
		t.Errorf("completion = %s, want 66.7", pct)
	}
}

func TestCompletionPercentageZeroProjected(t *testing.T) {
	pct := CompletionPercentage(decimal.Zero, dec(t, "3000"))
	if !pct.IsZero() {
		t.Errorf("completion with zero projected = %s, want 0", pct)
	}
}

func TestCompletionPercentageNotClamped(t *testing.T) {
	pct := CompletionPercentage(dec(t, "1000"), dec(t, "1500"))
	if !pct.Equal(dec(t, "150")) {
		t.Errorf("completion = %s, want 150", pct)
	}
}

func TestOutstandingBalanceNeverNegative(t *testing.T) {
	out := OutstandingBalance(dec(t, "1000"), dec(t, "1500"))
	if !out.IsZero() {
		t.Errorf("outstanding on overpayment = %s, want 0", out)
	}
}

func TestByPayerAccumulatesDuplicates(t *testing.T) {
	// Two payments for the same (alumno, period) must sum, not overwrite.
	records := []models.PaymentRecord{
		{AlumnoID: 7, Amount: dec(t, "3000"), Channel: string(ChannelCash)},
		{AlumnoID: 7, Amount: dec(t, "2000"), Channel: string(ChannelCash)},
		{AlumnoID: 9, Amount: dec(t, "1000"), Channel: string(ChannelCheck)},
	}

	byPayer := ByPayer(records)
	if !byPayer[7].Equal(dec(t, "5000")) {
		t.Errorf("byPayer[7] = %s, want 5000", byPayer[7])
	}
	if !byPayer[9].Equal(dec(t, "1000")) {
		t.Errorf("byPayer[9] = %s, want 1000", byPayer[9])
	}
}

func TestByChannelSums(t *testing.T) {
	records := []models.PaymentRecord{
		{AlumnoID: 1, Amount: dec(t, "100"), Channel: string(ChannelCash)},
		{AlumnoID: 2, Amount: dec(t, "250"), Channel: string(ChannelCash)},
		{AlumnoID: 3, Amount: dec(t, "400"), Channel: string(ChannelTransfer)},
	}

	byChannel := ByChannel(records)
	if !byChannel[ChannelCash].Equal(dec(t, "350")) {
		t.Errorf("cash = %s, want 350", byChannel[ChannelCash])
	}
	if !byChannel[ChannelTransfer].Equal(dec(t, "400")) {
		t.Errorf("transfer = %s, want 400", byChannel[ChannelTransfer])
	}
	if _, ok := byChannel[ChannelCheck]; ok {
		t.Error("check channel should be omitted when it has no records")
	}
}

func TestByChannelEmptyPeriod(t *testing.T) {
	byChannel := ByChannel(nil)
	total := decimal.Zero
	for _, v := range byChannel {
		total = total.Add(v)
	}
	if !total.IsZero() {
		t.Errorf("empty period channel sum = %s, want 0", total)
	}
	if !CollectedTotal(nil).IsZero() {
		t.Error("collected total of empty period should be 0")
	}
}

func TestProjectedTotalSkipsInactiveAndNilTariff(t *testing.T) {
	inactive := alumnoWithTariff(t, 2, "9000")
	off := false
	inactive.Active = &off

	noTariff := models.Alumno{}
	noTariff.ID = 3

	alumnos := []models.Alumno{
		alumnoWithTariff(t, 1, "15000"),
		inactive,
		noTariff,
	}

	projected, err := ProjectedTotal(alumnos)
	if err != nil {
		t.Fatalf("ProjectedTotal: %v", err)
	}
	if !projected.Equal(dec(t, "15000")) {
		t.Errorf("projected = %s, want 15000", projected)
	}
}

func TestZeroTariffPayerScenario(t *testing.T) {
	// No tariff on file: completion stays 0 and outstanding stays 0
	// regardless of what was paid.
	noTariff := models.Alumno{}
	noTariff.ID = 5

	projected, err := ProjectedTotal([]models.Alumno{noTariff})
	if err != nil {
		t.Fatalf("ProjectedTotal: %v", err)
	}
	collected := dec(t, "4000")

	if pct := CompletionPercentage(projected, collected); !pct.IsZero() {
		t.Errorf("completion = %s, want 0", pct)
	}
	if out := OutstandingBalance(projected, collected); !out.IsZero() {
		t.Errorf("outstanding = %s, want 0", out)
	}
}

func TestEffectiveTariffDiscountFormula(t *testing.T) {
	a := alumnoWithTariff(t, 1, "10000")
	a.DiscountFormula = "Tarifa * 0.5"

	tariff, err := EffectiveTariff(a)
	if err != nil {
		t.Fatalf("EffectiveTariff: %v", err)
	}
	if !tariff.Equal(dec(t, "5000")) {
		t.Errorf("effective tariff = %s, want 5000", tariff)
	}
}

func TestEffectiveTariffBadFormula(t *testing.T) {
	a := alumnoWithTariff(t, 1, "10000")
	a.DiscountFormula = "Tarifa *"

	if _, err := EffectiveTariff(a); !IsValidation(err) {
		t.Errorf("expected ValidationError for broken formula, got %v", err)
	}
}
