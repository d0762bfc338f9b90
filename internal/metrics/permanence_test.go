package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/metrics"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClassify_Precedence(t *testing.T) {
	collection := day("2025-05-01")

	tests := []struct {
		name    string
		payment domain.PaymentRecord
		want    domain.Standing
	}{
		{"cancelled wins over everything", domain.PaymentRecord{PackageStatus: "C", Step: 0}, domain.StandingCancelado},
		{"cancelled wins over low step", domain.PaymentRecord{PackageStatus: "C", Step: 1, CollectionAt: &collection}, domain.StandingCancelado},
		{"suspended is delinquent", domain.PaymentRecord{PackageStatus: "S", Step: 0}, domain.StandingInadimplente},
		{"suspended wins over low step", domain.PaymentRecord{PackageStatus: "S", Step: 1}, domain.StandingInadimplente},
		{"normal without collection date", domain.PaymentRecord{PackageStatus: "N"}, domain.StandingAdimplente},
		{"normal with collection but step 0", domain.PaymentRecord{PackageStatus: "N", Step: 0, CollectionAt: &collection}, domain.StandingAdimplente},
		{"normal with collection and step 1", domain.PaymentRecord{PackageStatus: "N", Step: 1, CollectionAt: &collection}, domain.StandingAdimplente},
		{"no-charge inclusion", domain.PaymentRecord{PackageStatus: "NC", Step: 3, CollectionAt: &collection}, domain.StandingAdimplente},
		{"normal with collection and high step", domain.PaymentRecord{PackageStatus: "N", Step: 3, CollectionAt: &collection}, domain.StandingInadimplente},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metrics.Classify(&tt.payment)
			assert.Equal(t, tt.want, got)
			// exactly one of the three classifications
			assert.Contains(t, []domain.Standing{
				domain.StandingAdimplente,
				domain.StandingInadimplente,
				domain.StandingCancelado,
			}, got)
		})
	}
}

func TestPermanencePeriod(t *testing.T) {
	tests := []struct {
		habilitation string
		wantMonth    int
		wantYear     int
	}{
		{"2024-11-15", 3, 2025}, // year boundary
		{"2025-02-10", 6, 2025},
		{"2024-08-05", 12, 2024},
		{"2024-09-01", 1, 2025},
		{"2024-10-31", 2, 2025}, // day 31 must not spill into March
	}
	for _, tt := range tests {
		month, year := metrics.PermanencePeriod(day(tt.habilitation))
		assert.Equal(t, tt.wantMonth, month, "habilitation %s", tt.habilitation)
		assert.Equal(t, tt.wantYear, year, "habilitation %s", tt.habilitation)
	}
}

func TestEvaluate_GoldOpportunity(t *testing.T) {
	// POS sale habilitated 2025-02-10, suspended at step 3, evaluated
	// 100 days later.
	sale := domain.Sale{
		ProposalNumber: "P-1",
		Family:         domain.FamilyPOS,
		HabilitationAt: day("2025-02-10"),
	}
	payment := &domain.PaymentRecord{ProposalNumber: "P-1", PackageStatus: "S", Step: 3}
	now := day("2025-02-10").AddDate(0, 0, 100)

	m, ok := metrics.Evaluate(sale, payment, now)
	require.True(t, ok)
	assert.Equal(t, domain.StandingInadimplente, m.Standing)
	assert.Equal(t, domain.OpportunityGold, m.Opportunity)
	assert.Equal(t, 6, m.PermanenceMonth)
	assert.Equal(t, 2025, m.PermanenceYear)
}

func TestEvaluate_BronzeOpportunity(t *testing.T) {
	sale := domain.Sale{
		ProposalNumber: "P-2",
		Family:         domain.FamilyPOS,
		HabilitationAt: day("2025-01-01"),
	}
	payment := &domain.PaymentRecord{ProposalNumber: "P-2", PackageStatus: "S", Step: 4}
	now := day("2025-01-01").AddDate(0, 0, 95)

	m, ok := metrics.Evaluate(sale, payment, now)
	require.True(t, ok)
	assert.Equal(t, domain.OpportunityBronze, m.Opportunity)
}

func TestEvaluate_OpportunityWindow(t *testing.T) {
	sale := domain.Sale{Family: domain.FamilyPOS, HabilitationAt: day("2025-01-01")}
	payment := &domain.PaymentRecord{PackageStatus: "S", Step: 2}

	t.Run("too young", func(t *testing.T) {
		m, ok := metrics.Evaluate(sale, payment, day("2025-01-01").AddDate(0, 0, 90))
		require.True(t, ok)
		assert.Equal(t, domain.OpportunityNone, m.Opportunity)
	})
	t.Run("too old", func(t *testing.T) {
		m, ok := metrics.Evaluate(sale, payment, day("2025-01-01").AddDate(0, 0, 121))
		require.True(t, ok)
		assert.Equal(t, domain.OpportunityNone, m.Opportunity)
	})
	t.Run("fiber never flags", func(t *testing.T) {
		fiber := sale
		fiber.Family = domain.FamilyFiber
		m, ok := metrics.Evaluate(fiber, payment, day("2025-01-01").AddDate(0, 0, 100))
		require.True(t, ok)
		assert.Equal(t, domain.OpportunityNone, m.Opportunity)
	})
}

func TestEvaluate_UnmatchedSales(t *testing.T) {
	now := day("2025-06-01")

	t.Run("fiber without payment is implicit inclusion", func(t *testing.T) {
		sale := domain.Sale{Family: domain.FamilyFiber, HabilitationAt: day("2025-01-15")}
		m, ok := metrics.Evaluate(sale, nil, now)
		require.True(t, ok)
		assert.Equal(t, domain.StandingAdimplente, m.Standing)
	})

	t.Run("non-fiber without payment stays unclassified", func(t *testing.T) {
		sale := domain.Sale{Family: domain.FamilyPOS, HabilitationAt: day("2025-01-15")}
		_, ok := metrics.Evaluate(sale, nil, now)
		assert.False(t, ok)
	})
}

func TestBuildPermanence_MatchesByProposal(t *testing.T) {
	sales := []domain.Sale{
		{ProposalNumber: "A", Family: domain.FamilyPOS, HabilitationAt: day("2025-01-10")},
		{ProposalNumber: "B", Family: domain.FamilyFiber, HabilitationAt: day("2025-02-10")},
		{ProposalNumber: "C", Family: domain.FamilyOther, HabilitationAt: day("2025-03-10")},
	}
	payments := []domain.PaymentRecord{
		{ProposalNumber: "A", PackageStatus: "N"},
	}

	out := metrics.BuildPermanence(sales, payments, day("2025-06-01"))
	require.Len(t, out, 2) // C is unmatched and non-fiber
	assert.Equal(t, "A", out[0].Sale.ProposalNumber)
	assert.Equal(t, domain.StandingAdimplente, out[0].Standing)
	assert.Equal(t, "B", out[1].Sale.ProposalNumber)
	assert.Equal(t, domain.StandingAdimplente, out[1].Standing)
}
