package metrics

import (
	"time"

	"github.com/sysgest/insights-api/internal/domain"
)

// Opportunity window boundaries: delinquent POS contracts aged 91..120 days
// since habilitation qualify for a recovery contact.
const (
	opportunityMinDays = 91
	opportunityMaxDays = 120
)

// Classify returns the standing of a sold contract given its collections row.
// Precedence is strict and the first matching rule wins.
func Classify(payment *domain.PaymentRecord) domain.Standing {
	switch {
	case payment.PackageStatus == domain.PackageStatusCancelled:
		return domain.StandingCancelado
	case payment.PackageStatus == domain.PackageStatusSuspended:
		return domain.StandingInadimplente
	case payment.PackageStatus == domain.PackageStatusNormal && payment.CollectionAt == nil:
		return domain.StandingAdimplente
	case payment.Step == 0 || payment.Step == 1:
		return domain.StandingAdimplente
	case payment.PackageStatus == domain.PackageStatusNoCharge:
		return domain.StandingAdimplente
	default:
		return domain.StandingInadimplente
	}
}

// PermanencePeriod returns the month and year a contract counts toward:
// habilitation plus four calendar months. Pure month arithmetic, so a
// habilitation on the 31st never spills into a fifth month.
func PermanencePeriod(habilitation time.Time) (month, year int) {
	month = int(habilitation.Month()) + 4
	year = habilitation.Year()
	if month > 12 {
		month -= 12
		year++
	}
	return month, year
}

// ClassifyOpportunity layers the recovery-opportunity rule on a classified
// sale. Only delinquent POS contracts inside the age window qualify.
func ClassifyOpportunity(sale *domain.Sale, payment *domain.PaymentRecord, standing domain.Standing, now time.Time) domain.OpportunityTier {
	if sale.Family != domain.FamilyPOS || standing != domain.StandingInadimplente || payment == nil {
		return domain.OpportunityNone
	}
	days := int(now.Sub(sale.HabilitationAt).Hours() / 24)
	if days < opportunityMinDays || days > opportunityMaxDays {
		return domain.OpportunityNone
	}
	switch payment.Step {
	case 2, 3:
		return domain.OpportunityGold
	case 4:
		return domain.OpportunityBronze
	default:
		return domain.OpportunityNone
	}
}

// Evaluate classifies one sale against its collections row (nil when the
// feed has none) as of the given instant. The second return is false for an
// unmatched sale outside the fiber family: those rows stay unclassified.
func Evaluate(sale domain.Sale, payment *domain.PaymentRecord, now time.Time) (domain.PermanenceMetric, bool) {
	var standing domain.Standing
	switch {
	case payment != nil:
		standing = Classify(payment)
	case sale.Family == domain.FamilyFiber:
		// Fiber sales without a collections row are implicit inclusions.
		standing = domain.StandingAdimplente
	default:
		return domain.PermanenceMetric{}, false
	}

	month, year := PermanencePeriod(sale.HabilitationAt)
	return domain.PermanenceMetric{
		Sale:            sale,
		Payment:         payment,
		Standing:        standing,
		Opportunity:     ClassifyOpportunity(&sale, payment, standing, now),
		PermanenceMonth: month,
		PermanenceYear:  year,
	}, true
}

// BuildPermanence evaluates every sale against the collections feed, matching
// by proposal number.
func BuildPermanence(sales []domain.Sale, payments []domain.PaymentRecord, now time.Time) []domain.PermanenceMetric {
	byProposal := make(map[string]*domain.PaymentRecord, len(payments))
	for i := range payments {
		byProposal[payments[i].ProposalNumber] = &payments[i]
	}

	metrics := make([]domain.PermanenceMetric, 0, len(sales))
	for _, sale := range sales {
		if m, ok := Evaluate(sale, byProposal[sale.ProposalNumber], now); ok {
			metrics = append(metrics, m)
		}
	}
	return metrics
}
