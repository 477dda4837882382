package alert

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/scold/internal/model"
)

// DefaultSevereThreshold is the overage above which an alert is severe.
var DefaultSevereThreshold = model.MoneyFromCents(100_00)

// DefaultProximity is the share of a limit at which a mild warning fires.
var DefaultProximity = decimal.RequireFromString("0.9")

// Policy turns overages into alerts.
type Policy struct {
	SevereThreshold model.Money
	Proximity       decimal.Decimal
	Messages        MessageTable
	Selector        Selector
}

// DefaultPolicy returns the stock thresholds with random message selection.
func DefaultPolicy() *Policy {
	return &Policy{
		SevereThreshold: DefaultSevereThreshold,
		Proximity:       DefaultProximity,
		Messages:        DefaultMessages,
		Selector:        RandomSelector{},
	}
}

// Alert is one message about one category.
type Alert struct {
	Category string
	Tier     Tier
	Amount   model.Money // overage, or remaining headroom for mild
	Title    string
	Message  string
}

// Classify maps an overage to a tier. Overages at or below zero are not
// overspending and report false. Overages up to and including the threshold
// are moderate; anything above is severe.
func (p *Policy) Classify(d model.Money) (Tier, bool) {
	if !d.IsPositive() {
		return "", false
	}
	if d.Cmp(p.SevereThreshold) > 0 {
		return Severe, true
	}
	return Moderate, true
}

// SelectMessage picks a message for tier, or UnknownMessage when the tier is
// not defined or has no messages.
func (p *Policy) SelectMessage(tier Tier) string {
	if !tier.Valid() {
		return UnknownMessage
	}
	msgs := p.Messages
	if msgs == nil {
		msgs = DefaultMessages
	}
	pool := msgs[tier]
	if len(pool) == 0 {
		return UnknownMessage
	}
	sel := p.Selector
	if sel == nil {
		sel = RandomSelector{}
	}
	return pool[sel.Select(tier, len(pool))]
}

// Overspent builds the alert for a positive overage. It reports false when d
// is not overspending.
func (p *Policy) Overspent(category string, d model.Money) (Alert, bool) {
	tier, ok := p.Classify(d)
	if !ok {
		return Alert{}, false
	}
	return Alert{
		Category: category,
		Tier:     tier,
		Amount:   d,
		Title:    Title,
		Message:  p.SelectMessage(tier),
	}, true
}

// Approaching builds a mild warning for a category with remaining headroom.
func (p *Policy) Approaching(category string, remaining model.Money) Alert {
	return Alert{
		Category: category,
		Tier:     Mild,
		Amount:   remaining,
		Title:    Title,
		Message:  p.SelectMessage(Mild),
	}
}
