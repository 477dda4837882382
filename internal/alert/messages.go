// Package alert classifies budget overages and picks what to say about them.
package alert

import (
	"fmt"
	"strings"
)

// Tier is an alert severity.
type Tier string

// Tiers in increasing severity.
const (
	Mild     Tier = "mild"
	Moderate Tier = "moderate"
	Severe   Tier = "severe"
)

// Tiers lists the defined tiers in increasing severity.
var Tiers = []Tier{Mild, Moderate, Severe}

// Valid reports whether t is one of the defined tiers.
func (t Tier) Valid() bool {
	switch t {
	case Mild, Moderate, Severe:
		return true
	}
	return false
}

// Title is the heading used for every alert.
const Title = "Budget Alert!"

// UnknownMessage is returned for any tier outside Tiers.
const UnknownMessage = "Unknown issue"

// MessageTable maps a tier to its pool of messages.
type MessageTable map[Tier][]string

// DefaultMessages is the built-in message pool.
var DefaultMessages = MessageTable{
	Mild: {
		"You're getting close to your budget. Time to slow down!",
		"Almost there... maybe skip that coffee?",
	},
	Moderate: {
		"Uh oh, you're over budget for this category.",
		"Your wallet just cried out in pain.",
	},
	Severe: {
		"🚨 ALARM! Your spending is out of control!",
		"You've officially entered panic mode.",
	},
}

// Validate checks that every defined tier has at least one non-blank message.
func (m MessageTable) Validate() error {
	for _, t := range Tiers {
		pool := m[t]
		if len(pool) == 0 {
			return fmt.Errorf("no messages for tier %s", t)
		}
		for i, msg := range pool {
			if strings.TrimSpace(msg) == "" {
				return fmt.Errorf("message %d for tier %s is blank", i, t)
			}
		}
	}
	return nil
}
