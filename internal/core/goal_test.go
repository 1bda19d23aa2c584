package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressMessage(t *testing.T) {
	cases := []struct {
		name              string
		target, available float64
		want              string
	}{
		{"no target", 0, 50, ""},
		{"negative target", -10, 50, ""},
		{"reached exactly", 200, 200, MsgGoalReached},
		{"above target", 200, 250, MsgGoalReached},
		{"three quarters", 200, 150, MsgGoalClose},
		{"half", 200, 100, MsgGoalHalfway},
		{"just under half", 200, 99.99, MsgGoalBehind},
		{"overspent", 200, -20, MsgGoalBehind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ProgressMessage(tc.target, tc.available))
		})
	}
}

func TestFinancialProfile_FixedCosts(t *testing.T) {
	p := FinancialProfile{MonthlyIncome: 3000, Rent: 900, Insurance: 250, Transport: 120, Subscriptions: 30, Others: 50}
	assert.InDelta(t, 1350.0, p.FixedCosts(), 1e-9)
}
