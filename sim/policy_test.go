package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decisionInput(inventory float64, history []float64, pending []PendingOrder) DecisionInput {
	p := DefaultParams() // ROP 50, EOQ 150, lead time 2..5
	return DecisionInput{
		State:    State{Day: 1, Inventory: inventory, History: history, Pending: pending},
		Params:   p,
		LeadTime: 3,
	}
}

func TestTraditionalPolicy_OrdersAtReorderLevel(t *testing.T) {
	tests := []struct {
		name      string
		inventory float64
		pending   []PendingOrder
		wantOrder bool
	}{
		{"above ROP", 51, nil, false},
		{"at ROP", 50, nil, true},
		{"below ROP", 0, nil, true},
		{"below ROP with order outstanding", 10, []PendingOrder{{ArrivalDay: 4, Quantity: 150}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := TraditionalPolicy{}.Decide(decisionInput(tt.inventory, nil, tt.pending))
			assert.Equal(t, tt.wantOrder, d.Order)
			if tt.wantOrder {
				assert.Equal(t, 150, d.Quantity)
				assert.Equal(t, 3, d.LeadTime)
				assert.Equal(t, "Reactive: Ordered 150 units", d.Action)
			} else {
				assert.Empty(t, d.Action)
			}
		})
	}
}

func TestPredictivePolicy_ProjectsShortage(t *testing.T) {
	// avg of last 5 = 20; projection = inventory - 20*5
	history := []float64{100, 20, 20, 20, 20, 20}

	d := PredictivePolicy{}.Decide(decisionInput(150, history, nil))
	assert.False(t, d.Order, "150 - 100 = 50 is not below ROP 50")
	assert.Equal(t, 50.0, d.Projected)

	d = PredictivePolicy{}.Decide(decisionInput(149, history, nil))
	assert.True(t, d.Order, "149 - 100 = 49 is below ROP 50")
	assert.Equal(t, 150, d.Quantity)
	assert.Equal(t, "PAA: Predictive order of 150 units (LT: 3d)", d.Action)
}

func TestPredictivePolicy_BoostsOnDisruptedDay(t *testing.T) {
	in := decisionInput(0, []float64{25}, nil)
	in.Disrupted = true
	d := PredictivePolicy{}.Decide(in)
	require.True(t, d.Order)
	assert.Equal(t, 225, d.Quantity)
	assert.Equal(t, "PAA: Predictive order of 225 units (LT: 3d)", d.Action)
}

func TestPolicies_ZeroLeadTime_ReportTransitDays(t *testing.T) {
	for _, policy := range []ReorderPolicy{TraditionalPolicy{}, PredictivePolicy{}} {
		in := decisionInput(0, []float64{25}, nil)
		in.LeadTime = 0
		d := policy.Decide(in)
		require.True(t, d.Order, policy.Name())
		assert.Equal(t, 1, d.LeadTime, policy.Name())
	}
	in := decisionInput(0, []float64{25}, nil)
	in.LeadTime = 0
	assert.Equal(t, "PAA: Predictive order of 150 units (LT: 1d)", PredictivePolicy{}.Decide(in).Action)
}

func TestTransitDays(t *testing.T) {
	assert.Equal(t, 1, TransitDays(0))
	assert.Equal(t, 1, TransitDays(1))
	assert.Equal(t, 5, TransitDays(5))
}

func TestPredictivePolicy_RoundsBoostedQuantity(t *testing.T) {
	in := decisionInput(0, []float64{25}, nil)
	in.Params.ReorderQty = 5 // 7.5 rounds half away from zero
	in.Disrupted = true
	assert.Equal(t, 8, PredictivePolicy{}.Decide(in).Quantity)
}

func TestPredictivePolicy_EmptyHistory_FallsBackToOnHand(t *testing.T) {
	// GIVEN no demand history the average is 0, so only on-hand < ROP triggers
	assert.False(t, PredictivePolicy{}.Decide(decisionInput(50, nil, nil)).Order)
	assert.True(t, PredictivePolicy{}.Decide(decisionInput(49, nil, nil)).Order)
}

func TestPredictivePolicy_NoOrderWhileOutstanding(t *testing.T) {
	d := PredictivePolicy{}.Decide(decisionInput(0, []float64{30}, []PendingOrder{{ArrivalDay: 9, Quantity: 150}}))
	assert.False(t, d.Order)
	assert.Empty(t, d.Action)
}

func TestTrailingAverage(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		want    float64
	}{
		{"empty", nil, 0},
		{"shorter than window", []float64{10, 20}, 15},
		{"exactly window", []float64{1, 2, 3, 4, 5}, 3},
		{"longer than window", []float64{1000, 1, 2, 3, 4, 5}, 3},
		{"disruption amplified", []float64{25, 10}, 17.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrailingAverage(tt.history, MovingAverageWindow))
		})
	}
}

func TestNewReorderPolicy(t *testing.T) {
	p, err := NewReorderPolicy(ModeTraditional)
	require.NoError(t, err)
	assert.Equal(t, "traditional", p.Name())

	p, err = NewReorderPolicy(ModePAA)
	require.NoError(t, err)
	assert.Equal(t, "paa", p.Name())

	_, err = NewReorderPolicy("hybrid")
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestParseAgentMode(t *testing.T) {
	m, err := ParseAgentMode("paa")
	require.NoError(t, err)
	assert.Equal(t, ModePAA, m)
	assert.Equal(t, "PAA (Predictive)", m.DisplayName())
	assert.Equal(t, "Traditional", ModeTraditional.DisplayName())

	_, err = ParseAgentMode("PAA")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
