package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invsim/invsim/sim"
)

func fixtureComparison() *sim.Comparison {
	trad := &sim.Result{
		Mode: sim.ModeTraditional,
		Snapshots: []sim.DailySnapshot{
			{Day: 1, Demand: 20, Inventory: 0, Backorder: 15, Fulfilled: 5, Cost: 75},
			{Day: 2, Demand: 20, Backorder: 35, Cost: 175, AgentAction: "Reactive: Ordered 100 units"},
		},
		Metrics: sim.Metrics{ServiceLevel: 12.5, TotalCost: 250, AvgDelay: 1, TotalBackorders: 50},
	}
	paa := &sim.Result{
		Mode: sim.ModePAA,
		Snapshots: []sim.DailySnapshot{
			{Day: 1, Demand: 50, Inventory: 0, Backorder: 45, Fulfilled: 5, Cost: 225, IsDisrupted: true,
				AgentAction: "PAA: Predictive order of 150 units (LT: 5d)"},
			{Day: 2, Demand: 20, Backorder: 65, Cost: 325},
		},
		Metrics: sim.Metrics{ServiceLevel: 7.14, TotalCost: 550, AvgDelay: 1, TotalBackorders: 110},
	}
	return sim.NewComparison(sim.Params{
		InitialInventory: 5, DemandMin: 20, DemandMax: 20, ReorderQty: 100,
		LeadTimeMin: 5, LeadTimeMax: 5, SimulationDays: 2, DisruptionProbability: 0.5,
	}, true, trad, paa)
}

func TestRenderCSV_OneRowPerModeDay(t *testing.T) {
	c := fixtureComparison()
	out := RenderCSV(c.Traditional, c.PAA)
	lines := strings.Split(strings.TrimSpace(out), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "mode,day,demand,inventory,backorder,fulfilled,shipped,cost,is_disrupted,agent_action", lines[0])
	assert.Equal(t, "traditional,1,20,0,15,5,0,75.00,false,", lines[1])
	assert.Equal(t, "paa,1,50,0,45,5,0,225.00,true,PAA: Predictive order of 150 units (LT: 5d)", lines[3])
}

func TestWriteCSV_QuotesNarratives(t *testing.T) {
	r := &sim.Result{
		Mode: sim.ModeTraditional,
		Snapshots: []sim.DailySnapshot{
			{Day: 1, Demand: 12.5, AgentAction: "a,b"},
			{Day: 2, AgentAction: `say "hi"`},
			{Day: 3, AgentAction: "line\rbreak"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, r))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "12.5", rows[1][2])
	assert.Equal(t, "a,b", rows[1][9])
	assert.Equal(t, `say "hi"`, rows[2][9])
	assert.Equal(t, "line\rbreak", rows[3][9])
}

func TestRenderResult_EachFormat(t *testing.T) {
	r := fixtureComparison().PAA

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderResult(&buf, r, FormatJSON))
		var decoded sim.Result
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, sim.ModePAA, decoded.Mode)
		assert.Equal(t, r.Snapshots, decoded.Snapshots)
	})
	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderResult(&buf, r, FormatMarkdown))
		assert.Contains(t, buf.String(), "# PAA (Predictive) Simulation")
		assert.Contains(t, buf.String(), "| Service Level (%) | 7.14 |")
		assert.Contains(t, buf.String(), "- Day 1: PAA: Predictive order of 150 units (LT: 5d)")
	})
	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderResult(&buf, r, FormatCSV))
		assert.True(t, strings.HasPrefix(buf.String(), "mode,day,"))
	})
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderResult(&buf, r, FormatText))
		assert.Contains(t, buf.String(), "=== PAA (Predictive) Metrics ===")
		assert.Contains(t, buf.String(), "=== Agent Logic Log ===")
	})
	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, RenderResult(&bytes.Buffer{}, r, Format("xml")))
	})
}

func TestRenderMarkdown_ContainsSections(t *testing.T) {
	out := RenderMarkdown(fixtureComparison())

	assert.Contains(t, out, "# Inventory Policy Comparison")
	assert.Contains(t, out, "Random streams: paired")
	assert.Contains(t, out, "| Service Level (%) | 12.50 | 7.14 | -5.36 |")
	assert.Contains(t, out, "## Traditional Actions")
	assert.Contains(t, out, "- Day 2: Reactive: Ordered 100 units")
	assert.Contains(t, out, "- Day 1: PAA: Predictive order of 150 units (LT: 5d)")
}

func TestRenderText_IncludesAgentLog(t *testing.T) {
	out := RenderText(fixtureComparison())

	assert.Contains(t, out, "=== Traditional Metrics ===")
	assert.Contains(t, out, "=== PAA (Predictive) Metrics ===")
	assert.Contains(t, out, "=== Agent Logic Log ===")
	assert.Contains(t, out, "Day 1: PAA: Predictive order of 150 units (LT: 5d)")
}

func TestRender_JSONRoundTripsMetrics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, fixtureComparison(), FormatJSON))

	var decoded struct {
		Paired bool `json:"paired"`
		PAA    struct {
			Mode    string      `json:"mode"`
			Metrics sim.Metrics `json:"metrics"`
		} `json:"paa"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.True(t, decoded.Paired)
	assert.Equal(t, "paa", decoded.PAA.Mode)
	assert.Equal(t, 550.0, decoded.PAA.Metrics.TotalCost)
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, fixtureComparison(), "xml"))
}

func TestRenderTrialsMarkdown(t *testing.T) {
	s := &sim.TrialSummary{
		Trials: 10, Paired: true,
		Traditional:       sim.ModeStats{ServiceLevel: sim.MetricStats{Mean: 67.5, StdDev: 8.25}},
		PAA:               sim.ModeStats{ServiceLevel: sim.MetricStats{Mean: 97.9, StdDev: 1.5}},
		PAAServiceWinRate: 1,
		PAACostWinRate:    0.4,
	}
	out := RenderTrialsMarkdown(s)

	assert.Contains(t, out, "Trials: 10 | Paired: true")
	assert.Contains(t, out, "| Service Level (%) | 67.50 ± 8.25 | 97.90 ± 1.50 |")
	assert.Contains(t, out, "PAA higher service level in 100% of trials; lower cost in 40%.")
}
