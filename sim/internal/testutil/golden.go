// Package testutil provides shared test infrastructure for the inventory
// simulator. It holds the golden scenario types and assertion helpers used
// across the sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one deterministic scenario: parameters whose demand,
// lead time and disruption draws cannot vary, plus the expected outcome.
type GoldenTestCase struct {
	Name         string        `json:"name"`
	Mode         string        `json:"mode"`
	Seed         int64         `json:"seed"`
	Params       GoldenParams  `json:"params"`
	Metrics      GoldenMetrics `json:"metrics"`
	OrdersPlaced int           `json:"orders_placed"`
	UnitsShipped float64       `json:"units_shipped"`
}

// GoldenParams mirrors sim.Params without importing sim.
type GoldenParams struct {
	InitialInventory      int     `json:"initial_inventory"`
	DemandMin             int     `json:"demand_min"`
	DemandMax             int     `json:"demand_max"`
	ReorderLevel          int     `json:"reorder_level"`
	ReorderQty            int     `json:"reorder_qty"`
	SupplierProdRate      int     `json:"supplier_prod_rate"`
	LeadTimeMin           int     `json:"lead_time_min"`
	LeadTimeMax           int     `json:"lead_time_max"`
	SimulationDays        int     `json:"simulation_days"`
	DisruptionProbability float64 `json:"disruption_probability"`
}

// GoldenMetrics represents the expected metrics from a golden test case.
type GoldenMetrics struct {
	AvgDelay        float64 `json:"avg_delay"`
	TotalCost       float64 `json:"total_cost"`
	ServiceLevel    float64 `json:"service_level"`
	TotalBackorders float64 `json:"total_backorders"`
	ResilienceScore float64 `json:"resilience_score"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
