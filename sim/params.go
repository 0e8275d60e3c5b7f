package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is wrapped by every error returned from Params.Validate.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// Params is the immutable input to a simulation run.
// Loaded from YAML presets (see cmd/default_config.go) or built directly.
type Params struct {
	InitialInventory      int     `yaml:"initial_inventory" json:"initialInventory"`
	DemandMin             int     `yaml:"demand_min" json:"demandMin"`
	DemandMax             int     `yaml:"demand_max" json:"demandMax"`
	ReorderLevel          int     `yaml:"reorder_level" json:"reorderLevel"`          // reorder point (ROP)
	ReorderQty            int     `yaml:"reorder_qty" json:"reorderQty"`              // fixed order quantity (EOQ)
	SupplierProdRate      int     `yaml:"supplier_prod_rate" json:"supplierProdRate"` // carried, not consumed by the policies
	LeadTimeMin           int     `yaml:"lead_time_min" json:"leadTimeMin"`
	LeadTimeMax           int     `yaml:"lead_time_max" json:"leadTimeMax"`
	SimulationDays        int     `yaml:"simulation_days" json:"simulationDays"`
	DisruptionProbability float64 `yaml:"disruption_probability" json:"disruptionProbability"`
}

// DefaultParams returns the baseline scenario used when no preset is given.
func DefaultParams() Params {
	return Params{
		InitialInventory:      100,
		DemandMin:             10,
		DemandMax:             30,
		ReorderLevel:          50,
		ReorderQty:            150,
		SupplierProdRate:      25,
		LeadTimeMin:           2,
		LeadTimeMax:           5,
		SimulationDays:        30,
		DisruptionProbability: 0.15,
	}
}

// Validate checks the range and ordering constraints of p.
// Returned errors wrap ErrInvalidParams.
func (p Params) Validate() error {
	nonNegative := []struct {
		name string
		val  int
	}{
		{"initial_inventory", p.InitialInventory},
		{"demand_min", p.DemandMin},
		{"demand_max", p.DemandMax},
		{"reorder_level", p.ReorderLevel},
		{"reorder_qty", p.ReorderQty},
		{"supplier_prod_rate", p.SupplierProdRate},
		{"lead_time_min", p.LeadTimeMin},
		{"lead_time_max", p.LeadTimeMax},
	}
	for _, f := range nonNegative {
		if f.val < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %d", ErrInvalidParams, f.name, f.val)
		}
	}
	if p.DemandMin > p.DemandMax {
		return fmt.Errorf("%w: demand_min (%d) must not exceed demand_max (%d)", ErrInvalidParams, p.DemandMin, p.DemandMax)
	}
	if p.LeadTimeMin > p.LeadTimeMax {
		return fmt.Errorf("%w: lead_time_min (%d) must not exceed lead_time_max (%d)", ErrInvalidParams, p.LeadTimeMin, p.LeadTimeMax)
	}
	// uniform draws cover max-min+1 values, which must fit in an int
	if p.DemandMax-p.DemandMin == math.MaxInt {
		return fmt.Errorf("%w: demand range %d..%d is too wide", ErrInvalidParams, p.DemandMin, p.DemandMax)
	}
	if p.LeadTimeMax-p.LeadTimeMin == math.MaxInt {
		return fmt.Errorf("%w: lead time range %d..%d is too wide", ErrInvalidParams, p.LeadTimeMin, p.LeadTimeMax)
	}
	if p.SimulationDays < 1 {
		return fmt.Errorf("%w: simulation_days must be at least 1, got %d", ErrInvalidParams, p.SimulationDays)
	}
	if math.IsNaN(p.DisruptionProbability) || p.DisruptionProbability < 0 || p.DisruptionProbability > 1 {
		return fmt.Errorf("%w: disruption_probability must be in [0, 1], got %f", ErrInvalidParams, p.DisruptionProbability)
	}
	return nil
}
