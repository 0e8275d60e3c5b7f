package sim

const (
	// HoldingCostPerUnit is charged per unit of end-of-day inventory.
	HoldingCostPerUnit = 0.5
	// StockoutCostPerUnit is charged per unit of end-of-day backorder.
	StockoutCostPerUnit = 5.0
)

// Fulfillment is the result of serving one day's demand.
type Fulfillment struct {
	Fulfilled float64 // units shipped to customers today, backorder catch-up included
	Fresh     float64 // portion of Fulfilled that served today's demand
	Inventory float64
	Backorder float64
}

// Fulfill serves today's demand plus the carried backorder from inventory.
// The new backorder replaces the old one; inventory and backorder never go
// negative for non-negative inputs.
func Fulfill(demand, backorder, inventory float64) Fulfillment {
	toFill := demand + backorder
	filled := min(toFill, inventory)
	return Fulfillment{
		Fulfilled: filled,
		Fresh:     max(0, filled-backorder),
		Inventory: inventory - filled,
		Backorder: max(0, toFill-filled),
	}
}

// DailyCost is the holding plus stockout cost of an end-of-day position.
func DailyCost(inventory, backorder float64) float64 {
	return inventory*HoldingCostPerUnit + backorder*StockoutCostPerUnit
}
