package model

import "github.com/google/uuid"

// StockPreset represents a reusable stock sheet definition.
type StockPreset struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Width         float64 `json:"width"`     // cm
	Height        float64 `json:"height"`    // cm
	Thickness     float64 `json:"thickness"` // cm
	PricePerSheet float64 `json:"price_per_sheet"`
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name string, width, height, thickness, price float64) StockPreset {
	return StockPreset{
		ID:            uuid.New().String()[:8],
		Name:          name,
		Width:         width,
		Height:        height,
		Thickness:     thickness,
		PricePerSheet: price,
	}
}

// ToStockSize converts a StockPreset into the stock size used for nesting.
func (sp StockPreset) ToStockSize() StockSize {
	return StockSize{Label: sp.Name, Width: sp.Width, Height: sp.Height}
}

// Inventory holds the user's saved stock presets.
type Inventory struct {
	Stocks []StockPreset `json:"stocks"`
}

// DefaultInventory returns an inventory populated with common cold-rolled
// sheet formats.
func DefaultInventory() Inventory {
	return Inventory{
		Stocks: []StockPreset{
			NewStockPreset("Steel 200x100", 200, 100, 0.3, 0),
			NewStockPreset("Steel 250x125", 250, 125, 0.3, 0),
			NewStockPreset("Steel 300x150", 300, 150, 0.3, 0),
			NewStockPreset("Steel 400x200", 400, 200, 0.3, 0),
		},
	}
}

// FindStockByID returns a pointer to the stock preset with the given ID, or nil.
func (inv *Inventory) FindStockByID(id string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].ID == id {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// FindStockByName returns a pointer to the first stock preset with the given name, or nil.
func (inv *Inventory) FindStockByName(name string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].Name == name {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// StockNames returns the preset names in inventory order.
func (inv *Inventory) StockNames() []string {
	names := make([]string, len(inv.Stocks))
	for i, s := range inv.Stocks {
		names[i] = s.Name
	}
	return names
}

// StockSizes converts every preset into a stock size, in inventory order.
func (inv *Inventory) StockSizes() []StockSize {
	sizes := make([]StockSize, len(inv.Stocks))
	for i, s := range inv.Stocks {
		sizes[i] = s.ToStockSize()
	}
	return sizes
}
