package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MarkupRate is the fixed contractor-to-customer markup.
var MarkupRate = decimal.RequireFromString("0.30")

var hundred = decimal.NewFromInt(100)

// Extras tariff. Counted items multiply by the submitted room/window count.
var (
	costOven        = decimal.NewFromInt(20)
	costFridge      = decimal.NewFromInt(10)
	costMicrowave   = decimal.NewFromInt(5)
	costCarpetRoom  = decimal.NewFromInt(15)
	costStairs      = decimal.NewFromInt(10)
	costWindow      = decimal.NewFromInt(3)
	costMouldRoom   = decimal.NewFromInt(25)
)

// ExtraTariff is one row of the extras price list, for admin display.
type ExtraTariff struct {
	Name string
	Cost decimal.Decimal
	Unit string
}

// Tariff lists the extras in display order with their unit costs.
func Tariff() []ExtraTariff {
	return []ExtraTariff{
		{Name: "Oven Cleaning", Cost: costOven, Unit: "flat"},
		{Name: "Fridge Cleaning", Cost: costFridge, Unit: "flat"},
		{Name: "Microwave Cleaning", Cost: costMicrowave, Unit: "flat"},
		{Name: "Carpet Cleaning", Cost: costCarpetRoom, Unit: "per room"},
		{Name: "Stairs Carpet Cleaning", Cost: costStairs, Unit: "flat"},
		{Name: "Window Cleaning", Cost: costWindow, Unit: "per window"},
		{Name: "Mould Cleaning", Cost: costMouldRoom, Unit: "per room"},
	}
}

// Compute prices a quote against the catalog. Pure: identical input yields
// identical output, whether called for a live preview or the authoritative
// server-side computation.
func Compute(catalog *Catalog, in QuoteInput) (*Breakdown, error) {
	entry, err := catalog.Lookup(in.ServiceType, in.PropertySize)
	if err != nil {
		return nil, err
	}

	factor, err := in.SoilingLevel.Factor()
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSoilingLevel, in.SoilingLevel)
	}

	labourCost := entry.LabourCost.Mul(factor)
	materialCost := entry.MaterialCost

	extras := buildExtras(in.Extras)
	extrasCost := decimal.Zero
	for _, item := range extras {
		extrasCost = extrasCost.Add(item.Cost)
	}

	baseCost := labourCost.Add(materialCost)
	contractorPrice := baseCost.Add(extrasCost)
	markup := contractorPrice.Mul(MarkupRate)
	finalPrice := contractorPrice.Add(markup)

	return &Breakdown{
		ServiceType:      in.ServiceType,
		PropertySize:     in.PropertySize,
		SoilingLevel:     in.SoilingLevel,
		EstimatedTime:    entry.EstimatedHours,
		CleanersRequired: entry.CleanersRequired,
		LabourCost:       labourCost,
		MaterialCost:     materialCost,
		BaseCost:         baseCost,
		Extras:           extras,
		ExtrasCost:       extrasCost,
		ContractorPrice:  contractorPrice,
		Markup:           markup,
		FinalPrice:       finalPrice,
	}, nil
}

// buildExtras evaluates the selection in fixed display order. Items whose
// condition is false are omitted entirely, never added with cost zero.
func buildExtras(sel ExtrasSelection) []ExtraLineItem {
	items := []ExtraLineItem{}

	if sel.OvenCleaning {
		items = append(items, ExtraLineItem{Name: "Oven Cleaning", Cost: costOven})
	}
	if sel.FridgeCleaning {
		items = append(items, ExtraLineItem{Name: "Fridge Cleaning", Cost: costFridge})
	}
	if sel.MicrowaveCleaning {
		items = append(items, ExtraLineItem{Name: "Microwave Cleaning", Cost: costMicrowave})
	}
	if sel.CarpetCleaning && sel.CarpetRooms > 0 {
		items = append(items, ExtraLineItem{
			Name: fmt.Sprintf("Carpet Cleaning (%d rooms)", sel.CarpetRooms),
			Cost: costCarpetRoom.Mul(decimal.NewFromInt(int64(sel.CarpetRooms))),
		})
	}
	if sel.StairsCarpetCleaning {
		items = append(items, ExtraLineItem{Name: "Stairs Carpet Cleaning", Cost: costStairs})
	}
	if sel.WindowCleaning && sel.WindowCount > 0 {
		items = append(items, ExtraLineItem{
			Name: fmt.Sprintf("Window Cleaning (%d windows)", sel.WindowCount),
			Cost: costWindow.Mul(decimal.NewFromInt(int64(sel.WindowCount))),
		})
	}
	if sel.MouldCleaning && sel.MouldRooms > 0 {
		items = append(items, ExtraLineItem{
			Name: fmt.Sprintf("Mould Cleaning (%d rooms)", sel.MouldRooms),
			Cost: costMouldRoom.Mul(decimal.NewFromInt(int64(sel.MouldRooms))),
		})
	}

	return items
}
