package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoMatch indicates that no catalog entry exists for the requested
	// service type and property size pair. Maps to 404 at the boundary.
	ErrNoMatch = errors.New("no matching pricing data")
	// ErrInvalidSoilingLevel indicates a soiling level outside Light/Medium/Heavy.
	ErrInvalidSoilingLevel = errors.New("invalid soiling level")
)

// SoilingLevel scales the labour cost of a quote.
type SoilingLevel string

const (
	SoilingLight  SoilingLevel = "Light"
	SoilingMedium SoilingLevel = "Medium"
	SoilingHeavy  SoilingLevel = "Heavy"
)

// Factor returns the labour cost multiplier for the soiling level.
func (s SoilingLevel) Factor() (decimal.Decimal, error) {
	switch s {
	case SoilingLight:
		return factorLight, nil
	case SoilingMedium:
		return factorMedium, nil
	case SoilingHeavy:
		return factorHeavy, nil
	}
	return decimal.Decimal{}, ErrInvalidSoilingLevel
}

var (
	factorLight  = decimal.NewFromInt(1)
	factorMedium = decimal.RequireFromString("1.15")
	factorHeavy  = decimal.RequireFromString("1.30")
)

// Entry is one row of the pricing catalog, keyed by service type and
// property size. At most one entry exists per pair; the first match wins.
type Entry struct {
	ServiceType      string
	PropertySize     string
	EstimatedHours   float64
	CleanersRequired int
	LabourCost       decimal.Decimal
	MaterialCost     decimal.Decimal
}

// ExtrasSelection is the fixed set of independently toggleable add-ons.
type ExtrasSelection struct {
	OvenCleaning         bool `json:"ovenCleaning"`
	FridgeCleaning       bool `json:"fridgeCleaning"`
	MicrowaveCleaning    bool `json:"microwaveCleaning"`
	CarpetCleaning       bool `json:"carpetCleaning"`
	CarpetRooms          int  `json:"carpetRooms" validate:"gte=0"`
	StairsCarpetCleaning bool `json:"stairsCarpetCleaning"`
	WindowCleaning       bool `json:"windowCleaning"`
	WindowCount          int  `json:"windowCount" validate:"gte=0"`
	MouldCleaning        bool `json:"mouldCleaning"`
	MouldRooms           int  `json:"mouldRooms" validate:"gte=0"`
}

// QuoteInput is everything the engine needs to price a quote.
type QuoteInput struct {
	ServiceType  string          `json:"serviceType" validate:"required"`
	PropertySize string          `json:"propertySize" validate:"required"`
	SoilingLevel SoilingLevel    `json:"soilingLevel" validate:"required"`
	Extras       ExtrasSelection `json:"extras"`
}

// ExtraLineItem is one included add-on with its computed cost.
type ExtraLineItem struct {
	Name string
	Cost decimal.Decimal
}

// Breakdown is the fully itemised result of a pricing computation.
// Immutable once produced; currency fields render with exactly two
// fraction digits in external representations.
type Breakdown struct {
	ServiceType      string
	PropertySize     string
	SoilingLevel     SoilingLevel
	EstimatedTime    float64
	CleanersRequired int
	LabourCost       decimal.Decimal
	MaterialCost     decimal.Decimal
	BaseCost         decimal.Decimal
	Extras           []ExtraLineItem
	ExtrasCost       decimal.Decimal
	ContractorPrice  decimal.Decimal
	Markup           decimal.Decimal
	FinalPrice       decimal.Decimal
}
