package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return NewCatalog([]Entry{
		{
			ServiceType:      "Regular Domestic Cleaning",
			PropertySize:     "2-bed (flat)",
			EstimatedHours:   3,
			CleanersRequired: 1,
			LabourCost:       decimal.NewFromInt(60),
			MaterialCost:     decimal.NewFromInt(10),
		},
		{
			ServiceType:      "Deep Cleaning",
			PropertySize:     "3-bed (house w/ stairs)",
			EstimatedHours:   6.5,
			CleanersRequired: 3,
			LabourCost:       decimal.NewFromInt(150),
			MaterialCost:     decimal.NewFromInt(22),
		},
	})
}

func TestComputeMediumSoilingWithExtras(t *testing.T) {
	b, err := Compute(testCatalog(), QuoteInput{
		ServiceType:  "Regular Domestic Cleaning",
		PropertySize: "2-bed (flat)",
		SoilingLevel: SoilingMedium,
		Extras: ExtrasSelection{
			OvenCleaning:   true,
			CarpetCleaning: true,
			CarpetRooms:    2,
		},
	})
	require.NoError(t, err)

	require.Equal(t, "69.00", b.LabourCost.StringFixed(2))
	require.Equal(t, "79.00", b.BaseCost.StringFixed(2))
	require.Len(t, b.Extras, 2)
	require.Equal(t, "Oven Cleaning", b.Extras[0].Name)
	require.Equal(t, "20.00", b.Extras[0].Cost.StringFixed(2))
	require.Equal(t, "Carpet Cleaning (2 rooms)", b.Extras[1].Name)
	require.Equal(t, "30.00", b.Extras[1].Cost.StringFixed(2))
	require.Equal(t, "50.00", b.ExtrasCost.StringFixed(2))
	require.Equal(t, "129.00", b.ContractorPrice.StringFixed(2))
	require.Equal(t, "38.70", b.Markup.StringFixed(2))
	require.Equal(t, "167.70", b.FinalPrice.StringFixed(2))
	require.Equal(t, 3.0, b.EstimatedTime)
	require.Equal(t, 1, b.CleanersRequired)
}

func TestComputeLightSoilingNoExtras(t *testing.T) {
	b, err := Compute(testCatalog(), QuoteInput{
		ServiceType:  "Regular Domestic Cleaning",
		PropertySize: "2-bed (flat)",
		SoilingLevel: SoilingLight,
	})
	require.NoError(t, err)

	require.Empty(t, b.Extras)
	require.Equal(t, "0.00", b.ExtrasCost.StringFixed(2))
	require.Equal(t, "70.00", b.ContractorPrice.StringFixed(2))
	require.Equal(t, "21.00", b.Markup.StringFixed(2))
	require.Equal(t, "91.00", b.FinalPrice.StringFixed(2))
}

func TestComputeUnknownPair(t *testing.T) {
	_, err := Compute(testCatalog(), QuoteInput{
		ServiceType:  "Regular Domestic Cleaning",
		PropertySize: "9-bed (castle)",
		SoilingLevel: SoilingLight,
	})
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestComputeInvalidSoilingLevel(t *testing.T) {
	_, err := Compute(testCatalog(), QuoteInput{
		ServiceType:  "Regular Domestic Cleaning",
		PropertySize: "2-bed (flat)",
		SoilingLevel: SoilingLevel("Filthy"),
	})
	require.ErrorIs(t, err, ErrInvalidSoilingLevel)
}

func TestComputeSoilingFactors(t *testing.T) {
	cases := []struct {
		level  SoilingLevel
		labour string
	}{
		{SoilingLight, "60.00"},
		{SoilingMedium, "69.00"},
		{SoilingHeavy, "78.00"},
	}
	for _, tc := range cases {
		b, err := Compute(testCatalog(), QuoteInput{
			ServiceType:  "Regular Domestic Cleaning",
			PropertySize: "2-bed (flat)",
			SoilingLevel: tc.level,
		})
		require.NoError(t, err, tc.level)
		require.Equal(t, tc.labour, b.LabourCost.StringFixed(2), tc.level)

		// finalPrice = (labour + material + extras) * 1.30 always holds.
		expected := b.LabourCost.Add(b.MaterialCost).Add(b.ExtrasCost).
			Mul(decimal.RequireFromString("1.30"))
		require.True(t, expected.Equal(b.FinalPrice), tc.level)
	}
}

func TestComputeExtrasOmission(t *testing.T) {
	// A flag set without a positive count contributes nothing.
	b, err := Compute(testCatalog(), QuoteInput{
		ServiceType:  "Regular Domestic Cleaning",
		PropertySize: "2-bed (flat)",
		SoilingLevel: SoilingLight,
		Extras: ExtrasSelection{
			CarpetCleaning: true,
			CarpetRooms:    0,
			WindowCleaning: true,
			WindowCount:    0,
			MouldCleaning:  true,
			MouldRooms:     0,
		},
	})
	require.NoError(t, err)
	require.Empty(t, b.Extras)
	require.Equal(t, "0.00", b.ExtrasCost.StringFixed(2))
}

func TestComputeExtrasDisplayOrder(t *testing.T) {
	b, err := Compute(testCatalog(), QuoteInput{
		ServiceType:  "Deep Cleaning",
		PropertySize: "3-bed (house w/ stairs)",
		SoilingLevel: SoilingHeavy,
		Extras: ExtrasSelection{
			OvenCleaning:         true,
			FridgeCleaning:       true,
			MicrowaveCleaning:    true,
			CarpetCleaning:       true,
			CarpetRooms:          3,
			StairsCarpetCleaning: true,
			WindowCleaning:       true,
			WindowCount:          8,
			MouldCleaning:        true,
			MouldRooms:           1,
		},
	})
	require.NoError(t, err)

	names := make([]string, 0, len(b.Extras))
	for _, item := range b.Extras {
		names = append(names, item.Name)
	}
	require.Equal(t, []string{
		"Oven Cleaning",
		"Fridge Cleaning",
		"Microwave Cleaning",
		"Carpet Cleaning (3 rooms)",
		"Stairs Carpet Cleaning",
		"Window Cleaning (8 windows)",
		"Mould Cleaning (1 rooms)",
	}, names)
	// 20 + 10 + 5 + 45 + 10 + 24 + 25
	require.Equal(t, "139.00", b.ExtrasCost.StringFixed(2))
}

func TestComputeIdempotent(t *testing.T) {
	in := QuoteInput{
		ServiceType:  "Regular Domestic Cleaning",
		PropertySize: "2-bed (flat)",
		SoilingLevel: SoilingMedium,
		Extras:       ExtrasSelection{OvenCleaning: true},
	}
	first, err := Compute(testCatalog(), in)
	require.NoError(t, err)
	second, err := Compute(testCatalog(), in)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
