package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kmiservices/quotetracker/internal/quotes"
)

func record(id string, status quotes.Status, ts time.Time, serviceType, finalPrice, contractorPrice string) quotes.Record {
	return quotes.Record{
		ID:        id,
		Timestamp: ts,
		Status:    status,
		ServiceDetails: quotes.ServiceDetails{
			ServiceType: serviceType,
		},
		CostDetails: quotes.CostDetails{
			FinalPrice:      finalPrice,
			ContractorPrice: contractorPrice,
		},
	}
}

func TestParseTimeFrame(t *testing.T) {
	frame, err := ParseTimeFrame("")
	require.NoError(t, err)
	require.Equal(t, FrameAll, frame)

	for _, valid := range []string{"day", "week", "month", "quarter", "year", "all"} {
		frame, err := ParseTimeFrame(valid)
		require.NoError(t, err)
		require.Equal(t, TimeFrame(valid), frame)
	}

	_, err = ParseTimeFrame("decade")
	require.ErrorIs(t, err, ErrInvalidTimeFrame)
}

func TestBuildFinancialSummary(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-1", quotes.StatusCompleted, now.Add(-time.Hour), "Deep Cleaning", "100.00", "76.92"),
		record("KMI-2", quotes.StatusCompleted, now.Add(-2*time.Hour), "Deep Cleaning", "50.00", "38.46"),
		record("KMI-3", quotes.StatusPending, now.Add(-3*time.Hour), "Regular Domestic Cleaning", "91.00", "70.00"),
	}

	report := Build(records, FrameAll, now)

	fin := report.FinancialSummary
	require.Equal(t, "150.00", fin.TotalRevenue)
	require.Equal(t, "115.38", fin.TotalCost)
	require.Equal(t, "34.62", fin.TotalProfit)
	require.Equal(t, "75.00", fin.AverageQuoteValue)
	require.Equal(t, 2, fin.CompletedQuotes)
	require.Equal(t, 3, fin.TotalQuotes)
	require.Equal(t, "66.7", fin.CompletionRate)
	require.Equal(t, "23.1", fin.ProfitMargin)
}

func TestBuildZeroCompletedAverages(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-1", quotes.StatusPending, now, "Deep Cleaning", "100.00", "76.92"),
	}

	fin := Build(records, FrameAll, now).FinancialSummary
	require.Equal(t, "0.00", fin.TotalRevenue)
	require.Equal(t, "0.00", fin.AverageQuoteValue)
	require.Equal(t, 0, fin.CompletedQuotes)
	require.Equal(t, "0.0", fin.CompletionRate)
	require.Equal(t, "0.0", fin.ProfitMargin)
}

func TestBuildStatusCountsZeroFilled(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-1", quotes.StatusCompleted, now, "Deep Cleaning", "100.00", "76.92"),
		record("KMI-2", quotes.StatusCompleted, now, "Deep Cleaning", "50.00", "38.46"),
		record("KMI-3", quotes.StatusPending, now, "Regular Domestic Cleaning", "91.00", "70.00"),
	}

	report := Build(records, FrameAll, now)

	require.Equal(t, []StatusCount{
		{Status: "Pending", Count: 1},
		{Status: "Approved", Count: 0},
		{Status: "Completed", Count: 2},
		{Status: "Cancelled", Count: 0},
	}, report.StatusCounts)

	// Status counts always sum to the filtered total.
	sum := 0
	for _, sc := range report.StatusCounts {
		sum += sc.Count
	}
	require.Equal(t, report.FinancialSummary.TotalQuotes, sum)
}

func TestBuildServiceTypeCountsFirstSeenOrder(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-1", quotes.StatusPending, now, "Deep Cleaning", "0.00", "0.00"),
		record("KMI-2", quotes.StatusPending, now, "Regular Domestic Cleaning", "0.00", "0.00"),
		record("KMI-3", quotes.StatusPending, now, "Deep Cleaning", "0.00", "0.00"),
	}

	report := Build(records, FrameAll, now)
	require.Equal(t, []ServiceTypeCount{
		{ServiceType: "Deep Cleaning", Count: 2},
		{ServiceType: "Regular Domestic Cleaning", Count: 1},
	}, report.ServiceTypeCounts)
}

func TestBuildDayFrameFilters(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-today", quotes.StatusPending, now.Add(-2*time.Hour), "Deep Cleaning", "0.00", "0.00"),
		record("KMI-yesterday", quotes.StatusPending, now.Add(-26*time.Hour), "Deep Cleaning", "0.00", "0.00"),
	}

	report := Build(records, FrameDay, now)
	require.Equal(t, 1, report.FinancialSummary.TotalQuotes)
}

func TestBuildWeekFrameStartsSunday(t *testing.T) {
	// 2025-03-15 is a Saturday; the week started Sunday 2025-03-09 00:00.
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-in", quotes.StatusPending, time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
		record("KMI-out", quotes.StatusPending, time.Date(2025, time.March, 8, 23, 59, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
	}

	report := Build(records, FrameWeek, now)
	require.Equal(t, 1, report.FinancialSummary.TotalQuotes)
}

func TestBuildQuarterFrame(t *testing.T) {
	// March sits in the January quarter.
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-jan", quotes.StatusPending, time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
		record("KMI-dec", quotes.StatusPending, time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
	}

	report := Build(records, FrameQuarter, now)
	require.Equal(t, 1, report.FinancialSummary.TotalQuotes)
}

func TestBuildYearFrame(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-this", quotes.StatusPending, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
		record("KMI-last", quotes.StatusPending, time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
	}

	report := Build(records, FrameYear, now)
	require.Equal(t, 1, report.FinancialSummary.TotalQuotes)
}

func TestTimeSeriesWeekdayOrder(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-fri", quotes.StatusCompleted, time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC), "Deep Cleaning", "100.00", "76.92"),
		record("KMI-sun", quotes.StatusPending, time.Date(2025, time.March, 9, 9, 0, 0, 0, time.UTC), "Deep Cleaning", "50.00", "38.46"),
		record("KMI-tue", quotes.StatusPending, time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC), "Deep Cleaning", "50.00", "38.46"),
	}

	series := Build(records, FrameWeek, now).TimeSeriesData
	require.Len(t, series, 3)
	require.Equal(t, "Sunday", series[0].Date)
	require.Equal(t, "Tuesday", series[1].Date)
	require.Equal(t, "Friday", series[2].Date)

	// Revenue only accumulates from completed records.
	require.Equal(t, "0.00", series[0].Revenue)
	require.Equal(t, "100.00", series[2].Revenue)
	require.Equal(t, 1, series[2].Quotes)
}

func TestTimeSeriesDayOfMonthNumericOrder(t *testing.T) {
	now := time.Date(2025, time.March, 25, 12, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-21", quotes.StatusPending, time.Date(2025, time.March, 21, 9, 0, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
		record("KMI-3", quotes.StatusPending, time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
		record("KMI-11", quotes.StatusPending, time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
	}

	series := Build(records, FrameMonth, now).TimeSeriesData
	require.Len(t, series, 3)
	// Numeric order, not lexical ("11" < "21" < "3" lexically).
	require.Equal(t, "3", series[0].Date)
	require.Equal(t, "11", series[1].Date)
	require.Equal(t, "21", series[2].Date)
}

func TestTimeSeriesHourBuckets(t *testing.T) {
	now := time.Date(2025, time.March, 15, 18, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-a", quotes.StatusPending, time.Date(2025, time.March, 15, 9, 10, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
		record("KMI-b", quotes.StatusPending, time.Date(2025, time.March, 15, 9, 45, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
		record("KMI-c", quotes.StatusPending, time.Date(2025, time.March, 15, 14, 0, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
	}

	series := Build(records, FrameDay, now).TimeSeriesData
	require.Len(t, series, 2)
	require.Equal(t, "09:00", series[0].Date)
	require.Equal(t, 2, series[0].Quotes)
	require.Equal(t, "14:00", series[1].Date)
}

func TestTimeSeriesMonthNames(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-may", quotes.StatusPending, time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
		record("KMI-jan", quotes.StatusPending, time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), "Deep Cleaning", "0.00", "0.00"),
	}

	series := Build(records, FrameYear, now).TimeSeriesData
	require.Len(t, series, 2)
	require.Equal(t, "January", series[0].Date)
	require.Equal(t, "May", series[1].Date)
}

func TestTimeSeriesUsesFilteredSet(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	records := []quotes.Record{
		record("KMI-in", quotes.StatusPending, now.Add(-time.Hour), "Deep Cleaning", "0.00", "0.00"),
		record("KMI-out", quotes.StatusPending, now.Add(-72*time.Hour), "Deep Cleaning", "0.00", "0.00"),
	}

	series := Build(records, FrameDay, now).TimeSeriesData
	require.Len(t, series, 1)
	require.Equal(t, 1, series[0].Quotes)
}
