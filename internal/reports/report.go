package reports

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmiservices/quotetracker/internal/quotes"
)

// TimeFrame selects the reporting window.
type TimeFrame string

const (
	FrameDay     TimeFrame = "day"
	FrameWeek    TimeFrame = "week"
	FrameMonth   TimeFrame = "month"
	FrameQuarter TimeFrame = "quarter"
	FrameYear    TimeFrame = "year"
	FrameAll     TimeFrame = "all"
)

// ErrInvalidTimeFrame indicates a value outside the six valid frames.
var ErrInvalidTimeFrame = errors.New("invalid time frame")

// ParseTimeFrame validates a transported frame string. Empty defaults
// to all.
func ParseTimeFrame(s string) (TimeFrame, error) {
	if s == "" {
		return FrameAll, nil
	}
	switch TimeFrame(s) {
	case FrameDay, FrameWeek, FrameMonth, FrameQuarter, FrameYear, FrameAll:
		return TimeFrame(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeFrame, s)
}

// StatusCount is one status bucket, zero-filled for absent statuses.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ServiceTypeCount is one service-type bucket; only types present in
// the filtered set appear, in first-seen order.
type ServiceTypeCount struct {
	ServiceType string `json:"serviceType"`
	Count       int    `json:"count"`
}

// FinancialSummary aggregates money over the filtered set. Revenue,
// cost and profit come from completed records only; totalQuotes counts
// every filtered record regardless of status.
type FinancialSummary struct {
	TotalRevenue      string `json:"totalRevenue"`
	TotalCost         string `json:"totalCost"`
	TotalProfit       string `json:"totalProfit"`
	AverageQuoteValue string `json:"averageQuoteValue"`
	CompletedQuotes   int    `json:"completedQuotes"`
	TotalQuotes       int    `json:"totalQuotes"`
	CompletionRate    string `json:"completionRate"`
	ProfitMargin      string `json:"profitMargin"`
}

// TimeBucket is one point of the time series. Quotes counts every
// filtered record in the bucket; Revenue sums finalPrice of completed
// records only.
type TimeBucket struct {
	Date    string `json:"date"`
	Quotes  int    `json:"quotes"`
	Revenue string `json:"revenue"`
}

// Report is the full aggregate view for one time frame.
type Report struct {
	TimeFrame         TimeFrame          `json:"timeFrame"`
	StatusCounts      []StatusCount      `json:"statusCounts"`
	ServiceTypeCounts []ServiceTypeCount `json:"serviceTypeCounts"`
	FinancialSummary  FinancialSummary   `json:"financialSummary"`
	TimeSeriesData    []TimeBucket       `json:"timeSeriesData"`
}

// Build derives the report for the given frame. now anchors the window
// in its own location; the result is fully determined by records, frame
// and now.
func Build(records []quotes.Record, frame TimeFrame, now time.Time) Report {
	filtered := filterByFrame(records, frame, now)

	return Report{
		TimeFrame:         frame,
		StatusCounts:      statusCounts(filtered),
		ServiceTypeCounts: serviceTypeCounts(filtered),
		FinancialSummary:  financialSummary(filtered),
		TimeSeriesData:    timeSeries(filtered, frame, now),
	}
}

func filterByFrame(records []quotes.Record, frame TimeFrame, now time.Time) []quotes.Record {
	if frame == FrameAll {
		out := make([]quotes.Record, len(records))
		copy(out, records)
		return out
	}

	loc := now.Location()
	var start time.Time
	switch frame {
	case FrameDay:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	case FrameWeek:
		// Week starts Sunday 00:00.
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		start = midnight.AddDate(0, 0, -int(now.Weekday()))
	case FrameMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	case FrameQuarter:
		// Quarter blocks start at January, April, July, October.
		quarterStart := time.Month(((int(now.Month())-1)/3)*3 + 1)
		start = time.Date(now.Year(), quarterStart, 1, 0, 0, 0, 0, loc)
	case FrameYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	}

	out := []quotes.Record{}
	for _, rec := range records {
		if !rec.Timestamp.In(loc).Before(start) {
			out = append(out, rec)
		}
	}
	return out
}

func statusCounts(records []quotes.Record) []StatusCount {
	byStatus := map[quotes.Status]int{}
	for _, rec := range records {
		byStatus[rec.Status]++
	}

	out := make([]StatusCount, 0, 4)
	for _, status := range quotes.Statuses() {
		out = append(out, StatusCount{Status: status.Label(), Count: byStatus[status]})
	}
	return out
}

func serviceTypeCounts(records []quotes.Record) []ServiceTypeCount {
	index := map[string]int{}
	out := []ServiceTypeCount{}
	for _, rec := range records {
		st := rec.ServiceDetails.ServiceType
		if i, ok := index[st]; ok {
			out[i].Count++
			continue
		}
		index[st] = len(out)
		out = append(out, ServiceTypeCount{ServiceType: st, Count: 1})
	}
	return out
}

func financialSummary(records []quotes.Record) FinancialSummary {
	revenue := decimal.Zero
	cost := decimal.Zero
	completed := 0
	for _, rec := range records {
		if rec.Status != quotes.StatusCompleted {
			continue
		}
		completed++
		revenue = revenue.Add(mustMoney(rec.CostDetails.FinalPrice))
		cost = cost.Add(mustMoney(rec.CostDetails.ContractorPrice))
	}

	profit := revenue.Sub(cost)
	average := decimal.Zero
	if completed > 0 {
		average = revenue.Div(decimal.NewFromInt(int64(completed)))
	}

	total := len(records)
	completionRate := decimal.Zero
	if total > 0 {
		completionRate = decimal.NewFromInt(int64(completed)).
			Div(decimal.NewFromInt(int64(total))).
			Mul(decimal.NewFromInt(100))
	}
	profitMargin := decimal.Zero
	if revenue.IsPositive() {
		profitMargin = profit.Div(revenue).Mul(decimal.NewFromInt(100))
	}

	return FinancialSummary{
		TotalRevenue:      revenue.StringFixed(2),
		TotalCost:         cost.StringFixed(2),
		TotalProfit:       profit.StringFixed(2),
		AverageQuoteValue: average.StringFixed(2),
		CompletedQuotes:   completed,
		TotalQuotes:       total,
		CompletionRate:    completionRate.StringFixed(1),
		ProfitMargin:      profitMargin.StringFixed(1),
	}
}

type bucket struct {
	sortKey int
	label   string
	quotes  int
	revenue decimal.Decimal
}

// timeSeries buckets the filtered set by a frame-dependent key and emits
// buckets in chronological order for that granularity, never lexical.
func timeSeries(records []quotes.Record, frame TimeFrame, now time.Time) []TimeBucket {
	loc := now.Location()
	byKey := map[int]*bucket{}

	for _, rec := range records {
		ts := rec.Timestamp.In(loc)
		key, label := bucketKey(ts, frame)
		b, ok := byKey[key]
		if !ok {
			b = &bucket{sortKey: key, label: label, revenue: decimal.Zero}
			byKey[key] = b
		}
		b.quotes++
		if rec.Status == quotes.StatusCompleted {
			b.revenue = b.revenue.Add(mustMoney(rec.CostDetails.FinalPrice))
		}
	}

	buckets := make([]*bucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].sortKey < buckets[j].sortKey })

	out := make([]TimeBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, TimeBucket{
			Date:    b.label,
			Quotes:  b.quotes,
			Revenue: b.revenue.StringFixed(2),
		})
	}
	return out
}

func bucketKey(ts time.Time, frame TimeFrame) (int, string) {
	switch frame {
	case FrameDay:
		return ts.Hour(), fmt.Sprintf("%02d:00", ts.Hour())
	case FrameWeek:
		return int(ts.Weekday()), ts.Weekday().String()
	case FrameMonth:
		return ts.Day(), strconv.Itoa(ts.Day())
	default:
		// quarter, year and all share month-name buckets.
		return int(ts.Month()), ts.Month().String()
	}
}

// mustMoney tolerates a malformed stored value by treating it as zero;
// the store only ever writes fixed two-decimal strings.
func mustMoney(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
