package quotes

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kmiservices/quotetracker/internal/pricing"
)

// Notifier delivers quote notifications. Failures are best-effort: the
// service logs them and never lets them affect the stored record.
type Notifier interface {
	QuoteSubmitted(ctx context.Context, rec Record) error
}

// Service coordinates pricing, persistence and notification.
type Service struct {
	logger   *slog.Logger
	store    Store
	catalog  *pricing.Source
	notifier Notifier

	now   func() time.Time
	newID func() string
}

// NewService wires the quote service. notifier may be nil when no
// outbound mail is configured.
func NewService(logger *slog.Logger, store Store, catalog *pricing.Source, notifier Notifier) *Service {
	return &Service{
		logger:   logger,
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    NewQuoteID,
	}
}

// NewQuoteID generates a record id: the KMI- prefix kept from the legacy
// scheme plus a random token with negligible collision probability,
// replacing the timestamp-and-three-digit format that could collide under
// load.
func NewQuoteID() string {
	return "KMI-" + uuid.NewString()
}

// Calculate prices a quote without storing anything. Shared by the live
// preview and the authoritative submission path so both always agree.
func (s *Service) Calculate(ctx context.Context, in pricing.QuoteInput) (*pricing.Breakdown, error) {
	catalog, err := s.catalog.Catalog()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return pricing.Compute(catalog, in)
}

// Submit recomputes the breakdown, appends the record with status pending,
// then best-effort dispatches notifications. A notification failure never
// rolls back or blocks the successful store.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Record, error) {
	breakdown, err := s.Calculate(ctx, req.Service)
	if err != nil {
		return nil, err
	}

	rec := Record{
		ID:              s.newID(),
		Timestamp:       s.now(),
		Status:          StatusPending,
		CustomerDetails: req.Customer,
		ServiceDetails:  ServiceDetailsFromBreakdown(breakdown),
		CostDetails:     CostDetailsFromBreakdown(breakdown),
		AdditionalInfo:  req.Info,
	}

	if err := s.store.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("store quote: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.QuoteSubmitted(ctx, rec); err != nil {
			s.logger.Error("quote notification failed",
				slog.String("quote_id", rec.ID),
				slog.Any("error", err))
		}
	}

	return &rec, nil
}

// Get returns one record by id.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.store.FindByID(ctx, id)
}

// SetStatus validates and applies a lifecycle transition. The transition
// graph is fully connected: any of the four states may move to any other,
// including back to pending.
func (s *Service) SetStatus(ctx context.Context, id string, status string) (*Record, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateStatus(ctx, id, parsed)
}

// List fetches all records and applies the admin filter, search and sort.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	total := len(records)

	filtered := filterRecords(records, req)
	sortRecords(filtered, req)

	return &ListResult{Quotes: filtered, Total: total}, nil
}

func filterRecords(records []Record, req ListRequest) []Record {
	status := req.Status
	search := strings.ToLower(strings.TrimSpace(req.Search))

	out := []Record{}
	for _, rec := range records {
		if status != "" && status != "all" && string(rec.Status) != status {
			continue
		}
		if search != "" && !matchesSearch(rec, search) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesSearch(rec Record, term string) bool {
	for _, field := range []string{
		rec.ID,
		rec.CustomerDetails.Name,
		rec.CustomerDetails.Email,
		rec.CustomerDetails.Phone,
		rec.ServiceDetails.ServiceType,
		rec.ServiceDetails.PropertySize,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func sortRecords(records []Record, req ListRequest) {
	field := req.SortField
	if field == "" {
		field = "timestamp"
	}
	asc := req.SortDir == "asc"

	less := func(a, b Record) bool {
		switch field {
		case "customerName":
			return a.CustomerDetails.Name < b.CustomerDetails.Name
		case "serviceType":
			return a.ServiceDetails.ServiceType < b.ServiceDetails.ServiceType
		case "finalPrice":
			return parsePrice(a.CostDetails.FinalPrice).LessThan(parsePrice(b.CostDetails.FinalPrice))
		default:
			return a.Timestamp.Before(b.Timestamp)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if asc {
			return less(records[i], records[j])
		}
		return less(records[j], records[i])
	})
}

func parsePrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
