package quotes

import "github.com/kmiservices/quotetracker/internal/pricing"

// SubmitRequest carries a customer submission. The service recomputes the
// breakdown server-side; client-computed figures are never trusted.
type SubmitRequest struct {
	Customer CustomerDetails    `json:"customer" validate:"required"`
	Service  pricing.QuoteInput `json:"service" validate:"required"`
	Info     AdditionalInfo     `json:"additionalInfo"`
}

// ListRequest selects, searches and orders the admin quote listing.
type ListRequest struct {
	// Status filters to one status; empty or "all" keeps everything.
	Status string `json:"status" validate:"omitempty,oneof=all pending approved completed cancelled"`
	// Search matches case-insensitively against id, customer name, email,
	// phone, service type and property size.
	Search string `json:"q"`
	// SortField is one of timestamp, customerName, serviceType, finalPrice.
	SortField string `json:"sort" validate:"omitempty,oneof=timestamp customerName serviceType finalPrice"`
	// SortDir is asc or desc; defaults to desc.
	SortDir string `json:"dir" validate:"omitempty,oneof=asc desc"`
}

// SetStatusRequest drives a lifecycle transition.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListResult is the listing plus the unfiltered total.
type ListResult struct {
	Quotes []Record `json:"quotes"`
	Total  int      `json:"total"`
}
