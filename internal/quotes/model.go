package quotes

import (
	"errors"
	"time"

	"github.com/kmiservices/quotetracker/internal/pricing"
)

// Status is the administrative state of a stored quote.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ErrInvalidStatus indicates a status outside the four valid values.
var ErrInvalidStatus = errors.New("invalid status value")

// Statuses lists the valid values in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusCompleted, StatusCancelled}
}

// ParseStatus validates a transported status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Label returns the capitalized display form, e.g. "Pending".
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// CustomerDetails captures who requested the quote and how to reach them.
type CustomerDetails struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	PreferredDate  string `json:"preferredDate"`
	PreferredTime  string `json:"preferredTime"`
	ReferralSource string `json:"referralSource"`
	OtherReferral  string `json:"otherReferral,omitempty"`
}

// ServiceDetails mirrors the service fields of the pricing breakdown.
type ServiceDetails struct {
	ServiceType      string  `json:"serviceType"`
	PropertySize     string  `json:"propertySize"`
	SoilingLevel     string  `json:"soilingLevel"`
	EstimatedTime    float64 `json:"estimatedTime"`
	CleanersRequired int     `json:"cleanersRequired"`
}

// ExtraLine is one priced add-on as stored on the record.
type ExtraLine struct {
	Name string `json:"name"`
	Cost string `json:"cost"`
}

// CostDetails mirrors the cost fields of the pricing breakdown. All
// currency values are fixed two-decimal strings; the currency symbol is
// applied only at presentation.
type CostDetails struct {
	LabourCost      string      `json:"labourCost"`
	MaterialCost    string      `json:"materialCost"`
	BaseCost        string      `json:"baseCost"`
	ExtrasBreakdown []ExtraLine `json:"extrasBreakdown"`
	ExtrasCost      string      `json:"extrasCost"`
	ContractorPrice string      `json:"contractorPrice"`
	Markup          string      `json:"markup"`
	FinalPrice      string      `json:"finalPrice"`
}

// AdditionalInfo carries free-form notes and the site visit flag.
type AdditionalInfo struct {
	Notes             string `json:"notes,omitempty"`
	SiteVisitRequired bool   `json:"siteVisitRequired"`
}

// Record is a persisted quote. Created once at submission time with
// status pending; only the status field may change afterwards; records
// are never deleted by any exposed operation.
type Record struct {
	ID              string          `json:"id"`
	Timestamp       time.Time       `json:"timestamp"`
	Status          Status          `json:"status"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	ServiceDetails  ServiceDetails  `json:"serviceDetails"`
	CostDetails     CostDetails     `json:"costDetails"`
	AdditionalInfo  AdditionalInfo  `json:"additionalInfo"`
}

// CostDetailsFromBreakdown renders a breakdown into the stored string form.
func CostDetailsFromBreakdown(b *pricing.Breakdown) CostDetails {
	extras := make([]ExtraLine, 0, len(b.Extras))
	for _, item := range b.Extras {
		extras = append(extras, ExtraLine{Name: item.Name, Cost: item.Cost.StringFixed(2)})
	}
	return CostDetails{
		LabourCost:      b.LabourCost.StringFixed(2),
		MaterialCost:    b.MaterialCost.StringFixed(2),
		BaseCost:        b.BaseCost.StringFixed(2),
		ExtrasBreakdown: extras,
		ExtrasCost:      b.ExtrasCost.StringFixed(2),
		ContractorPrice: b.ContractorPrice.StringFixed(2),
		Markup:          b.Markup.StringFixed(2),
		FinalPrice:      b.FinalPrice.StringFixed(2),
	}
}

// ServiceDetailsFromBreakdown copies the service fields of a breakdown.
func ServiceDetailsFromBreakdown(b *pricing.Breakdown) ServiceDetails {
	return ServiceDetails{
		ServiceType:      b.ServiceType,
		PropertySize:     b.PropertySize,
		SoilingLevel:     string(b.SoilingLevel),
		EstimatedTime:    b.EstimatedTime,
		CleanersRequired: b.CleanersRequired,
	}
}
