package pricing

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kmiservices/quotetracker/internal/platform/httpx"
)

// Handler serves the pricing-data admin surface.
type Handler struct {
	logger *slog.Logger
	source *Source
}

// NewHandler constructs a pricing handler.
func NewHandler(logger *slog.Logger, source *Source) *Handler {
	return &Handler{logger: logger, source: source}
}

// MountRoutes attaches pricing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
}

type tariffView struct {
	Name string `json:"name"`
	Cost string `json:"cost"`
	Unit string `json:"unit"`
}

type summaryResponse struct {
	ServiceTypes  []string     `json:"serviceTypes"`
	PropertySizes []string     `json:"propertySizes"`
	Extras        []tariffView `json:"extras"`
	MarkupPercent string       `json:"markupPercent"`
}

// Summary reports the catalog dimensions, extras tariff and markup rate.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.source.Catalog()
	if err != nil {
		h.logger.Error("load pricing catalog", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	tariff := Tariff()
	extras := make([]tariffView, 0, len(tariff))
	for _, t := range tariff {
		extras = append(extras, tariffView{
			Name: t.Name,
			Cost: t.Cost.StringFixed(2),
			Unit: t.Unit,
		})
	}

	httpx.JSON(w, http.StatusOK, summaryResponse{
		ServiceTypes:  catalog.ServiceTypes(),
		PropertySizes: catalog.PropertySizes(),
		Extras:        extras,
		MarkupPercent: MarkupRate.Mul(hundred).StringFixed(0),
	})
}
