package quotes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kmiservices/quotetracker/internal/platform/httpx"
	"github.com/kmiservices/quotetracker/internal/pricing"
)

// QuoteService is the surface the handler needs from the service layer.
type QuoteService interface {
	Calculate(ctx context.Context, in pricing.QuoteInput) (*pricing.Breakdown, error)
	Submit(ctx context.Context, req SubmitRequest) (*Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	SetStatus(ctx context.Context, id string, status string) (*Record, error)
}

// Handler exposes the quote HTTP surface.
type Handler struct {
	logger   *slog.Logger
	service  QuoteService
	validate *validator.Validate
}

// NewHandler constructs a quote handler.
func NewHandler(logger *slog.Logger, service QuoteService) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// MountRoutes attaches quote routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/calculate", h.Calculate)
	r.Post("/", h.Submit)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/status", h.SetStatus)
}

type breakdownResponse struct {
	Service ServiceDetails `json:"serviceDetails"`
	Cost    CostDetails    `json:"costDetails"`
}

// Calculate prices a quote without persisting it.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var in pricing.QuoteInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	breakdown, err := h.service.Calculate(r.Context(), in)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, breakdownResponse{
		Service: ServiceDetailsFromBreakdown(breakdown),
		Cost:    CostDetailsFromBreakdown(breakdown),
	})
}

// Submit stores a new quote and returns the full record.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	rec, err := h.service.Submit(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

// List returns quotes filtered, searched and sorted per query params.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ListRequest{
		Status:    q.Get("status"),
		Search:    q.Get("q"),
		SortField: q.Get("sort"),
		SortDir:   q.Get("dir"),
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// Get returns one quote by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

// SetStatus applies a lifecycle transition and returns the updated record.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req SetStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	rec, err := h.service.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pricing.ErrNoMatch):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, pricing.ErrInvalidSoilingLevel), errors.Is(err, ErrInvalidStatus):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicateID):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	default:
		h.logger.Error("quote request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
