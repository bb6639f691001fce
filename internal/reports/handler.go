package reports

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/kmiservices/quotetracker/internal/platform/httpx"
	"github.com/kmiservices/quotetracker/internal/quotes"
)

// RecordSource supplies the full record collection. Satisfied by
// quotes.Store.
type RecordSource interface {
	List(ctx context.Context) ([]quotes.Record, error)
}

// Handler serves report views. Concurrent identical requests share one
// in-flight build via singleflight; nothing is cached between requests.
type Handler struct {
	logger *slog.Logger
	source RecordSource
	group  singleflight.Group
	now    func() time.Time
}

// NewHandler constructs a report handler.
func NewHandler(logger *slog.Logger, source RecordSource) *Handler {
	return &Handler{
		logger: logger,
		source: source,
		now:    time.Now,
	}
}

// MountRoutes attaches report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.GetReport)
}

// GetReport builds the aggregate view for the requested time frame.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	frame, err := ParseTimeFrame(r.URL.Query().Get("timeFrame"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	result, err, _ := h.group.Do(string(frame), func() (any, error) {
		records, err := h.source.List(r.Context())
		if err != nil {
			return nil, err
		}
		report := Build(records, frame, h.now())
		return report, nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.logger.Error("report build failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, result)
}
