package tank

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/tankops/internal/http/respond"
	"github.com/MrJamesThe3rd/tankops/internal/importer"
	"github.com/MrJamesThe3rd/tankops/internal/inventory"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	svc    *inventory.Service
	parser *importer.Parser
	log    *zap.Logger
}

func NewHandler(svc *inventory.Service, parser *importer.Parser, log *zap.Logger) *Handler {
	return &Handler{svc: svc, parser: parser, log: log}
}

// TankRoutes mounts under /tanks.
func (h *Handler) TankRoutes(r chi.Router) {
	r.Get("/{id}/stock", h.stock)
	r.Post("/{id}/readings/import", h.importReadings)
}

// ReadingRoutes mounts under /readings.
func (h *Handler) ReadingRoutes(r chi.Router) {
	r.Post("/{id}/approve", h.approveReading)
	r.Post("/{id}/reject", h.rejectReading)
}

type stockResponse struct {
	TankID     uuid.UUID        `json:"tank_id"`
	Liters     decimal.Decimal  `json:"liters"`
	Source     inventory.Source `json:"source"`
	Baseline   decimal.Decimal  `json:"baseline"`
	BaselineAt *time.Time       `json:"baseline_at,omitempty"`
	ReadingID  *uuid.UUID       `json:"reading_id,omitempty"`
	Delivered  decimal.Decimal  `json:"delivered"`
	Sold       decimal.Decimal  `json:"sold"`
	Clamped    bool             `json:"clamped"`
	AsOf       time.Time        `json:"as_of"`
}

func toStockResponse(s *inventory.Stock) stockResponse {
	return stockResponse{
		TankID:     s.TankID,
		Liters:     s.Liters,
		Source:     s.Source,
		Baseline:   s.Baseline,
		BaselineAt: s.BaselineAt,
		ReadingID:  s.ReadingID,
		Delivered:  s.Delivered,
		Sold:       s.Sold,
		Clamped:    s.Clamped,
		AsOf:       s.AsOf,
	}
}

type readingResponse struct {
	ID         uuid.UUID               `json:"id"`
	TankID     uuid.UUID               `json:"tank_id"`
	LiterValue decimal.Decimal         `json:"liter_value"`
	Status     inventory.ReadingStatus `json:"status"`
	TakenAt    time.Time               `json:"taken_at"`
}

func toReadingResponse(r *inventory.Reading) readingResponse {
	return readingResponse{
		ID:         r.ID,
		TankID:     r.TankID,
		LiterValue: r.LiterValue,
		Status:     r.Status,
		TakenAt:    r.CreatedAt,
	}
}

func (h *Handler) stock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	var stock *inventory.Stock

	if s := r.URL.Query().Get("as_of"); s != "" {
		asOf, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			respond.Error(w, h.log, respond.InvalidParam("as_of", s))
			return
		}

		stock, err = h.svc.StockAt(r.Context(), id, asOf)
	} else {
		stock, err = h.svc.CurrentStock(r.Context(), id)
	}

	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.OK(w, h.log, http.StatusOK, toStockResponse(stock), "")
}

// importReadings accepts the gauge export either as a multipart "file" field
// or as the raw request body.
func (h *Handler) importReadings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var body io.Reader = r.Body

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, ferr := r.FormFile("file")
		if ferr != nil {
			respond.Error(w, h.log, respond.InvalidParam("file", ferr.Error()))
			return
		}
		defer file.Close()

		body = file
	}

	params, err := h.parser.Parse(body)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	readings, err := h.svc.ImportReadings(r.Context(), id, params)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	out := make([]readingResponse, 0, len(readings))
	for _, rd := range readings {
		out = append(out, toReadingResponse(rd))
	}

	respond.OK(w, h.log, http.StatusCreated, out, "readings imported")
}

func (h *Handler) approveReading(w http.ResponseWriter, r *http.Request) {
	h.reviewReading(w, r, h.svc.ApproveReading)
}

func (h *Handler) rejectReading(w http.ResponseWriter, r *http.Request) {
	h.reviewReading(w, r, h.svc.RejectReading)
}

func (h *Handler) reviewReading(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uuid.UUID) (*inventory.Reading, error)) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	reading, err := fn(r.Context(), id)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.OK(w, h.log, http.StatusOK, toReadingResponse(reading), "reading "+strings.ToLower(string(reading.Status)))
}

func pathID(r *http.Request) (uuid.UUID, error) {
	s := chi.URLParam(r, "id")

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, respond.InvalidParam("id", s)
	}

	return id, nil
}
