package unload

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/tankops/internal/http/auth"
	"github.com/MrJamesThe3rd/tankops/internal/http/respond"
	"github.com/MrJamesThe3rd/tankops/internal/unload"
)

type Handler struct {
	svc *unload.Service
	log *zap.Logger
}

func NewHandler(svc *unload.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/approve", h.approve)
	r.Post("/{id}/reject", h.reject)
}

type createUnloadRequest struct {
	TankID             uuid.UUID           `json:"tank_id"`
	Kind               unload.Kind         `json:"kind"`
	DepositorName      string              `json:"depositor_name"`
	LiterAmount        decimal.Decimal     `json:"liter_amount"`
	DeliveredVolume    decimal.NullDecimal `json:"delivered_volume"`
	InitialOrderVolume decimal.NullDecimal `json:"initial_order_volume"`
	Notes              string              `json:"notes"`
}

type unloadResponse struct {
	ID                 uuid.UUID        `json:"id"`
	TankID             uuid.UUID        `json:"tank_id"`
	UnloaderID         uuid.UUID        `json:"unloader_id"`
	Kind               unload.Kind      `json:"kind"`
	DepositorName      string           `json:"depositor_name,omitempty"`
	LiterAmount        decimal.Decimal  `json:"liter_amount"`
	DeliveredVolume    *decimal.Decimal `json:"delivered_volume"`
	InitialOrderVolume *decimal.Decimal `json:"initial_order_volume"`
	PurchaseOrderID    *uuid.UUID       `json:"purchase_order_id,omitempty"`
	Status             unload.Status    `json:"status"`
	Notes              string           `json:"notes"`
	ProcessedBy        *uuid.UUID       `json:"processed_by,omitempty"`
	ProcessedAt        *time.Time       `json:"processed_at,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func nullable(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}

	return &d.Decimal
}

func toResponse(u *unload.Unload) unloadResponse {
	return unloadResponse{
		ID:                 u.ID,
		TankID:             u.TankID,
		UnloaderID:         u.UnloaderID,
		Kind:               u.Kind,
		DepositorName:      u.DepositorName,
		LiterAmount:        u.LiterAmount,
		DeliveredVolume:    nullable(u.DeliveredVolume),
		InitialOrderVolume: nullable(u.InitialOrderVolume),
		PurchaseOrderID:    u.PurchaseOrderID,
		Status:             u.Status,
		Notes:              u.Notes,
		ProcessedBy:        u.ProcessedBy,
		ProcessedAt:        u.ProcessedAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func toResponseList(unloads []*unload.Unload) []unloadResponse {
	out := make([]unloadResponse, 0, len(unloads))
	for _, u := range unloads {
		out = append(out, toResponse(u))
	}

	return out
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.Actor(r.Context())
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	var req createUnloadRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, h.log, err)
		return
	}

	u, err := h.svc.Create(r.Context(), unload.CreateParams{
		TankID:             req.TankID,
		UnloaderID:         actor,
		Kind:               req.Kind,
		DepositorName:      req.DepositorName,
		LiterAmount:        req.LiterAmount,
		DeliveredVolume:    req.DeliveredVolume,
		InitialOrderVolume: req.InitialOrderVolume,
		Notes:              req.Notes,
	})
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.OK(w, h.log, http.StatusCreated, toResponse(u), "unload created")
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := unload.ListFilter{}
	q := r.URL.Query()

	if s := q.Get("tank_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, h.log, respond.InvalidParam("tank_id", s))
			return
		}

		filter.TankID = new(id)
	}

	if s := q.Get("status"); s != "" {
		switch st := unload.Status(s); st {
		case unload.StatusPending, unload.StatusApproved, unload.StatusRejected:
			filter.Status = new(st)
		default:
			respond.Error(w, h.log, respond.InvalidParam("status", s))
			return
		}
	}

	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			respond.Error(w, h.log, respond.InvalidParam("limit", s))
			return
		}

		filter.Limit = n
	}

	unloads, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.OK(w, h.log, http.StatusOK, toResponseList(unloads), "")
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.OK(w, h.log, http.StatusOK, toResponse(u), "")
}

type updateUnloadRequest struct {
	LiterAmount        *decimal.Decimal    `json:"liter_amount,omitempty"`
	DeliveredVolume    decimal.NullDecimal `json:"delivered_volume"`
	InitialOrderVolume decimal.NullDecimal `json:"initial_order_volume"`
	DepositorName      *string             `json:"depositor_name,omitempty"`
	Notes              *string             `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	var req updateUnloadRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, h.log, err)
		return
	}

	u, err := h.svc.Update(r.Context(), id, unload.UpdateParams{
		LiterAmount:        req.LiterAmount,
		DeliveredVolume:    req.DeliveredVolume,
		InitialOrderVolume: req.InitialOrderVolume,
		DepositorName:      req.DepositorName,
		Notes:              req.Notes,
	})
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.OK(w, h.log, http.StatusOK, toResponse(u), "unload updated")
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.svc.Approve, "unload approved")
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.svc.Reject, "unload rejected")
}

type reviewFunc func(ctx context.Context, id, approverID uuid.UUID) (*unload.Unload, error)

func (h *Handler) review(w http.ResponseWriter, r *http.Request, fn reviewFunc, message string) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	actor, err := auth.Actor(r.Context())
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	u, err := fn(r.Context(), id, actor)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.OK(w, h.log, http.StatusOK, toResponse(u), message)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	s := chi.URLParam(r, "id")

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, respond.InvalidParam("id", s)
	}

	return id, nil
}
