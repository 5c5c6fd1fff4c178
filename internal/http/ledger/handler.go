package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/tankops/internal/http/respond"
	"github.com/MrJamesThe3rd/tankops/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
	log *zap.Logger
}

func NewHandler(svc *ledger.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/remaining", h.remaining)
}

func (h *Handler) remaining(w http.ResponseWriter, r *http.Request) {
	stationID, err := queryID(r, "station_id")
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	productID, err := queryID(r, "product_id")
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	rem, err := h.svc.Remaining(r.Context(), stationID, productID)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.OK(w, h.log, http.StatusOK, rem, "")
}

func queryID(r *http.Request, name string) (uuid.UUID, error) {
	s := r.URL.Query().Get(name)

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, respond.InvalidParam(name, s)
	}

	return id, nil
}
