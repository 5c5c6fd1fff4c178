package tank_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
	"github.com/MrJamesThe3rd/tankops/internal/http/tank"
	"github.com/MrJamesThe3rd/tankops/internal/importer"
	"github.com/MrJamesThe3rd/tankops/internal/inventory"
)

var now = time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
	Code    string              `json:"code"`
}

func newRouter(t *testing.T) (*inventory.MockRepository, http.Handler) {
	ctrl := gomock.NewController(t)
	repo := inventory.NewMockRepository(ctrl)

	svc := inventory.NewService(repo, time.UTC, inventory.WithClock(func() time.Time { return now }))
	h := tank.NewHandler(svc, importer.NewParser(time.UTC), zap.NewNop())

	r := chi.NewRouter()
	r.Route("/tanks", h.TankRoutes)
	r.Route("/readings", h.ReadingRoutes)

	return repo, r
}

func serve(t *testing.T, router http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))

	return rec, env
}

func testTank() *inventory.Tank {
	return &inventory.Tank{
		ID:           uuid.New(),
		Name:         "T1 Diesel",
		Capacity:     decimal.RequireFromString("10000"),
		InitialStock: decimal.RequireFromString("1200"),
	}
}

func TestHandler_Stock(t *testing.T) {
	repo, router := newRouter(t)
	tk := testTank()

	repo.EXPECT().GetTank(gomock.Any(), tk.ID).Return(tk, nil)
	repo.EXPECT().LoadHistory(gomock.Any(), tk.ID, inventory.DayWindow(now, time.UTC)).Return(&inventory.History{}, nil)

	rec, env := serve(t, router, httptest.NewRequest(http.MethodGet, "/tanks/"+tk.ID.String()+"/stock", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "1200", got["liters"])
	assert.Equal(t, string(inventory.SourceInitialStock), got["source"])
}

func TestHandler_StockAt(t *testing.T) {
	repo, router := newRouter(t)
	tk := testTank()
	asOf := time.Date(2024, 5, 9, 8, 0, 0, 0, time.UTC)

	repo.EXPECT().GetTank(gomock.Any(), tk.ID).Return(tk, nil)
	repo.EXPECT().LoadHistory(gomock.Any(), tk.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, w inventory.Window) (*inventory.History, error) {
			assert.True(t, w.AsOf.Equal(asOf))

			return &inventory.History{}, nil
		})

	rec, _ := serve(t, router, httptest.NewRequest(http.MethodGet,
		"/tanks/"+tk.ID.String()+"/stock?as_of=2024-05-09T08:00:00Z", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(t, router, httptest.NewRequest(http.MethodGet,
		"/tanks/"+tk.ID.String()+"/stock?as_of=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_StockTankNotFound(t *testing.T) {
	repo, router := newRouter(t)
	id := uuid.New()

	repo.EXPECT().GetTank(gomock.Any(), id).Return(nil, apperr.NotFound("tank", id))

	rec, env := serve(t, router, httptest.NewRequest(http.MethodGet, "/tanks/"+id.String()+"/stock", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(apperr.KindNotFound), env.Code)
}

const gaugeCSV = "Data;Hora;Volume (L)\n10/05/2024;06:00;3.000,0\n10/05/2024;12:00;2.600,5\n"

func TestHandler_ImportReadings(t *testing.T) {
	tk := testTank()

	multipartBody := func(t *testing.T) (*bytes.Buffer, string) {
		var buf bytes.Buffer

		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "medicao.csv")
		require.NoError(t, err)

		_, err = part.Write([]byte(gaugeCSV))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		return &buf, mw.FormDataContentType()
	}

	tests := []struct {
		name    string
		request func(t *testing.T) *http.Request
	}{
		{
			name: "raw body",
			request: func(*testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/tanks/"+tk.ID.String()+"/readings/import", strings.NewReader(gaugeCSV))
				req.Header.Set("Content-Type", "text/csv")

				return req
			},
		},
		{
			name: "multipart upload",
			request: func(t *testing.T) *http.Request {
				body, contentType := multipartBody(t)

				req := httptest.NewRequest(http.MethodPost, "/tanks/"+tk.ID.String()+"/readings/import", body)
				req.Header.Set("Content-Type", contentType)

				return req
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, router := newRouter(t)

			repo.EXPECT().GetTank(gomock.Any(), tk.ID).Return(tk, nil)
			repo.EXPECT().CreateReadings(gomock.Any(), gomock.Len(2)).Return(nil)

			rec, env := serve(t, router, tt.request(t))

			require.Equal(t, http.StatusCreated, rec.Code)

			var got []map[string]any
			require.NoError(t, json.Unmarshal(env.Data, &got))
			require.Len(t, got, 2)
			assert.Equal(t, "3000", got[0]["liter_value"])
			assert.Equal(t, "PENDING", got[1]["status"])
		})
	}
}

func TestHandler_ImportUnknownFormat(t *testing.T) {
	_, router := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/tanks/"+uuid.NewString()+"/readings/import",
		strings.NewReader("foo;bar\n1;2\n"))

	rec, env := serve(t, router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "file")
}

func TestHandler_ReviewReading(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		setupMock  func(repo *inventory.MockRepository, id uuid.UUID)
		wantStatus int
	}{
		{
			name:   "approve",
			action: "approve",
			setupMock: func(repo *inventory.MockRepository, id uuid.UUID) {
				repo.EXPECT().ReviewReading(gomock.Any(), id, inventory.ReadingApproved).
					Return(&inventory.Reading{ID: id, Status: inventory.ReadingApproved}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "reject reviewed reading",
			action: "reject",
			setupMock: func(repo *inventory.MockRepository, id uuid.UUID) {
				repo.EXPECT().ReviewReading(gomock.Any(), id, inventory.ReadingRejected).
					Return(nil, apperr.New(apperr.KindAlreadyProcessed, "reading is already approved"))
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, router := newRouter(t)
			id := uuid.New()
			tt.setupMock(repo, id)

			rec, _ := serve(t, router, httptest.NewRequest(http.MethodPost, "/readings/"+id.String()+"/"+tt.action, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
