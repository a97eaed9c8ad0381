package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chughjug/ratings-sub000/internal/models"
	"github.com/chughjug/ratings-sub000/internal/prizing"
	"github.com/chughjug/ratings-sub000/internal/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubPrizeService delegates to per-method functions so each test wires up
// only the call it exercises.
type stubPrizeService struct {
	getSettings    func(context.Context, primitive.ObjectID) (*models.PrizeSettings, error)
	updateSettings func(context.Context, *models.PrizeSettings) (*models.PrizeSettings, error)
	generate       func(context.Context, primitive.ObjectID, models.Money) (*models.PrizeSettings, error)
	calculate      func(context.Context, primitive.ObjectID) (*models.PrizeBatch, error)
	getPrizes      func(context.Context, primitive.ObjectID) ([]models.PrizeDistribution, error)
	getWinners     func(context.Context, primitive.ObjectID) (*models.WinnersReport, error)
	addManual      func(context.Context, primitive.ObjectID, *models.PrizeDistribution) (*models.PrizeDistribution, error)
	deleteManual   func(context.Context, primitive.ObjectID, string) error
	handleRound    func(context.Context, *models.RoundCompleteEvent) (bool, error)
}

var _ services.PrizeService = (*stubPrizeService)(nil)

func (s *stubPrizeService) GetSettings(ctx context.Context, id primitive.ObjectID) (*models.PrizeSettings, error) {
	return s.getSettings(ctx, id)
}

func (s *stubPrizeService) UpdateSettings(ctx context.Context, settings *models.PrizeSettings) (*models.PrizeSettings, error) {
	return s.updateSettings(ctx, settings)
}

func (s *stubPrizeService) GenerateStructure(ctx context.Context, id primitive.ObjectID, fund models.Money) (*models.PrizeSettings, error) {
	return s.generate(ctx, id, fund)
}

func (s *stubPrizeService) CalculatePrizes(ctx context.Context, id primitive.ObjectID) (*models.PrizeBatch, error) {
	return s.calculate(ctx, id)
}

func (s *stubPrizeService) GetPrizes(ctx context.Context, id primitive.ObjectID) ([]models.PrizeDistribution, error) {
	return s.getPrizes(ctx, id)
}

func (s *stubPrizeService) GetWinners(ctx context.Context, id primitive.ObjectID) (*models.WinnersReport, error) {
	return s.getWinners(ctx, id)
}

func (s *stubPrizeService) AddManualPrize(ctx context.Context, id primitive.ObjectID, prize *models.PrizeDistribution) (*models.PrizeDistribution, error) {
	return s.addManual(ctx, id, prize)
}

func (s *stubPrizeService) DeleteManualPrize(ctx context.Context, id primitive.ObjectID, prizeID string) error {
	return s.deleteManual(ctx, id, prizeID)
}

func (s *stubPrizeService) HandleRoundComplete(ctx context.Context, event *models.RoundCompleteEvent) (bool, error) {
	return s.handleRound(ctx, event)
}

func newPrizeRouter(stub *stubPrizeService) *gin.Engine {
	handler := NewPrizeHandler(stub)
	router := gin.New()
	router.GET("/api/v1/tournaments/:id/prize-settings", handler.GetSettings)
	router.POST("/api/v1/tournaments/:id/prizes/calculate", handler.CalculatePrizes)
	router.POST("/api/v1/tournaments/:id/prizes/manual", handler.AddManualPrize)
	router.POST("/api/v1/tournaments/:id/rounds/complete", handler.RoundComplete)
	return router
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v (body %q)", err, rec.Body.String())
	}
	return body
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		check      func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "validation error carries kind and location",
			err: &prizing.ValidationError{
				Kind:    prizing.KindMissingAmount,
				Section: "Open",
				Field:   "amount",
				Message: "cash prize requires an amount",
			},
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]interface{}) {
				if body["kind"] != "MISSING_AMOUNT" {
					t.Errorf("kind = %v, want MISSING_AMOUNT", body["kind"])
				}
				if body["section"] != "Open" {
					t.Errorf("section = %v, want Open", body["section"])
				}
				if body["field"] != "amount" {
					t.Errorf("field = %v, want amount", body["field"])
				}
			},
		},
		{
			name:       "tournament not found",
			err:        services.ErrTournamentNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "manual prize not found",
			err:        services.ErrPrizeNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "computation in progress is a retryable conflict",
			err:        services.ErrComputationInProgress,
			wantStatus: http.StatusConflict,
			check: func(t *testing.T, body map[string]interface{}) {
				if body["retryable"] != true {
					t.Errorf("retryable = %v, want true", body["retryable"])
				}
			},
		},
		{
			name:       "prizes disabled is a plain conflict",
			err:        services.ErrPrizesDisabled,
			wantStatus: http.StatusConflict,
			check: func(t *testing.T, body map[string]interface{}) {
				if _, ok := body["retryable"]; ok {
					t.Error("disabled conflict should not be marked retryable")
				}
			},
		},
		{
			name:       "missing standings",
			err:        services.ErrNoStandings,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrapped sentinel still maps",
			err:        fmt.Errorf("failed to load standings: %w", services.ErrNoStandings),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown errors are internal",
			err:        errors.New("mongo fell over"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondServiceError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := decodeBody(t, rec)
			if body["error"] == "" {
				t.Error("expected a non-empty error message")
			}
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestCalculatePrizesResponse(t *testing.T) {
	id := primitive.NewObjectID()
	batch := &models.PrizeBatch{
		TournamentID: id,
		BatchID:      "3f2c7d1e-0000-5000-8000-1234567890ab",
		ComputedAt:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Distributions: []models.PrizeDistribution{
			{PlayerID: "p1", PlayerName: "Alice Adams", Section: "Open", PrizeName: "1st Place"},
		},
	}
	stub := &stubPrizeService{
		calculate: func(_ context.Context, got primitive.ObjectID) (*models.PrizeBatch, error) {
			if got != id {
				t.Errorf("calculate called with id %s, want %s", got.Hex(), id.Hex())
			}
			return batch, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tournaments/"+id.Hex()+"/prizes/calculate", nil)
	newPrizeRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["batchId"] != batch.BatchID {
		t.Errorf("batchId = %v, want %s", body["batchId"], batch.BatchID)
	}
	rows, ok := body["distributions"].([]interface{})
	if !ok || len(rows) != 1 {
		t.Errorf("distributions = %v, want one row", body["distributions"])
	}
}

func TestCalculatePrizesRejectsMalformedID(t *testing.T) {
	stub := &stubPrizeService{
		calculate: func(context.Context, primitive.ObjectID) (*models.PrizeBatch, error) {
			t.Error("service should not be called for a malformed id")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tournaments/not-an-id/prizes/calculate", nil)
	newPrizeRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRoundCompleteBuildsEvent(t *testing.T) {
	id := primitive.NewObjectID()
	var captured *models.RoundCompleteEvent
	stub := &stubPrizeService{
		handleRound: func(_ context.Context, event *models.RoundCompleteEvent) (bool, error) {
			captured = event
			return true, nil
		},
	}

	payload := []byte(`{"round": 5, "finalRound": true, "eventId": "evt-1"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tournaments/"+id.Hex()+"/rounds/complete", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	newPrizeRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 (body %s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["triggered"] != true {
		t.Errorf("triggered = %v, want true", body["triggered"])
	}

	if captured == nil {
		t.Fatal("round event never reached the service")
	}
	if captured.TournamentID != id {
		t.Errorf("event tournament = %s, want %s", captured.TournamentID.Hex(), id.Hex())
	}
	if captured.Round != 5 || !captured.FinalRound || captured.EventID != "evt-1" {
		t.Errorf("event = %+v, want round 5 final evt-1", captured)
	}
}

func TestRoundCompleteRequiresRound(t *testing.T) {
	stub := &stubPrizeService{
		handleRound: func(context.Context, *models.RoundCompleteEvent) (bool, error) {
			t.Error("service should not be called without a round number")
			return false, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tournaments/"+primitive.NewObjectID().Hex()+"/rounds/complete",
		bytes.NewReader([]byte(`{"finalRound": true}`)))
	req.Header.Set("Content-Type", "application/json")
	newPrizeRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAddManualPrizeCreated(t *testing.T) {
	id := primitive.NewObjectID()
	stub := &stubPrizeService{
		addManual: func(_ context.Context, _ primitive.ObjectID, prize *models.PrizeDistribution) (*models.PrizeDistribution, error) {
			saved := *prize
			saved.ID = "68f000000000000000000001"
			saved.Source = models.PrizeSourceManual
			return &saved, nil
		},
	}

	payload := []byte(`{"playerId": "p9", "playerName": "Dana Diaz", "section": "Open", "prizeName": "Best Upset", "prizeType": "trophy"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tournaments/"+id.Hex()+"/prizes/manual", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	newPrizeRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["source"] != "manual" {
		t.Errorf("source = %v, want manual", body["source"])
	}
}
