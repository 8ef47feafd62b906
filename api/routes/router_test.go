package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/dcastano/warehouse-backend/pkg/auth"
	"github.com/dcastano/warehouse-backend/pkg/config"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	"github.com/google/uuid"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "wms-test",
			ExpirationMinutes: 30,
		},
	}
}

func testRouter() http.Handler {
	return NewRouter(testConfig(), nil, nil, nil, nil, Services{})
}

func bearerToken(t *testing.T, cfg *config.Config, warehouseID *uuid.UUID, role enums.MemberRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:            uuid.New(),
		ActiveWarehouseID: warehouseID,
		Role:              role,
		JTI:               uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func TestHealthLiveIsPublic(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAPIRoutesRequireAuth(t *testing.T) {
	t.Parallel()

	router := testRouter()
	paths := []string{
		"/api/v1/inventory",
		"/api/v1/putaway",
		"/api/v1/picking/queue",
		"/api/v1/waves",
		"/api/v1/problems",
		"/api/v1/movements",
	}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s without a token must 401, got %d", path, rec.Code)
		}
	}
}

func TestAPIRoutesRequireActiveWarehouse(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	router := NewRouter(cfg, nil, nil, nil, nil, Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movements", nil)
	req.Header.Set("Authorization", bearerToken(t, cfg, nil, enums.MemberRoleAdmin))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("warehouse-less token must 403, got %d", rec.Code)
	}
}

func TestAdjustRequiresSupervisor(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	router := NewRouter(cfg, nil, nil, nil, nil, Services{})
	warehouseID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/adjust", nil)
	req.Header.Set("Authorization", bearerToken(t, cfg, &warehouseID, enums.MemberRolePicker))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("picker must not adjust stock, got %d", rec.Code)
	}
}

func TestWaveCreateRequiresSupervisor(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	router := NewRouter(cfg, nil, nil, nil, nil, Services{})
	warehouseID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/waves", nil)
	req.Header.Set("Authorization", bearerToken(t, cfg, &warehouseID, enums.MemberRoleReceiver))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("receiver must not create waves, got %d", rec.Code)
	}
}
