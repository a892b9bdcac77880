package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/koko-king/database"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/services"
	"github.com/yeremiapane/koko-king/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetOutput(io.Discard)
}

const testPasskey = "driver2025"

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// flakyStore is a memory store whose writes can be switched off.
type flakyStore struct {
	*database.MemoryStore
	failSet atomic.Bool
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet.Load() {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

type env struct {
	blobs    *flakyStore
	store    *services.OrderStore
	registry *services.Registry
	orders   *services.OrderService
	auth     *services.Authenticator
}

func newEnv(t *testing.T) *env {
	t.Helper()
	blobs := &flakyStore{MemoryStore: database.NewMemoryStore()}
	registry := services.NewRegistry(blobs, testPasskey)
	require.NoError(t, registry.Seed(context.Background()))
	store := services.NewOrderStore(blobs)
	auth, err := services.NewAuthenticator(map[models.Role]services.StaffCredential{
		models.RoleKitchen: {Identifier: "kitchen@kokoking.com", Password: "demo123"},
		models.RoleManager: {Identifier: "manager@kokoking.com", Password: "admin123"},
		models.RoleAdmin:   {Identifier: "admin", Password: "admin123"},
	})
	require.NoError(t, err)
	return &env{
		blobs:    blobs,
		store:    store,
		registry: registry,
		orders:   services.NewOrderService(store, registry, models.Cedis(5)),
		auth:     auth,
	}
}

func tokenFor(t *testing.T, subject string, role models.Role) string {
	t.Helper()
	token, err := utils.GenerateToken(subject, role)
	require.NoError(t, err)
	return token
}

func do(t *testing.T, r http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

func checkoutBody(method models.DeliveryMethod) map[string]interface{} {
	customer := map[string]interface{}{"name": "Ama", "phone": "0241234567"}
	if method == models.DeliveryDelivery {
		customer["address"] = "12 Oxford Street, Osu"
	}
	return map[string]interface{}{
		"customer":       customer,
		"deliveryMethod": method,
		"paymentMethod":  "cash",
		"branchId":       "branch-osu",
		"items": []map[string]interface{}{
			{"menuItemId": "wq3", "quantity": 2, "extras": []interface{}{}},
		},
	}
}
