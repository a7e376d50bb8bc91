package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndtrung/khoban/internal/domain"
)

type memConfig struct{ values map[string]string }

func (m *memConfig) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memConfig) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func testOrder() *domain.EcommerceOrder {
	return &domain.EcommerceOrder{
		Code:         "2508ABC",
		CustomerName: "tiktok_shop_01",
		Status:       domain.OrderStatusCompleted,
		Shipment:     domain.Shipment{Carrier: "SPX Express", TrackingID: "SPXVN051"},
	}
}

func TestOrderHandedOver_SendsMessage(t *testing.T) {
	var gotPath string
	var gotBody sendMessageReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := &memConfig{values: map[string]string{
		keyChatID:       "-100123",
		keyAPIToken:     "bot-token",
		keyOrderCounter: "41",
	}}
	g := NewGateway(cfg)
	g.apiBase = srv.URL

	require.NoError(t, g.OrderHandedOver(context.Background(), testOrder()))

	assert.Equal(t, "/botbot-token/sendMessage", gotPath)
	assert.Equal(t, "-100123", gotBody.ChatID)
	assert.Contains(t, gotBody.Text, "✅ ĐƠN HÀNG 2508ABC")
	assert.Contains(t, gotBody.Text, "Số thứ tự: 42")
	assert.Contains(t, gotBody.Text, "Mã vận đơn: SPXVN051")
	assert.Contains(t, gotBody.Text, "Web App - TIKTOK")
	assert.Equal(t, "42", cfg.values[keyOrderCounter])
}

func TestOrderHandedOver_UnconfiguredIsNoOp(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	g := NewGateway(&memConfig{values: map[string]string{}})
	g.apiBase = srv.URL

	require.NoError(t, g.OrderHandedOver(context.Background(), testOrder()))
	assert.False(t, called)
}

func TestOrderHandedOver_APIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := &memConfig{values: map[string]string{keyChatID: "-1", keyAPIToken: "tok"}}
	g := NewGateway(cfg)
	g.apiBase = srv.URL

	err := g.OrderHandedOver(context.Background(), testOrder())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "403"))
}

func TestSource_Detection(t *testing.T) {
	o := testOrder()
	assert.Equal(t, "TIKTOK", o.Source())
	o.CustomerName = "nguyenvana"
	assert.Equal(t, "SHOPEE", o.Source())
}
