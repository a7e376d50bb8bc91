package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndtrung/khoban/internal/domain"
)

// Config keys read from the app config store. Credentials live there rather
// than in the environment so they can be edited from the settings screen.
const (
	keyChatID       = "telegramChatId"
	keyAPIToken     = "telegramApiToken"
	keyOrderCounter = "telegramOrderCounter"
)

const defaultAPIBase = "https://api.telegram.org"

type Gateway struct {
	cfg        domain.ConfigRepo
	httpClient *http.Client

	apiBase string // overridable in tests
}

func NewGateway(cfg domain.ConfigRepo) *Gateway {
	return &Gateway{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiBase:    defaultAPIBase,
	}
}

type sendMessageReq struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// OrderHandedOver posts the carrier-handover message for a fulfilled slip.
// Missing credentials make this a logged no-op so shops that never set up
// Telegram keep working. Each delivered notification bumps a persisted
// counter shown in the message.
func (g *Gateway) OrderHandedOver(ctx context.Context, o *domain.EcommerceOrder) error {
	chatID, err := g.cfg.Get(ctx, keyChatID)
	if err != nil {
		return err
	}
	token, err := g.cfg.Get(ctx, keyAPIToken)
	if err != nil {
		return err
	}
	if chatID == "" || token == "" {
		log.Info().Str("code", o.Code).Msg("telegram not configured, skipping notification")
		return nil
	}

	counter := g.nextCounter(ctx)
	text := fmt.Sprintf("✅ ĐƠN HÀNG %s\nSố thứ tự: %d\nMã vận đơn: %s\nFile: Web App - %s\nThời gian: %s",
		o.Code, counter, o.TrackingID(), o.Source(),
		time.Now().Format("2006-01-02 15:04:05"))

	body, err := json.Marshal(sendMessageReq{ChatID: chatID, Text: text})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", g.apiBase, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram sendMessage: status %d", resp.StatusCode)
	}
	return nil
}

func (g *Gateway) nextCounter(ctx context.Context) int {
	raw, err := g.cfg.Get(ctx, keyOrderCounter)
	if err != nil {
		log.Warn().Err(err).Msg("order counter read failed")
	}
	n, _ := strconv.Atoi(raw)
	n++
	if err := g.cfg.Set(ctx, keyOrderCounter, strconv.Itoa(n)); err != nil {
		log.Warn().Err(err).Msg("order counter update failed")
	}
	return n
}
