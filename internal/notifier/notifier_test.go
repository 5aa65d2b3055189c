package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPhase/internal/locale"
	"MarketPhase/internal/model"
)

func newTestNotifier(t *testing.T, handler http.HandlerFunc) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	n.RetryInterval = time.Millisecond
	return n
}

func TestSend(t *testing.T) {
	var got map[string]string
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, n.Send(context.Background(), "hello"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSendWithRetry_RecoversFromServerError(t *testing.T) {
	var calls int32
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, n.SendWithRetry(context.Background(), "hello", 5))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSendWithRetry_ClientErrorIsPermanent(t *testing.T) {
	var calls int32
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	})

	err := n.SendWithRetry(context.Background(), "hello", 5)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSendWithRetry_GivesUp(t *testing.T) {
	var calls int32
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := n.SendWithRetry(context.Background(), "hello", 2)
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestStartPolling_DispatchesCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	replies := make(chan string, 1)
	var polled int32
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			if atomic.AddInt32(&polled, 1) == 1 {
				_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":" /snapshot "}}]}`))
				return
			}
			assert.Equal(t, "8", r.URL.Query().Get("offset"))
			<-r.Context().Done()
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			replies <- body["text"]
		}
	})

	go n.StartPolling(ctx, func(_ context.Context, cmd string) string {
		return "got " + cmd
	})

	select {
	case reply := <-replies:
		assert.Equal(t, "got /snapshot", reply)
	case <-time.After(5 * time.Second):
		t.Fatal("no reply sent")
	}
}

func sampleSnapshot() *model.IndicatorSnapshot {
	return &model.IndicatorSnapshot{
		Symbol:       "BTCUSDT",
		Interval:     "1d",
		CurrentPrice: 105,
		Timestamp:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		RSI:          model.RSIResult{Value: 55, Period: 14, Timeframe: "1d"},
		MACD:         model.MACDResult{MACD: 2, Signal: 1, Histogram: 1, FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9},
		Bollinger:    model.BollingerResult{Upper: 110, Middle: 100, Lower: 90, Period: 20, Multiplier: 2},
		EMA:          model.NewEMATrend(100, 90),
		Volatility:   model.VolatilityLow,
		Score: model.BullMarketScore{
			Score:   100,
			Phase:   model.PhaseStrongBull,
			Color:   model.ColorUp,
			Signals: []model.SignalTag{model.TagRSIHealthy, model.TagGoldenCross},
		},
	}
}

func TestFormatSnapshot(t *testing.T) {
	text := FormatSnapshot(sampleSnapshot(), locale.English)
	assert.Contains(t, text, "BTCUSDT 1d")
	assert.Contains(t, text, "Strong Bull</b> (100/100)")
	assert.Contains(t, text, "RSI(14): 55.0")
	assert.Contains(t, text, "hist +1.00")
	assert.Contains(t, text, "(Bullish)")
	assert.Contains(t, text, "Low/Consolidation")
	assert.Contains(t, text, "• Golden Cross")

	zh := FormatSnapshot(sampleSnapshot(), locale.Chinese)
	assert.Contains(t, zh, "强势牛市")
	assert.Contains(t, zh, "• 金叉")
}

func TestFormatPhaseChange(t *testing.T) {
	prev := sampleSnapshot()
	prev.Score.Phase = model.PhaseConsolidation
	prev.Score.Score = 45
	text := FormatPhaseChange(prev, sampleSnapshot(), locale.English)
	assert.Contains(t, text, "Neutral/Consolidation → 🟢 Strong Bull (45 → 100)")
}

func TestFormatSnapshot_EscapesHTML(t *testing.T) {
	snap := sampleSnapshot()
	snap.Symbol = "A<B&C"
	snap.Score.Signals = []model.SignalTag{model.TagPriceAboveEMAShort}

	text := FormatSnapshot(snap, locale.English)
	assert.Contains(t, text, "<b>A&lt;B&amp;C 1d</b>")
	assert.Contains(t, text, "• Price &gt; EMA50")
	assert.NotContains(t, text, "Price > EMA50")

	change := FormatPhaseChange(sampleSnapshot(), snap, locale.English)
	assert.Contains(t, change, "<b>A&lt;B&amp;C</b>")
}
