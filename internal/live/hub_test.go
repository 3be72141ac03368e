package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"boxcricket/internal/domain"
)

func dialTestHub(t *testing.T, h *Hub, inningsID string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeWS(w, r, inningsID)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func waitForSubscribers(t *testing.T, h *Hub, inningsID string, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.SubscriberCount(inningsID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Subscriber count never reached %d", want)
}

func TestHub_BroadcastReachesSubscriber(t *testing.T) {
	h := NewHub(nil)
	conn := dialTestHub(t, h, "inn1")
	waitForSubscribers(t, h, "inn1", 1)

	h.Broadcast(Update{
		Type:      MsgTypeBallRecorded,
		InningsID: "inn1",
		Score:     domain.InningsScoreState{TotalRuns: 4, BallsInOver: 1},
		Ball:      &domain.Ball{ID: "b1", InningsID: "inn1", BallNumber: 1, Runs: 4},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}

	var got Update
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Type != MsgTypeBallRecorded || got.Score.TotalRuns != 4 {
		t.Errorf("Update = %+v", got)
	}
	if got.Ball == nil || got.Ball.ID != "b1" {
		t.Errorf("Ball = %+v", got.Ball)
	}
}

func TestHub_BroadcastIsScopedToInnings(t *testing.T) {
	h := NewHub(nil)
	conn := dialTestHub(t, h, "inn1")
	waitForSubscribers(t, h, "inn1", 1)

	h.Broadcast(Update{Type: MsgTypeBallUndone, InningsID: "other"})

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("Received an update for another innings")
	}
}

func TestHub_DisconnectRemovesSubscriber(t *testing.T) {
	h := NewHub(nil)
	conn := dialTestHub(t, h, "inn1")
	waitForSubscribers(t, h, "inn1", 1)

	conn.Close()
	waitForSubscribers(t, h, "inn1", 0)
}
