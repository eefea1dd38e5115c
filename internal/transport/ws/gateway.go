// Package ws is the websocket chat gateway. It adapts the messenger
// contract onto gorilla websockets: one connection per player, plain
// text frames in both directions.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/messenger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Gateway tracks player connections and routes inbound messages to
// whichever suspended wait is awaiting that player.
type Gateway struct {
	mu      sync.Mutex
	conns   map[string]*playerConn
	waiters map[string]chan string
}

type playerConn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

// NewGateway creates an empty gateway
func NewGateway() *Gateway {
	return &Gateway{
		conns:   make(map[string]*playerConn),
		waiters: make(map[string]chan string),
	}
}

// Routes registers the websocket endpoint on a router
func (g *Gateway) Routes(router *mux.Router) {
	router.HandleFunc("/ws/{player_id}", g.handleConnect)
}

func (g *Gateway) handleConnect(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["player_id"]
	if playerID == "" {
		http.Error(w, "player_id is required", http.StatusBadRequest)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "player_id", playerID, "error", err)
		return
	}

	pc := &playerConn{ws: ws}
	g.mu.Lock()
	if old, ok := g.conns[playerID]; ok {
		// newest connection wins
		_ = old.ws.Close()
	}
	g.conns[playerID] = pc
	g.mu.Unlock()

	slog.Info("player connected", "player_id", playerID)
	g.readLoop(playerID, pc)
}

// readLoop dispatches each inbound text frame to the player's waiter,
// dropping frames nobody is awaiting.
func (g *Gateway) readLoop(playerID string, pc *playerConn) {
	defer func() {
		g.mu.Lock()
		if g.conns[playerID] == pc {
			delete(g.conns, playerID)
		}
		g.mu.Unlock()
		_ = pc.ws.Close()
		slog.Info("player disconnected", "player_id", playerID)
	}()

	for {
		kind, payload, err := pc.ws.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		g.mu.Lock()
		waiter, ok := g.waiters[playerID]
		g.mu.Unlock()
		if !ok {
			continue
		}
		select {
		case waiter <- string(payload):
		default:
		}
	}
}

// Send delivers text to a connected player
func (g *Gateway) Send(_ context.Context, playerID, text string) error {
	g.mu.Lock()
	pc, ok := g.conns[playerID]
	g.mu.Unlock()
	if !ok {
		return errors.NotFoundf("player %s is not connected", playerID)
	}

	pc.writeMu.Lock()
	defer pc.writeMu.Unlock()
	if err := pc.ws.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return errors.Wrapf(err, "failed to write to player %s", playerID)
	}
	return nil
}

// Await blocks for the player's next message, up to timeout. One
// waiter per player at a time; a second concurrent Await errors.
func (g *Gateway) Await(ctx context.Context, playerID string, timeout time.Duration) (messenger.Response, error) {
	ch := make(chan string, 1)

	g.mu.Lock()
	if _, exists := g.waiters[playerID]; exists {
		g.mu.Unlock()
		return messenger.Response{}, errors.FailedPreconditionf("already awaiting player %s", playerID)
	}
	g.waiters[playerID] = ch
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.waiters, playerID)
		g.mu.Unlock()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case text := <-ch:
		if messenger.IsCancelWord(text) {
			return messenger.Response{Kind: messenger.ResponseCancel, Text: text}, nil
		}
		return messenger.Response{Kind: messenger.ResponseAnswer, Text: text}, nil
	case <-timer.C:
		return messenger.Response{Kind: messenger.ResponseTimeout}, nil
	case <-ctx.Done():
		return messenger.Response{}, errors.Wrap(ctx.Err(), "await interrupted")
	}
}
