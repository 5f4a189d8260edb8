package main

import (
	"sync"

	"github.com/google/uuid"
)

// roomGuard serializes generate/refine calls per room and detects stale
// results. Each accepted call gets a token; abandoning a room revokes the
// token, so a slow result from the abandoned call is discarded instead of
// being returned as if it were current.
type roomGuard struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newRoomGuard() *roomGuard {
	return &roomGuard{tokens: make(map[string]string)}
}

// begin claims the room. Returns false when a call is already in flight.
// The empty room id is a valid key; anonymous calls still serialize.
func (g *roomGuard) begin(roomID string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.tokens[roomID] != "" {
		return "", false
	}
	token := uuid.NewString()
	g.tokens[roomID] = token
	return token, true
}

// stillCurrent reports whether token is still the room's active call.
func (g *roomGuard) stillCurrent(roomID, token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tokens[roomID] == token
}

// end releases the room if token still owns it. An abandoned call's end
// is a no-op; it must not release a room a newer call has since claimed.
func (g *roomGuard) end(roomID, token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.tokens[roomID] == token {
		delete(g.tokens, roomID)
	}
}

// abandon revokes the room's in-flight call, if any. The revoked call
// keeps running but its result fails the stillCurrent check, and the room
// is immediately free for a new call.
func (g *roomGuard) abandon(roomID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.tokens[roomID] == "" {
		return false
	}
	delete(g.tokens, roomID)
	return true
}
