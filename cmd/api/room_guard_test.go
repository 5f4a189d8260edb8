package main

import "testing"

func TestRoomGuard_SerializesPerRoom(t *testing.T) {
	g := newRoomGuard()
	token, ok := g.begin("room-1")
	if !ok || token == "" {
		t.Fatalf("first call must claim the room")
	}
	if _, ok := g.begin("room-1"); ok {
		t.Fatalf("second call for an in-flight room must be rejected")
	}
	if _, ok := g.begin("room-2"); !ok {
		t.Fatalf("other rooms are independent")
	}
	g.end("room-1", token)
	if _, ok := g.begin("room-1"); !ok {
		t.Fatalf("room must be free after end")
	}
}

func TestRoomGuard_AbandonRevokesInFlightCall(t *testing.T) {
	g := newRoomGuard()
	stale, _ := g.begin("room-1")
	if !g.stillCurrent("room-1", stale) {
		t.Fatalf("token must be current before abandon")
	}
	if !g.abandon("room-1") {
		t.Fatalf("abandon must report a revoked call")
	}
	if g.stillCurrent("room-1", stale) {
		t.Fatalf("abandoned token must no longer be current")
	}

	// The room is immediately free; the new owner is unaffected by the
	// abandoned call finishing up.
	fresh, ok := g.begin("room-1")
	if !ok {
		t.Fatalf("room must be claimable after abandon")
	}
	g.end("room-1", stale)
	if !g.stillCurrent("room-1", fresh) {
		t.Fatalf("stale end must not release the new owner")
	}
}

func TestRoomGuard_AbandonIdleRoomIsNoop(t *testing.T) {
	g := newRoomGuard()
	if g.abandon("room-1") {
		t.Fatalf("nothing in flight, nothing to abandon")
	}
}
