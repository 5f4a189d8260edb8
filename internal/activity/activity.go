// Package activity is the append-only audit sink boundary. The engine
// fires events at it and never waits on or fails with it.
package activity

import (
	"log"
	"time"
)

// Event is one audit record.
type Event struct {
	Action string         `json:"action"`
	RoomID string         `json:"roomId,omitempty"`
	Detail map[string]any `json:"detail,omitempty"`
	At     time.Time      `json:"at"`
}

// Logger appends events to whatever sink the host application wires in.
type Logger interface {
	Record(Event)
}

// Fire dispatches an event without blocking the caller. A nil logger and
// a panicking sink are both swallowed; logger failures must never mask or
// block the operation being logged.
func Fire(l Logger, ev Event) {
	if l == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("activity: sink panic: %v", r)
			}
		}()
		l.Record(ev)
	}()
}

// LogSink writes events to the process log. The default sink.
type LogSink struct{}

func (LogSink) Record(ev Event) {
	log.Printf("activity: %s room=%s detail=%v", ev.Action, ev.RoomID, ev.Detail)
}
