package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"avboq/internal/boq"
	"avboq/internal/directive"
)

const (
	assistantWSWriteWait = 10 * time.Second
	assistantWSPongWait  = 60 * time.Second
	assistantWSPingEvery = (assistantWSPongWait * 9) / 10
)

var assistantWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type assistantInbound struct {
	Type string  `json:"type"`
	Text string  `json:"text,omitempty"`
	Boq  boq.Boq `json:"boq,omitempty"`
}

type assistantOutbound struct {
	Type    string `json:"type"`
	Reply   string `json:"reply,omitempty"`
	Message string `json:"message,omitempty"`
}

type chatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// handleAssistantWS runs one assistant conversation per connection. The
// connection holds the history; the oracle sees it on every turn.
func (s *apiServer) handleAssistantWS(w http.ResponseWriter, r *http.Request) {
	conn, err := assistantWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("assistant: upgrade: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(assistantWSPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(assistantWSPongWait))
	})

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(assistantWSPingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(assistantWSWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-stop:
				return
			}
		}
	}()

	prompt, err := directive.Render(directive.Assistant())
	if err != nil {
		log.Printf("assistant: render: %v", err)
		return
	}

	var history []chatTurn
	var currentBoq boq.Boq
	for {
		var in assistantInbound
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		switch in.Type {
		case "boq":
			currentBoq = in.Boq
			continue
		case "message":
		default:
			writeAssistant(conn, assistantOutbound{Type: "error", Message: "unknown message type"})
			continue
		}
		history = append(history, chatTurn{Role: "user", Text: in.Text})
		raw, err := s.oracle.Complete(r.Context(), prompt, map[string]any{
			"history": history,
			"boq":     currentBoq,
		})
		if err != nil {
			writeAssistant(conn, assistantOutbound{Type: "error", Message: "assistant unavailable"})
			continue
		}
		var out struct {
			Reply string `json:"reply"`
		}
		if err := json.Unmarshal(raw, &out); err != nil || out.Reply == "" {
			writeAssistant(conn, assistantOutbound{Type: "error", Message: "assistant returned an unusable answer"})
			continue
		}
		history = append(history, chatTurn{Role: "assistant", Text: out.Reply})
		writeAssistant(conn, assistantOutbound{Type: "reply", Reply: out.Reply})
	}
}

func writeAssistant(conn *websocket.Conn, out assistantOutbound) {
	conn.SetWriteDeadline(time.Now().Add(assistantWSWriteWait))
	if err := conn.WriteJSON(out); err != nil {
		log.Printf("assistant: write: %v", err)
	}
}
