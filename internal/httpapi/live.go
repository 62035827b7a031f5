package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/qrforge/qrlive"
	"github.com/qrforge/qrlive/live"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type liveInput struct {
	Text string `json:"text"`
}

type liveSnapshot struct {
	State   string `json:"state"`
	Seq     uint64 `json:"seq"`
	Text    string `json:"text"`
	Version int    `json:"version,omitempty"`
	Size    int    `json:"size,omitempty"`
	SVG     string `json:"svg,omitempty"`
	Error   string `json:"error,omitempty"`
}

func toLiveSnapshot(s live.Snapshot) liveSnapshot {
	out := liveSnapshot{
		State: s.State.String(),
		Seq:   s.Seq,
		Text:  s.Text,
	}
	if s.Symbol != nil {
		out.Version = s.Symbol.Version
		out.Size = s.Symbol.Size()
		out.SVG = s.Symbol.SVG(qrlive.QuietZone)
	}
	if s.Err != nil {
		out.Error = s.Err.Error()
	}
	return out
}

// handleLive upgrades to a websocket and runs one controller for the
// lifetime of the connection.  The client sends {"text": ...} on each
// change; the server pushes a snapshot on every state transition.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	log := s.log.With().Str("conn_id", uuid.NewString()).Logger()
	log.Info().Str("remote", conn.RemoteAddr().String()).
		Msg("live connection open")
	ctl := live.New(live.Config{
		Level:    s.level,
		Debounce: s.debounce,
		Logger:   log,
	})

	go s.liveWriter(conn, ctl)
	s.liveReader(conn, ctl)
}

// liveReader feeds client input into the controller until the
// connection drops, then shuts the controller down.
func (s *Server) liveReader(conn *websocket.Conn, ctl *live.Controller) {
	defer func() {
		ctl.Close()
		conn.Close()
	}()
	conn.SetReadLimit(maxMsgSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var in liveInput
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug().Err(err).Msg("live connection closed")
			}
			return
		}
		ctl.Input(in.Text)
	}
}

// liveWriter pushes snapshots and keepalive pings to the client.
func (s *Server) liveWriter(conn *websocket.Conn, ctl *live.Controller) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()
	for {
		select {
		case snap, ok := <-ctl.Updates():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteJSON(toLiveSnapshot(snap)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
