package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/akoval/minesweep/internal/sweep"
)

// ConnectWS plays a session over a websocket. Each text message holds one
// command per line; the full session snapshot is sent back after every
// message. Command errors are reported in-band so a misclick does not
// tear down the connection.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.WithError(err).Warn("websocket read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		var (
			dto     *SessionDTO
			cmdErrs []string
		)
		doErr := s.Do(func(e *sweep.Engine) error {
			for _, line := range strings.Split(string(message), "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				wasOver := e.State().Terminal()
				if err := executeCommand(e, line); err != nil {
					cmdErrs = append(cmdErrs, err.Error())
					continue
				}
				if !wasOver && e.State().Terminal() {
					g.recordFinished(r.Context(), s, e)
				}
			}
			dto = NewSessionDTO(s.ID, e)
			return nil
		})
		if doErr != nil {
			g.log.WithError(doErr).Error("websocket command batch failed")
			return
		}

		payload := struct {
			*SessionDTO
			Errors []string `json:"errors,omitempty"`
		}{dto, cmdErrs}

		if err := conn.WriteJSON(payload); err != nil {
			g.log.WithError(err).Warn("websocket write failed")
			return
		}
	}
}
