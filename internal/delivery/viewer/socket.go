package viewer

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/httpresponse"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SocketCommand is one client message on the viewer socket.
type SocketCommand struct {
	Action string `json:"action"`
	Cursor int    `json:"cursor,omitempty"`
	X      *int   `json:"x,omitempty"`
	Y      *int   `json:"y,omitempty"`
	SGF    string `json:"sgf,omitempty"`
}

// SocketReply carries the snapshot after a command, or why it was refused.
type SocketReply struct {
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// HandleSocket drives one viewer over a websocket. Each command is answered
// with the resulting snapshot; a refused command also carries the error.
func (h *ViewerHandler) HandleSocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := h.viewerUC.Snapshot(id)
	if err != nil {
		httpresponse.WriteError(w, statusOf(err), err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.log.Infof("viewer %s socket connected", id)
	if err := conn.WriteJSON(SocketReply{Snapshot: &snap}); err != nil {
		return
	}

	for {
		var cmd SocketCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Errorf("viewer %s read error: %v", id, err)
			}
			return
		}

		snap, err := h.apply(id, cmd)
		if stderrors.Is(err, errors.ErrViewerNotFound) {
			_ = conn.WriteJSON(SocketReply{Error: err.Error()})
			return
		}
		reply := SocketReply{Snapshot: &snap}
		if err != nil {
			reply.Error = err.Error()
		}
		if err := conn.WriteJSON(reply); err != nil {
			h.log.Errorf("viewer %s write error: %v", id, err)
			return
		}
	}
}

func (h *ViewerHandler) apply(id string, cmd SocketCommand) (game.Snapshot, error) {
	switch cmd.Action {
	case "next":
		return h.viewerUC.Next(id)
	case "prev":
		return h.viewerUC.Prev(id)
	case "start":
		return h.viewerUC.ToStart(id)
	case "end":
		return h.viewerUC.ToEnd(id)
	case "seek":
		return h.viewerUC.Seek(id, cmd.Cursor)
	case "play":
		x, y, err := game.PlayRequest{X: cmd.X, Y: cmd.Y}.Coordinates()
		if err != nil {
			return h.refuse(id, err)
		}
		return h.viewerUC.Play(id, x, y)
	case "pass":
		return h.viewerUC.Pass(id)
	case "load":
		return h.viewerUC.LoadRecord(id, cmd.SGF)
	case "snapshot":
		return h.viewerUC.Snapshot(id)
	}
	return h.refuse(id, fmt.Errorf("unknown action %q", cmd.Action))
}

// refuse answers a rejected command with the unchanged snapshot.
func (h *ViewerHandler) refuse(id string, reason error) (game.Snapshot, error) {
	snap, err := h.viewerUC.Snapshot(id)
	if err != nil {
		return snap, err
	}
	return snap, reason
}
