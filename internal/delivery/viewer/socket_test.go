package viewer

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
)

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, cmd SocketCommand) SocketReply {
	t.Helper()
	require.NoError(t, conn.WriteJSON(cmd))
	var reply SocketReply
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func at(n int) *int {
	return &n
}

func TestSocket(t *testing.T) {
	srv := newServer(t, nil)
	id := create(t, srv, fourMoves)
	conn := dial(t, srv.URL+"/viewers/"+id+"/ws")

	var hello SocketReply
	require.NoError(t, conn.ReadJSON(&hello))
	require.NotNil(t, hello.Snapshot)
	require.Equal(t, 4, hello.Snapshot.Total)

	reply := roundTrip(t, conn, SocketCommand{Action: "end"})
	require.Empty(t, reply.Error)
	require.Equal(t, 4, reply.Snapshot.Cursor)

	reply = roundTrip(t, conn, SocketCommand{Action: "seek", Cursor: 1})
	require.Equal(t, 1, reply.Snapshot.Cursor)

	reply = roundTrip(t, conn, SocketCommand{Action: "play", X: at(3), Y: at(3)})
	require.Contains(t, reply.Error, "occupied")
	require.Equal(t, 4, reply.Snapshot.Total, "refused move leaves the record alone")

	reply = roundTrip(t, conn, SocketCommand{Action: "play", X: at(10)})
	require.Contains(t, reply.Error, "both x and y")
	require.Equal(t, 4, reply.Snapshot.Total, "move without coordinates is refused")
	require.Equal(t, 1, reply.Snapshot.Cursor)

	reply = roundTrip(t, conn, SocketCommand{Action: "play"})
	require.Contains(t, reply.Error, "both x and y")
	require.Equal(t, board.Empty, reply.Snapshot.Board.At(0, 0))

	reply = roundTrip(t, conn, SocketCommand{Action: "play", X: at(10), Y: at(10)})
	require.Empty(t, reply.Error)
	require.Equal(t, 2, reply.Snapshot.Total)
	require.Equal(t, board.White, reply.Snapshot.Board.At(10, 10))

	reply = roundTrip(t, conn, SocketCommand{Action: "load", SGF: ";B[aa]"})
	require.Equal(t, 1, reply.Snapshot.Total)
	require.Equal(t, 0, reply.Snapshot.Cursor)

	reply = roundTrip(t, conn, SocketCommand{Action: "jump"})
	require.Contains(t, reply.Error, "unknown action")

	// the HTTP view agrees with the socket
	snap := decode[game.Snapshot](t, do(t, http.MethodGet, srv.URL+"/viewers/"+id, nil))
	require.Equal(t, 1, snap.Total)
}

func TestSocketUnknownViewer(t *testing.T) {
	srv := newServer(t, nil)
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/viewers/missing/ws", nil)
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
