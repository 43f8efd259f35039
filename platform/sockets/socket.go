package socket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/DedS3t/monopoly-engine/platform/table"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Tables finds running tables for joining clients.
type Tables interface {
	Get(id string) (*table.Table, error)
}

// Hub pushes table events to the socket.io clients watching each table.
// Clients only watch; commands go through the HTTP API.
type Hub struct {
	server *socketio.Server
	http   *http.Server
}

type roomRequest struct {
	TableID string `json:"table_id"`
}

func decodeRoom(jsonStr string) (string, error) {
	var req roomRequest
	if err := json.Unmarshal([]byte(jsonStr), &req); err != nil {
		return "", err
	}
	if req.TableID == "" {
		return "", errors.New("table_id not passed")
	}
	return req.TableID, nil
}

// NewHub prepares a hub listening on addr for browsers from origin.
func NewHub(tables Tables, addr, origin string) (*Hub, error) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		return nil, err
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join-game", func(s socketio.Conn, jsonStr string) {
		id, err := decodeRoom(jsonStr)
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		t, err := tables.Get(id)
		if err != nil {
			s.Emit("error-message", "Invalid game")
			s.Emit("failed")
			return
		}
		view, err := json.Marshal(t.View())
		if err != nil {
			logrus.WithError(err).WithField("table", id).Error("encoding view failed")
			return
		}
		s.Join(id)
		server.BroadcastToRoom("/", id, "watcher-join", strconv.Itoa(server.RoomLen("/", id)))
		s.Emit("joined-game", string(view))
		logrus.WithFields(logrus.Fields{"conn": s.ID(), "table": id}).Debug("socket joined table")
	})

	server.OnEvent("/", "leave-game", func(s socketio.Conn, jsonStr string) {
		id, err := decodeRoom(jsonStr)
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		s.Leave(id)
		server.BroadcastToRoom("/", id, "watcher-left")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logrus.WithError(e).Warn("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		for _, room := range s.Rooms() {
			server.BroadcastToRoom("/", room, "watcher-left")
		}
		s.LeaveAll()
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowCredentials: true,
	})
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)

	return &Hub{
		server: server,
		http:   &http.Server{Addr: addr, Handler: c.Handler(mux)},
	}, nil
}

// Observer broadcasts every event of a table to its room. The event kind is
// the socket event name and the payload is the event as JSON.
func (h *Hub) Observer(tableID string) engine.Observer {
	return engine.ObserverFunc(func(e engine.Event) {
		data, err := json.Marshal(e)
		if err != nil {
			logrus.WithError(err).WithField("table", tableID).Error("encoding event failed")
			return
		}
		h.server.BroadcastToRoom("/", tableID, string(e.Kind), string(data))
	})
}

// Serve blocks serving socket.io until Close.
func (h *Hub) Serve() error {
	go func() {
		if err := h.server.Serve(); err != nil {
			logrus.WithError(err).Error("socket server stopped")
		}
	}()

	err := h.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (h *Hub) Close(ctx context.Context) error {
	if err := h.http.Shutdown(ctx); err != nil {
		return err
	}
	return h.server.Close()
}
