// Package feed exposes a read-only spectator view of the session over
// Socket.IO. Clients receive a state snapshot on connect and after every
// handled game event; play itself happens in the chat channel.
package feed

import (
	"sync"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"wordsmith/internal/game"
)

const room = "spectators"

type Server struct {
	io *socketio.Server

	mu   sync.Mutex
	last game.Snapshot
}

func New(initial game.Snapshot) *Server {
	srv := &Server{io: socketio.NewServer(nil), last: initial}

	srv.io.OnConnect("/", func(s socketio.Conn) error {
		s.Join(room)
		srv.mu.Lock()
		snap := srv.last
		srv.mu.Unlock()
		s.Emit("state", snap)
		log.Info().Str("sid", s.ID()).Msg("spectator connected")
		return nil
	})

	srv.io.OnEvent("/", "state:get", func(s socketio.Conn) game.Snapshot {
		srv.mu.Lock()
		defer srv.mu.Unlock()
		return srv.last
	})

	srv.io.OnError("/", func(s socketio.Conn, err error) {
		log.Warn().Err(err).Msg("spectator socket error")
	})

	return srv
}

// Broadcast fans a fresh snapshot out to every spectator. Safe to use as
// the session observer.
func (srv *Server) Broadcast(snap game.Snapshot) {
	srv.mu.Lock()
	srv.last = snap
	srv.mu.Unlock()
	srv.io.BroadcastToRoom("/", room, "state", snap)
}

// Snapshot returns the most recently broadcast state.
func (srv *Server) Snapshot() game.Snapshot {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.last
}

// Mount attaches the Socket.IO endpoints to the given Gin engine and
// starts serving connections.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	go func() {
		if err := srv.io.Serve(); err != nil {
			log.Error().Err(err).Msg("socket.io serve")
		}
	}()
	r.GET("/socket.io/*any", gin.WrapH(srv.io))
	r.POST("/socket.io/*any", gin.WrapH(srv.io))
	return srv.io
}
