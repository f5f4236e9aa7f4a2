package inspect

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"firegrid/internal/fire"
)

// Server exposes the engine over websockets for inspection and live
// manipulation. The engine itself is single-threaded, so commands received
// from connections are queued and only touch the world when the owning loop
// calls Apply between ticks.
type Server struct {
	cfg fire.Config
	log *log.Logger

	upgrader websocket.Upgrader
	commands chan Command

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	out  chan []byte
	quit chan struct{}
}

// NewServer constructs a server for a world running with cfg.
func NewServer(cfg fire.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:      cfg,
		log:      logger,
		commands: make(chan Command, 256),
		clients:  map[*client]struct{}{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// BootstrapHandler describes the world so clients can size their views.
func (s *Server) BootstrapHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		resp := BootstrapResponse{
			ProtocolVersion: Version,
			W:               s.cfg.Width,
			H:               s.cfg.Height,
			TickRate:        s.cfg.TickRate,
			Seed:            s.cfg.Seed,
		}
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(resp)
	}
}

// WSHandler upgrades the connection and relays commands and frames.
func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// The out channel is never closed; queued commands may still hold a
		// reference to it after the connection is gone, so the writer exits
		// through quit instead.
		c := &client{out: make(chan []byte, 64), quit: make(chan struct{})}
		s.mu.Lock()
		s.clients[c] = struct{}{}
		s.mu.Unlock()
		defer func() {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
		}()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				select {
				case <-c.quit:
					return
				case b := <-c.out:
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						return
					}
				}
			}
		}()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var cmd Command
			if err := json.Unmarshal(msg, &cmd); err != nil {
				continue
			}
			cmd.reply = c.out
			select {
			case s.commands <- cmd:
			default:
				// Queue full; the client may resend.
			}
		}

		close(c.quit)
		<-done
	}
}

// Enqueue adds a command programmatically, bypassing the network. It reports
// whether the command fit in the queue.
func (s *Server) Enqueue(cmd Command) bool {
	select {
	case s.commands <- cmd:
		return true
	default:
		return false
	}
}

// Apply drains the queued commands into the engine. It must be called from
// the loop that owns the engine, between ticks.
func (s *Server) Apply(eng *fire.Engine) {
	for {
		select {
		case cmd := <-s.commands:
			s.apply(eng, cmd)
		default:
			return
		}
	}
}

func (s *Server) apply(eng *fire.Engine, cmd Command) {
	switch cmd.Type {
	case "ignite":
		mat := fire.MatNone
		if cmd.Material != "" {
			id, ok := materialByName(cmd.Material)
			if !ok {
				return
			}
			mat = id
		}
		eng.IgniteCircle(cmd.X, cmd.Y, cmd.Radius, mat, float32(cmd.Amount))
	case "liquid":
		id, ok := materialByName(cmd.Material)
		if !ok {
			return
		}
		eng.AddLiquidCircle(cmd.X, cmd.Y, cmd.Radius, id, float32(cmd.Amount))
	case "heat":
		eng.AddHeatCircle(cmd.X, cmd.Y, cmd.Radius, float32(cmd.Amount))
	case "burning":
		s.reply(cmd, BurningReply{
			Type:    "burning",
			X:       cmd.X,
			Y:       cmd.Y,
			Burning: eng.IsBurning(cmd.X, cmd.Y),
		})
	case "damage":
		rep := eng.DamageInBox(cmd.Box[0], cmd.Box[1], cmd.Box[2], cmd.Box[3])
		s.reply(cmd, DamageReply{
			Type:         "damage",
			BurningCells: rep.BurningCells,
			AvgTemp:      rep.AvgTemp,
			Damage:       rep.Damage,
		})
	case "stats":
		s.reply(cmd, StatsReply{Type: "stats", Stats: eng.Stats()})
	default:
		s.log.Printf("inspect: unknown command %q", cmd.Type)
	}
}

func (s *Server) reply(cmd Command, v any) {
	if cmd.reply == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case cmd.reply <- b:
	default:
		// Slow client; drop the reply.
	}
}

// BroadcastFrame sends the current world snapshot to every connected client.
// Slow clients drop frames rather than stalling the loop.
func (s *Server) BroadcastFrame(eng *fire.Engine) {
	stats := eng.Stats()
	size := eng.Size()
	frame := Frame{
		Type:         "frame",
		Tick:         stats.Tick,
		W:            size.W,
		H:            size.H,
		Cells:        eng.Cells(),
		BurningCells: stats.BurningCells,
		ActiveChunks: stats.ActiveChunks,
	}
	b, err := json.Marshal(frame)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.out <- b:
		default:
		}
	}
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
