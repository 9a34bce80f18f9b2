package monitor

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
)

var upgrader = websocket.Upgrader{}

const (
	// Time allowed to write a message to the peer.
	writeWait = 1 * time.Second
	// Updates are dropped when arriving faster than this.
	pubResolution = 100 * time.Millisecond
	pingResolution = 500 * time.Millisecond
	// Time to wait before force close on connection.
	closeGracePeriod = 10 * time.Second
)

var (
	// MatchesTotal counts finished matches by winning seat.
	MatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_matches_total",
		Help: "Finished arena matches by winner.",
	}, []string{"winner"})

	// TicksTotal counts simulated ticks across all matches.
	TicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arena_ticks_total",
		Help: "Simulated ticks across all matches.",
	})

	// SearchIterations observes solver iterations per turn.
	SearchIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arena_search_iterations",
		Help:    "Solver iterations per turn.",
		Buckets: prometheus.ExponentialBuckets(8, 2, 12),
	})
)

// Server pushes snapshot updates to a single viewing client, in the manner
// of a development dashboard rather than a production endpoint.
type Server struct {
	addr      string
	cells     []HexCell
	snapshots <-chan Snapshot
	log       zerolog.Logger
}

func NewServer(addr string, layout *game.Layout, snapshots <-chan Snapshot, log zerolog.Logger) *Server {
	return &Server{
		addr:      addr,
		cells:     LayoutCells(layout),
		snapshots: snapshots,
		log:       log,
	}
}

func (server *Server) Serve(ctx context.Context) error {
	router := mux.NewRouter()
	router.HandleFunc("/", server.serveIndex).Methods(http.MethodGet)
	router.HandleFunc("/ws", server.serveWebsocket)
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: server.addr, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), closeGracePeriod)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (server *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	t, err := template.New("arena").Parse(indexTemplate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := t.Execute(w, server.cells); err != nil {
		server.log.Error().Err(err).Msg("render index")
	}
}

// serveWebsocket publishes snapshot updates to the client. One client at a
// time; the arena is a solo development tool.
func (server *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		server.log.Error().Err(err).Msg("websocket upgrade")
		return
	}
	defer server.closeWebsocket(ws)
	server.publish(r.Context(), ws)
}

func (server *Server) publish(ctx context.Context, ws *websocket.Conn) {
	pubCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pinger := channerics.NewTicker(pubCtx.Done(), pingResolution)
	lastPong := time.Now()
	pong := make(chan struct{})
	ws.SetPongHandler(func(string) error {
		select {
		case pong <- struct{}{}:
		case <-pubCtx.Done():
		}
		return nil
	})

	// A read loop must run for control handlers (ping/pong) to fire.
	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	last := time.Now()
	for {
		select {
		case <-pubCtx.Done():
			return
		case <-pinger:
			if time.Since(lastPong) > pingResolution*4 {
				server.log.Info().Msg("client unresponsive, closing")
				return
			}
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-pong:
			lastPong = time.Now()
		case snapshot, ok := <-server.snapshots:
			if !ok {
				return
			}
			// Drop updates when they arrive faster than the client needs.
			if time.Since(last) < pubResolution {
				break
			}
			last = time.Now()

			if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := ws.WriteJSON(Updates(snapshot)); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					server.log.Error().Err(err).Msg("publish failed")
				}
				return
			}
		}
	}
}

func (server *Server) closeWebsocket(ws *websocket.Conn) {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	ws.Close()
}
