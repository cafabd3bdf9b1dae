package relay

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/netip"
	"sync"
	"time"
	"udpreceiver/domain/datagram"
	"udpreceiver/domain/telemetry"
	"udpreceiver/infrastructure/settings"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var refreshMessage = []byte(`{"type":"refresh"}`)

type message struct {
	sender netip.AddrPort
	text   string
}

// Relay batches telemetry received over UDP, persists it and pushes every
// batch to WebSocket subscribers.
type Relay struct {
	settings settings.RelaySettings
	store    Store
	hub      *Hub
	logger   zerolog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	queue    []message
	activity chan struct{}

	addr  net.Addr
	ready chan struct{}
}

func NewRelay(settings settings.RelaySettings, store Store, logger zerolog.Logger) *Relay {
	r := &Relay{
		settings: settings,
		store:    store,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		activity: make(chan struct{}, 1),
		ready:    make(chan struct{}),
	}
	r.hub = NewHub(r.clear, logger)
	return r
}

// Listening is part of the datagram handler contract; the relay has nothing
// to announce.
func (r *Relay) Listening(netip.AddrPort) {}

func (r *Relay) Received(d datagram.Datagram, text string) {
	r.Submit(d.Sender, text)
}

// Submit queues text for the next flush and restarts the inactivity timer.
func (r *Relay) Submit(sender netip.AddrPort, text string) {
	r.mu.Lock()
	r.queue = append(r.queue, message{sender: sender, text: text})
	r.mu.Unlock()

	select {
	case r.activity <- struct{}{}:
	default:
	}
}

// Addr is the HTTP listen address, nil until Ready is closed.
func (r *Relay) Addr() net.Addr {
	select {
	case <-r.ready:
		return r.addr
	default:
		return nil
	}
}

func (r *Relay) Ready() <-chan struct{} {
	return r.ready
}

// Handler serves the data file and the WebSocket endpoint.
func (r *Relay) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /data.json", r.serveData)
	mux.HandleFunc("GET /ws", r.serveWebSocket)
	return cors(mux)
}

// Run serves HTTP and flushes the queue until ctx is done, then clears the
// data file and disconnects everyone.
func (r *Relay) Run(ctx context.Context) error {
	ln, listenErr := net.Listen("tcp", r.settings.HTTPAddress)
	if listenErr != nil {
		return errors.Wrapf(listenErr, "relay failed to listen on %s", r.settings.HTTPAddress)
	}
	r.addr = ln.Addr()
	close(r.ready)

	server := &http.Server{
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()

	r.logger.Info().Str("addr", r.addr.String()).Str("data_file", r.settings.DataFilePath).Msg("telemetry relay listening")

	flushTicker := time.NewTicker(r.settings.FlushInterval())
	defer flushTicker.Stop()

	inactivity := time.NewTimer(r.settings.InactivityTimeout())
	inactivity.Stop()
	defer inactivity.Stop()

	for {
		select {
		case <-ctx.Done():
			return r.shutdown(server)
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return errors.Wrap(err, "relay HTTP server failed")
		case <-flushTicker.C:
			r.flush()
		case <-r.activity:
			inactivity.Reset(r.settings.InactivityTimeout())
		case <-inactivity.C:
			r.logger.Info().Dur("after", r.settings.InactivityTimeout()).Msg("no telemetry received, clearing data file")
			r.clear()
		}
	}
}

func (r *Relay) shutdown(server *http.Server) error {
	r.clear()
	r.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "relay HTTP server did not shut down cleanly")
	}
	return nil
}

func (r *Relay) drain() []message {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch := r.queue
	r.queue = nil
	return batch
}

// flush validates queued messages, persists the valid ones and broadcasts
// them as one JSON array.
func (r *Relay) flush() {
	batch := r.drain()
	if len(batch) == 0 {
		return
	}

	records := make([]telemetry.Record, 0, len(batch))
	for _, m := range batch {
		record, parseErr := telemetry.Parse(m.text)
		if parseErr != nil {
			r.logger.Warn().Err(parseErr).Str("sender", m.sender.String()).Msg("invalid telemetry dropped")
			continue
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return
	}

	if err := r.store.Append(records); err != nil {
		r.logger.Error().Stack().Err(err).Msg("failed to persist telemetry")
		return
	}

	payload, marshalErr := json.Marshal(records)
	if marshalErr != nil {
		r.logger.Error().Err(marshalErr).Msg("failed to encode telemetry batch")
		return
	}
	r.hub.Broadcast(payload)
	r.logger.Debug().Int("records", len(records)).Int("clients", r.hub.Count()).Msg("telemetry batch relayed")
}

// clear empties the data file and tells subscribers to reload.
func (r *Relay) clear() {
	if err := r.store.Clear(); err != nil {
		r.logger.Error().Stack().Err(err).Msg("failed to clear data file")
		return
	}
	r.logger.Debug().Msg("data file cleared")
	r.hub.Broadcast(refreshMessage)
}

func (r *Relay) serveData(w http.ResponseWriter, _ *http.Request) {
	data, readErr := r.store.Read()
	if readErr != nil {
		r.logger.Error().Err(readErr).Msg("failed to read data file")
		http.Error(w, "data unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (r *Relay) serveWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, upgradeErr := r.upgrader.Upgrade(w, req, nil)
	if upgradeErr != nil {
		r.logger.Warn().Err(upgradeErr).Str("remote", req.RemoteAddr).Msg("websocket upgrade failed")
		return
	}
	r.hub.Serve(conn)
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if req.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "*")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, req)
	})
}
