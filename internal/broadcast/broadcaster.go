package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/AngreeCloud/SurveyApp/internal/domain"
	"github.com/AngreeCloud/SurveyApp/internal/metrics"
)

const (
	commandTimeout  = 5 * time.Second
	snapshotTimeout = 2 * time.Second
	writeTimeout    = 5 * time.Second
)

type broadcasterCmd interface{ isBroadcasterCmd() }

type baseBroadcasterCmd struct{}

func (baseBroadcasterCmd) isBroadcasterCmd() {}

type registerCmd struct {
	baseBroadcasterCmd
	connection   *websocket.Conn
	errorChannel chan error
}

type unregisterCmd struct {
	baseBroadcasterCmd
	connection *websocket.Conn
}

type notifyCmd struct {
	baseBroadcasterCmd
}

type getClientCountCmd struct {
	baseBroadcasterCmd
	replyChannel chan int
}

type stopCmd struct {
	baseBroadcasterCmd
}

// Broadcaster manages dashboard WebSocket connections and pushes a fresh
// snapshot to all of them after each accepted submission.
type Broadcaster struct {
	cmdCh      chan broadcasterCmd
	clients    map[*websocket.Conn]struct{}
	stats      domain.StatsProvider
	clock      clockwork.Clock
	maxClients int
	done       chan struct{}
}

// NewBroadcaster creates a broadcaster reading snapshots from stats.
// maxClients limits concurrent dashboard connections.
func NewBroadcaster(stats domain.StatsProvider, clock clockwork.Clock, maxClients int) *Broadcaster {
	b := &Broadcaster{
		cmdCh:      make(chan broadcasterCmd, 64),
		clients:    make(map[*websocket.Conn]struct{}),
		stats:      stats,
		clock:      clock,
		maxClients: maxClients,
		done:       make(chan struct{}),
	}
	go b.run()
	return b
}

// Register adds a dashboard client. Fails when the client cap is reached or
// the broadcaster is shutting down.
func (b *Broadcaster) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)

	select {
	case b.cmdCh <- registerCmd{connection: conn, errorChannel: errCh}:
	case <-b.done:
		return fmt.Errorf("broadcaster is stopped")
	}

	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-timer.Chan():
		return fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a dashboard client.
func (b *Broadcaster) Unregister(conn *websocket.Conn) {
	select {
	case b.cmdCh <- unregisterCmd{connection: conn}:
	case <-b.done:
	}
}

// Notify schedules a broadcast. Non-blocking: when the command buffer is full
// a broadcast is already pending, so the notification can be dropped.
func (b *Broadcaster) Notify() {
	select {
	case b.cmdCh <- notifyCmd{}:
	default:
	}
}

// ClientCount returns the number of connected clients, or -1 on timeout.
func (b *Broadcaster) ClientCount() int {
	replyCh := make(chan int, 1)

	select {
	case b.cmdCh <- getClientCountCmd{replyChannel: replyCh}:
	case <-b.done:
		return 0
	}

	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-timer.Chan():
		return -1
	}
}

// Stop closes all client connections and terminates the run loop.
func (b *Broadcaster) Stop() {
	select {
	case b.cmdCh <- stopCmd{}:
	case <-b.done:
	}
	<-b.done
}

func (b *Broadcaster) run() {
	for cmd := range b.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			c.errorChannel <- b.handleRegister(c.connection)
		case unregisterCmd:
			b.removeClient(c.connection)
		case notifyCmd:
			b.broadcast()
		case getClientCountCmd:
			c.replyChannel <- len(b.clients)
		case stopCmd:
			for conn := range b.clients {
				b.removeClient(conn)
			}
			close(b.done)
			return
		}
	}
}

func (b *Broadcaster) handleRegister(conn *websocket.Conn) error {
	if len(b.clients) >= b.maxClients {
		return fmt.Errorf("maximum of %d dashboard clients reached", b.maxClients)
	}
	b.clients[conn] = struct{}{}
	metrics.WSConnectedClients.Set(float64(len(b.clients)))
	return nil
}

func (b *Broadcaster) removeClient(conn *websocket.Conn) {
	if _, ok := b.clients[conn]; !ok {
		return
	}
	delete(b.clients, conn)
	_ = conn.Close()
	metrics.WSConnectedClients.Set(float64(len(b.clients)))
}

// broadcast fetches an unfiltered snapshot and writes it to every client.
// Clients that fail the write are dropped.
func (b *Broadcaster) broadcast() {
	if len(b.clients) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	snapshot, err := b.stats.Snapshot(ctx, nil)
	if err != nil {
		slog.Error("Failed to fetch snapshot for broadcast", "error", err)
		return
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		slog.Error("Failed to marshal snapshot", "error", err)
		return
	}

	for conn := range b.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			slog.Info("Dropping dashboard client after write failure", "error", err)
			b.removeClient(conn)
		}
	}

	metrics.WSBroadcastsTotal.Inc()
}
