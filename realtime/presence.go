// Package realtime implements the direct-message channel: a process-scoped
// presence registry plus a websocket relay that persists messages and
// forwards them to connected recipients.
package realtime

import (
	"sync"

	"github.com/chirpnet/chirp/model"
	"github.com/google/uuid"
)

// Client is one live websocket session. Messages are pushed through Send
// and pumped to the socket by the relay's writer goroutine.
type Client struct {
	Id   string
	Send chan *model.Conversation
}

// Registry maps user ids to their live connection. It is best-effort,
// process-scoped state with no persistence: entries are rebuilt purely from
// reconnect events after a restart. Overlapping connect/disconnect for the
// same user id from different devices is last-write-wins.
type Registry struct {
	// Adding/Removing a connection must grab WriteLock, while message push
	// should grab a ReadLock.
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*Client),
	}
}

// Connect registers a fresh client for the user, displacing any previous
// connection. The displaced client's channel is closed so its writer
// terminates.
func (r *Registry) Connect(userID string) *Client {
	client := &Client{
		Id:   "conn_" + uuid.New().String(),
		Send: make(chan *model.Conversation, 16),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if previous, ok := r.clients[userID]; ok {
		close(previous.Send)
	}
	r.clients[userID] = client
	return client
}

// Disconnect removes the client's entry. If a newer connection has already
// displaced this client the entry is left alone.
func (r *Registry) Disconnect(userID string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.clients[userID]
	if !ok || current.Id != client.Id {
		return
	}
	close(current.Send)
	delete(r.clients, userID)
}

// Push delivers a message to the user's live connection, if any. Delivery
// is best-effort: an offline user or a full buffer drops the message (it is
// already persisted).
func (r *Registry) Push(userID string, message *model.Conversation) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[userID]
	if !ok {
		return false
	}
	select {
	case client.Send <- message:
		return true
	default:
		return false
	}
}

// ActiveConnectionCount reports how many users currently hold a live
// connection.
func (r *Registry) ActiveConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
