package realtime

import (
	"net/http"

	"github.com/chirpnet/chirp/auth"
	"github.com/chirpnet/chirp/store"
	Logger "github.com/chirpnet/chirp/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// PrivateMessage is the inbound wire event for a direct message.
type PrivateMessage struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

// Relay upgrades authenticated clients to websocket, persists every inbound
// message and forwards it to the recipient when they are online.
type Relay struct {
	registry *Registry
	store    *store.Store
	auth     *auth.Service
	upgrader websocket.Upgrader
}

func NewRelay(registry *Registry, s *store.Store, authService *auth.Service) *Relay {
	return &Relay{
		registry: registry,
		store:    s,
		auth:     authService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the gin handler for the websocket endpoint. Clients pass
// their access token as a query param since websocket handshakes cannot
// carry custom headers from browsers.
func (r *Relay) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := r.auth.Authenticate(c.Query("token"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "access token is invalid"})
			return
		}

		conn, err := r.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			Logger.Log.Errorf("fail to upgrade websocket connection for user %s: %v", userID, err)
			return
		}

		client := r.registry.Connect(userID)
		go r.writePump(conn, client)
		r.readLoop(conn, userID, client)
	}
}

// readLoop consumes inbound messages until the connection drops, then tears
// down the presence entry.
func (r *Relay) readLoop(conn *websocket.Conn, userID string, client *Client) {
	defer func() {
		r.registry.Disconnect(userID, client)
		conn.Close()
	}()

	for {
		var message PrivateMessage
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				Logger.Log.Warnf("websocket read error for user %s: %v", userID, err)
			}
			return
		}
		if message.To == "" || message.Content == "" {
			continue
		}

		// Sender identity comes from the authenticated session, never from
		// the payload.
		conversation, err := r.store.CreateConversation(userID, message.To, message.Content)
		if err != nil {
			Logger.Log.Errorf("fail to persist message from user %s: %v", userID, err)
			continue
		}
		r.registry.Push(message.To, conversation)
	}
}

// writePump drains the client's channel onto the socket. It exits when the
// registry closes the channel on disconnect or displacement.
func (r *Relay) writePump(conn *websocket.Conn, client *Client) {
	for message := range client.Send {
		if err := conn.WriteJSON(message); err != nil {
			Logger.Log.Warnf("websocket write error on connection %s: %v", client.Id, err)
			return
		}
	}
	// Channel closed: a newer connection displaced this one, signal the
	// peer before the socket is dropped.
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replaced by newer connection"))
}
