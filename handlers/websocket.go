package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

type EventType string

const (
	EventImageSaved   EventType = "image_saved"
	EventImageIndexed EventType = "image_indexed"
	EventAlbumCreated EventType = "album_created"
	EventAlbumUpdated EventType = "album_updated"
)

// Event tells connected clients that a list they show is stale
type Event struct {
	Type EventType `json:"type"`
	ID   uint64    `json:"id"`
}

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool

type ConnectedClient struct {
	fun SendSocketFunc
}

var (
	ConnectedClients = cmap.New[*ConnectedClient]()
	upgrader         = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
)

// Broadcast sends the event to every connected client, dropping the ones that fail
func Broadcast(e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Printf("Broadcast marshal error: %v", err)
		return
	}
	for item := range ConnectedClients.IterBuffered() {
		if !item.Val.fun(data) {
			ConnectedClients.Remove(item.Key)
		}
	}
}

func WebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	// Writes come from both Broadcast and the read loop below
	var mu sync.Mutex
	isConnected := true
	write := func(mt int, data []byte) bool {
		mu.Lock()
		defer mu.Unlock()
		if !isConnected {
			return false
		}
		if err := conn.WriteMessage(mt, data); err != nil {
			log.Println("write err:", err)
			isConnected = false
			return false
		}
		return true
	}
	id := uuid.NewString()
	ConnectedClients.Set(id, &ConnectedClient{fun: func(data []byte) bool {
		return write(websocket.TextMessage, data)
	}})
	defer ConnectedClients.Remove(id)

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			mu.Lock()
			isConnected = false
			mu.Unlock()
			break
		}
		if string(message) == "ping" {
			write(mt, []byte("pong"))
		}
	}
}
