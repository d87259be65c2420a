package ws

import (
	"net/http"
	"sync"

	"safra-backend/entity"
	"safra-backend/utils"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RecordFeed pushes freshly submitted records to connected admin
// dashboards so the validation queue updates without polling.
type RecordFeed struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan *entity.HarvestRecord
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func NewRecordFeed() *RecordFeed {
	return &RecordFeed{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan *entity.HarvestRecord, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// Run loops over register/unregister/broadcast until the process exits.
func (f *RecordFeed) Run() {
	for {
		select {
		case conn := <-f.register:
			f.mu.Lock()
			f.clients[conn] = true
			f.mu.Unlock()

		case conn := <-f.unregister:
			f.mu.Lock()
			if _, ok := f.clients[conn]; ok {
				delete(f.clients, conn)
				conn.Close()
			}
			f.mu.Unlock()

		case rec := <-f.broadcast:
			f.mu.Lock()
			for conn := range f.clients {
				if err := conn.WriteJSON(rec); err != nil {
					log.Errorf("ws write error: %v", err)
					conn.Close()
					delete(f.clients, conn)
				}
			}
			f.mu.Unlock()
		}
	}
}

// PublishRecord satisfies services.RecordPublisher. Non-blocking so a
// slow dashboard never stalls a submission.
func (f *RecordFeed) PublishRecord(rec *entity.HarvestRecord) {
	select {
	case f.broadcast <- rec:
	default:
		log.Warn("record feed backlogged, dropping update")
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/records (admins only).
func (f *RecordFeed) HandleWebSocket(c *gin.Context) {
	if utils.CurrentRole(c) != entity.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorf("ws upgrade error: %v", err)
		return
	}

	f.register <- conn

	// Reader goroutine: the feed is one-way, the read loop only detects
	// the client going away.
	go func() {
		defer func() { f.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
