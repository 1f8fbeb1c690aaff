package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Event คือสัญญาณบอก client ให้ refetch — ไม่ใช่ payload เต็ม
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// EventHub คือศูนย์กลาง broadcast ให้ทุก live session
// ทุก client ที่ต่ออยู่ได้ event ทุกตัว แล้วตัดสินใจ refresh เอง
type EventHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan Event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// สร้าง EventHub ใหม่
func NewEventHub() *EventHub {
	return &EventHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// คอยฟัง register/unregister/broadcast ตลอดเวลา
func (h *EventHub) Run() {
	for {
		select {
			// มี client ใหม่เข้ามา
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

			// มี client หลุด
		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

			// มี event ใหม่ → กระจายให้ทุกคน
		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast ส่ง event แบบ fire-and-forget (hub เต็มก็ทิ้ง ไม่ block request)
func (h *EventHub) Broadcast(event string, data any) {
	select {
	case h.broadcast <- Event{Event: event, Data: data}:
	default:
		log.Printf("ws broadcast dropped: %s", event)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws
func (h *EventHub) HandleWebSocket(c *gin.Context) {
	// --- Upgrade HTTP → WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	h.register <- conn

	go h.listen(conn)
}

// listen = ฟัง client จนกว่าจะหลุด (ไม่รับ message ขาเข้า แค่รอ close)
func (h *EventHub) listen(conn *websocket.Conn) {
	defer func() { h.unregister <- conn }()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
