package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

type orderEvent struct {
	OrderID     string          `json:"orderId"`
	UserID      uint            `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PlacedAt    time.Time       `json:"placedAt"`
}

// GET /api/orders/ws — live feed of newly placed orders for the admin
// dashboard.
func OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

// BroadcastNewOrder pushes a placed-order event to every connected client.
// Write failures drop the client silently; the feed is best-effort.
func BroadcastNewOrder(orderID string, userID uint, total decimal.Decimal) {
	data, err := json.Marshal(orderEvent{
		OrderID:     orderID,
		UserID:      userID,
		TotalAmount: total,
		PlacedAt:    time.Now(),
	})
	if err != nil {
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(wsClients, client)
		}
	}
}
