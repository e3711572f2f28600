package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pandemic-deck/dto"
)

const (
	writeWait = 5 * time.Second
	// sendBuffer 每个连接最多积压的消息数，超过则认为连接已经跟不上
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SnapshotSource 新连接建立时用来取当前快照
type SnapshotSource interface {
	Snapshot(ctx context.Context) (dto.Snapshot, error)
}

// Message 推送给客户端的统一格式（type + data）
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// client 一个订阅连接。只有 writePump 会写 conn
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub 维护所有只读订阅连接，状态变化时广播快照。
// 广播只往各连接的缓冲队列里放消息，不等待网络写入
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		logger:  logger,
	}
}

// 构建一条统一格式的消息
func buildMessage(msgType string, data interface{}) []byte {
	msg, _ := json.Marshal(Message{Type: msgType, Data: data})
	return msg
}

// enqueue 调用方持有 h.mu。队列满时移除该连接
func (h *Hub) enqueue(c *client, message []byte) bool {
	select {
	case c.send <- message:
		return true
	default:
		h.logger.Info("client too slow, dropping", zap.String("client", c.id))
		h.remove(c)
		return false
	}
}

// remove 调用方持有 h.mu
func (h *Hub) remove(c *client) {
	if h.clients[c.id] != c {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
}

// broadcast 发送给所有连接
func (h *Hub) broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.clients {
		h.enqueue(c, message)
	}
}

// Notify 实现 service.Notifier
func (h *Hub) Notify(snapshot dto.Snapshot) {
	h.broadcast(buildMessage("snapshot", snapshot))
}

// ClientCount 当前连接数
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) join(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.id] = c
	h.enqueue(c, buildMessage("init", gin.H{"clientId": c.id}))
}

func (h *Hub) sendTo(c *client, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.id] == c {
		h.enqueue(c, message)
	}
}

func (h *Hub) leave(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(c)
}

// writePump 把队列里的消息写到连接上。队列被关闭或写失败时关闭连接，读循环随之退出
func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Info("websocket write failed", zap.String("client", c.id), zap.Error(err))
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Handler WebSocket 入口，连接后先收到当前快照，之后每次状态变化都会收到新快照。
// 先注册再读快照，期间的广播可能先于初始快照到达，客户端按 revision 丢弃旧快照
func (h *Hub) Handler(source SnapshotSource) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			h.logger.Info("websocket upgrade failed", zap.Error(err))
			return
		}

		c := &client{
			id:   uuid.New().String(),
			conn: conn,
			send: make(chan []byte, sendBuffer),
		}
		h.join(c)
		go h.writePump(c)
		defer h.leave(c)

		snapshot, err := source.Snapshot(ctx.Request.Context())
		if err != nil {
			h.logger.Error("load snapshot for websocket failed", zap.String("client", c.id), zap.Error(err))
			h.sendTo(c, buildMessage("error", dto.ErrorResponse{Error: err.Error()}))
			return
		}
		h.sendTo(c, buildMessage("snapshot", snapshot))
		h.logger.Info("websocket client joined", zap.String("client", c.id), zap.Int("clients", h.ClientCount()))

		// 客户端只读，读循环只用来发现断开
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.logger.Info("websocket client left", zap.String("client", c.id), zap.Error(err))
				return
			}
		}
	}
}
