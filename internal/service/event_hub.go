package service

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"qcmeta-go/internal/model"
	"qcmeta-go/pkg/log"
)

// EventHub 维护所有订阅目录变更的 WebSocket 连接，并向它们广播变更事件。
// 目录由管理员维护、被很多只读客户端浏览，推送变更让客户端不必轮询。
type EventHub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	events     chan model.ChangeEvent
}

// NewEventHub 创建一个新的 EventHub 实例。
func NewEventHub() *EventHub {
	return &EventHub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		events:     make(chan model.ChangeEvent, 64),
	}
}

// Run 是 hub 的主循环，应在单独的 goroutine 中启动。
// 所有对 clients 的访问都收敛到这个 goroutine，连接的并发安全由此保证。
func (h *EventHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
			log.Infof("[EventHub] 客户端接入, 当前连接数: %d", len(h.clients))
		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
				log.Infof("[EventHub] 客户端断开, 当前连接数: %d", len(h.clients))
			}
		case event := <-h.events:
			payload, err := json.Marshal(event)
			if err != nil {
				log.Errorf("[EventHub] 序列化变更事件失败: %v", err)
				continue
			}
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					// 写失败视为连接已死，直接剔除
					delete(h.clients, conn)
					_ = conn.Close()
				}
			}
		}
	}
}

// Register 把一个新建立的连接纳入广播列表。
func (h *EventHub) Register(conn *websocket.Conn) {
	h.register <- conn
}

// Unregister 把一个连接从广播列表中移除并关闭它。
func (h *EventHub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}

// NotifyChange 实现 ChangeNotifier。hub 繁忙时丢弃事件而不是阻塞写路径，
// 变更事件只是提示，客户端仍以 REST 查询结果为准。
func (h *EventHub) NotifyChange(event model.ChangeEvent) {
	select {
	case h.events <- event:
	default:
		log.Warnf("[EventHub] 事件缓冲已满, 丢弃事件 %s:%d", event.EntityType, event.EntityID)
	}
}
