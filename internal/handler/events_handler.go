// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"qcmeta-go/internal/service"
	"qcmeta-go/pkg/log"
)

// EventsHandler 负责把 HTTP 连接升级为 WebSocket 并接入变更事件广播。
type EventsHandler struct {
	hub *service.EventHub
}

// NewEventsHandler 创建一个新的 EventsHandler 实例。
func NewEventsHandler(hub *service.EventHub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 认证在路由中间件完成，这里不再限制来源
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Subscribe 把请求升级为 WebSocket 连接并注册到事件中心。
// 这是一个单向推送通道，客户端发来的消息会被丢弃。
func (h *EventsHandler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorf("Subscribe: WebSocket 升级失败: %v", err)
		return
	}

	h.hub.Register(conn)

	// 读循环只用于探测连接关闭
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
