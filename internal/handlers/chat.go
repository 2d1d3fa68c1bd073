package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yungbote/scrapbook-backend/internal/chat"
	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/requestdata"
	"github.com/yungbote/scrapbook-backend/internal/services"
)

const (
	chatWriteWait  = 10 * time.Second
	chatPongWait   = 60 * time.Second
	chatPingPeriod = (chatPongWait * 9) / 10
)

type ChatHandler struct {
	log         *logger.Logger
	hub         *chat.Hub
	chatService services.ChatService
	upgrader    websocket.Upgrader
}

func NewChatHandler(log *logger.Logger, hub *chat.Hub, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		log:         log.With("handler", "ChatHandler"),
		hub:         hub,
		chatService: chatService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Connect upgrades the request to a websocket and pumps chat frames until the
// peer goes away. Authentication has already happened in middleware; the
// token rides in the query string because browsers cannot set headers on
// websocket upgrades.
func (ch *ChatHandler) Connect(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	conn, err := ch.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		ch.log.Warn("Websocket upgrade failed", "error", err)
		return
	}

	client := ch.hub.NewClient(rd.UserID)
	ch.hub.AddClient(client)

	go ch.writePump(conn, client)
	ch.readPump(c, conn, client)
}

func (ch *ChatHandler) readPump(c *gin.Context, conn *websocket.Conn, client *chat.Client) {
	defer func() {
		ch.hub.RemoveClient(client)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(chatPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(chatPongWait))
		return nil
	})

	for {
		var frame chat.WireMessage
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ch.log.Warn("Websocket read error", "error", err)
			}
			return
		}
		ch.handleFrame(c, client, frame)
	}
}

func (ch *ChatHandler) handleFrame(c *gin.Context, client *chat.Client, frame chat.WireMessage) {
	ctx := c.Request.Context()

	switch frame.Event {
	case chat.EventMessage:
		ch.hub.Broadcast(chat.WireMessage{
			Event: chat.EventMessage,
			From:  client.UserID.String(),
			Text:  frame.Text,
		})

	case chat.EventPrivateMessage:
		toUserID, err := uuid.Parse(frame.To)
		if err != nil {
			ch.sendError(client, "invalid recipient")
			return
		}
		msg, sErr := ch.chatService.SaveMessage(ctx, client.UserID, toUserID, frame.Text)
		if sErr != nil {
			ch.sendError(client, sErr.Error())
			return
		}
		delivery := chat.WireMessage{
			Event: chat.EventPrivateMessage,
			From:  client.UserID.String(),
			To:    toUserID.String(),
			Text:  msg.Text,
		}
		ch.hub.SendToUser(toUserID, delivery)
		if toUserID != client.UserID {
			ch.hub.SendToUser(client.UserID, delivery)
		}

	case chat.EventHistory:
		otherUserID, err := uuid.Parse(frame.To)
		if err != nil {
			ch.sendError(client, "invalid conversation partner")
			return
		}
		messages, hErr := ch.chatService.History(ctx, client.UserID, otherUserID)
		if hErr != nil {
			ch.sendError(client, hErr.Error())
			return
		}
		ch.hub.SendToUser(client.UserID, chat.WireMessage{
			Event:    chat.EventHistory,
			Messages: messages,
		})

	default:
		ch.sendError(client, "unknown event")
	}
}

func (ch *ChatHandler) writePump(conn *websocket.Conn, client *chat.Client) {
	ticker := time.NewTicker(chatPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg := <-client.Outbound:
			conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-client.Done():
			return
		}
	}
}

func (ch *ChatHandler) sendError(client *chat.Client, text string) {
	ch.hub.SendToUser(client.UserID, chat.WireMessage{
		Event: chat.EventError,
		Error: text,
	})
}
