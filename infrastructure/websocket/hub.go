package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"buildboard/pkg/logger"
)

// Conn ส่วนของ websocket connection ที่ hub ใช้ (*websocket.Conn ของ fiber implement อยู่แล้ว)
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// RoomAuthorizer ตรวจว่า user เข้าห้องนี้ได้ไหม (ห้อง = chat id)
type RoomAuthorizer func(ctx context.Context, userID uuid.UUID, roomID string) bool

type Message struct {
	Type   string      `json:"type"`
	Data   interface{} `json:"data,omitempty"`
	RoomID string      `json:"roomId,omitempty"`
}

type client struct {
	conn   Conn
	userID uuid.UUID
	roomID string

	writeMu sync.Mutex
}

// write serialize การเขียนต่อ connection (ตอบ ping กับ broadcast อาจมาพร้อมกัน)
func (c *client) write(msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(msg)
}

type broadcast struct {
	message Message
	roomID  string
	userID  *uuid.UUID
}

type registration struct {
	conn   Conn
	userID uuid.UUID
	roomID string
}

type Hub struct {
	clients map[Conn]*client
	rooms   map[string]map[Conn]*client
	mutex   sync.RWMutex

	register   chan registration
	unregister chan Conn
	broadcast  chan broadcast

	authorize RoomAuthorizer

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

func NewHub(authorize RoomAuthorizer) *Hub {
	if authorize == nil {
		authorize = func(context.Context, uuid.UUID, string) bool { return true }
	}
	return &Hub{
		clients:    make(map[Conn]*client),
		rooms:      make(map[string]map[Conn]*client),
		register:   make(chan registration),
		unregister: make(chan Conn),
		broadcast:  make(chan broadcast, 64),
		authorize:  authorize,
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

func (h *Hub) Start() {
	h.startOnce.Do(func() {
		go h.run()
	})
}

// Stop ปิดทุก connection แล้วรอ run loop จบ
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
	h.startOnce.Do(func() { close(h.stopped) })
	<-h.stopped
}

func (h *Hub) run() {
	defer close(h.stopped)
	for {
		select {
		case reg := <-h.register:
			h.mutex.Lock()
			c := &client{conn: reg.conn, userID: reg.userID}
			h.clients[reg.conn] = c
			if reg.roomID != "" {
				h.joinLocked(c, reg.roomID)
			}
			h.mutex.Unlock()
			logger.Debug("WebSocket client connected", "user_id", reg.userID, "room_id", reg.roomID)

		case conn := <-h.unregister:
			h.mutex.Lock()
			h.removeLocked(conn)
			h.mutex.Unlock()

		case msg := <-h.broadcast:
			h.deliver(msg)

		case <-h.done:
			h.mutex.Lock()
			for conn := range h.clients {
				h.removeLocked(conn)
			}
			h.mutex.Unlock()
			return
		}
	}
}

// deliver ส่ง message แล้วลบ connection ที่เขียนไม่สำเร็จ
func (h *Hub) deliver(msg broadcast) {
	h.mutex.RLock()
	var targets []*client
	switch {
	case msg.roomID != "":
		for _, c := range h.rooms[msg.roomID] {
			targets = append(targets, c)
		}
	case msg.userID != nil:
		for _, c := range h.clients {
			if c.userID == *msg.userID {
				targets = append(targets, c)
			}
		}
	default:
		for _, c := range h.clients {
			targets = append(targets, c)
		}
	}
	h.mutex.RUnlock()

	var dead []Conn
	for _, c := range targets {
		if err := c.write(msg.message); err != nil {
			logger.Debug("WebSocket write failed, dropping client", "user_id", c.userID, "error", err)
			dead = append(dead, c.conn)
		}
	}

	if len(dead) > 0 {
		h.mutex.Lock()
		for _, conn := range dead {
			h.removeLocked(conn)
		}
		h.mutex.Unlock()
	}
}

func (h *Hub) joinLocked(c *client, roomID string) {
	h.leaveLocked(c)
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[Conn]*client)
	}
	h.rooms[roomID][c.conn] = c
	c.roomID = roomID
}

func (h *Hub) leaveLocked(c *client) {
	if c.roomID == "" {
		return
	}
	if members := h.rooms[c.roomID]; members != nil {
		delete(members, c.conn)
		if len(members) == 0 {
			delete(h.rooms, c.roomID)
		}
	}
	c.roomID = ""
}

func (h *Hub) removeLocked(conn Conn) {
	c, ok := h.clients[conn]
	if !ok {
		return
	}
	h.leaveLocked(c)
	delete(h.clients, conn)
	conn.Close()
}

// Register ผูก connection เข้ากับ hub (roomID ต้องผ่านการตรวจสิทธิ์มาแล้ว)
func (h *Hub) Register(conn Conn, userID uuid.UUID, roomID string) {
	select {
	case h.register <- registration{conn: conn, userID: userID, roomID: roomID}:
	case <-h.done:
		conn.Close()
	}
}

func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

func (h *Hub) BroadcastToRoom(roomID, messageType string, data interface{}) {
	h.enqueue(broadcast{message: Message{Type: messageType, Data: data, RoomID: roomID}, roomID: roomID})
}

func (h *Hub) BroadcastToUser(userID uuid.UUID, messageType string, data interface{}) {
	h.enqueue(broadcast{message: Message{Type: messageType, Data: data}, userID: &userID})
}

func (h *Hub) BroadcastToAll(messageType string, data interface{}) {
	h.enqueue(broadcast{message: Message{Type: messageType, Data: data}})
}

func (h *Hub) enqueue(b broadcast) {
	select {
	case h.broadcast <- b:
	case <-h.done:
	}
}

func (h *Hub) RoomClients(roomID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[roomID])
}

func (h *Hub) TotalClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleClientMessage จัดการ frame จาก client: ping, join_room, leave_room
func (h *Hub) HandleClientMessage(ctx context.Context, conn Conn, data []byte) {
	var in struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		logger.Debug("Ignoring malformed websocket frame", "error", err)
		return
	}

	h.mutex.RLock()
	c, ok := h.clients[conn]
	h.mutex.RUnlock()
	if !ok {
		return
	}

	switch in.Type {
	case "ping":
		_ = c.write(Message{Type: "pong", Data: "pong"})

	case "join_room":
		var payload struct {
			RoomID string `json:"roomId"`
		}
		if err := json.Unmarshal(in.Data, &payload); err != nil || payload.RoomID == "" {
			_ = c.write(Message{Type: "error", Data: "roomId is required"})
			return
		}
		if !h.authorize(ctx, c.userID, payload.RoomID) {
			_ = c.write(Message{Type: "error", Data: "not allowed to join this room"})
			return
		}

		h.mutex.Lock()
		if _, still := h.clients[conn]; still {
			h.joinLocked(c, payload.RoomID)
		}
		h.mutex.Unlock()

		_ = c.write(Message{Type: "room_joined", Data: map[string]string{"roomId": payload.RoomID}, RoomID: payload.RoomID})

	case "leave_room":
		h.mutex.Lock()
		h.leaveLocked(c)
		h.mutex.Unlock()
		_ = c.write(Message{Type: "room_left", Data: "Left room successfully"})

	default:
		logger.Debug("Unknown websocket message type", "type", in.Type)
	}
}

// Authorize ใช้ตอน connect ที่ระบุ ?room= มาตั้งแต่แรก
func (h *Hub) Authorize(ctx context.Context, userID uuid.UUID, roomID string) bool {
	if roomID == "" {
		return true
	}
	return h.authorize(ctx, userID, roomID)
}
