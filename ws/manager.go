package ws

import (
	"context"
	"encoding/json"

	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/models"
)

const outboundBuffer = 256

// Envelope - формат событий, которые получает клиент
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type delivery struct {
	userID  string
	payload []byte
}

// WebSocketManager - хаб соединений. Карта клиентов принадлежит горутине Run,
// остальные обращаются к ней только через каналы.
type WebSocketManager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	outbound   chan delivery
	queries    chan func(map[string]map[*Client]struct{})
	done       chan struct{}
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan delivery, outboundBuffer),
		queries:    make(chan func(map[string]map[*Client]struct{})),
		done:       make(chan struct{}),
	}
}

// Run обслуживает хаб до отмены ctx. При остановке закрывает все соединения.
func (manager *WebSocketManager) Run(ctx context.Context) {
	defer close(manager.done)

	for {
		select {
		case <-ctx.Done():
			for _, set := range manager.clients {
				for client := range set {
					close(client.send)
				}
			}
			manager.clients = make(map[string]map[*Client]struct{})
			return

		case client := <-manager.register:
			set, ok := manager.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				manager.clients[client.userID] = set
			}
			set[client] = struct{}{}
			logger.Debug("ws client registered", "user_id", client.userID, "connections", len(set))

		case client := <-manager.unregister:
			manager.remove(client)

		case d := <-manager.outbound:
			for client := range manager.clients[d.userID] {
				select {
				case client.send <- d.payload:
				default:
					// медленный клиент отключается
					logger.Warn("ws client send buffer full, dropping connection", "user_id", d.userID)
					manager.remove(client)
				}
			}

		case query := <-manager.queries:
			query(manager.clients)
		}
	}
}

// add и drop не блокируются после остановки хаба
func (manager *WebSocketManager) add(client *Client) bool {
	select {
	case manager.register <- client:
		return true
	case <-manager.done:
		return false
	}
}

func (manager *WebSocketManager) drop(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

func (manager *WebSocketManager) remove(client *Client) {
	set, ok := manager.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(manager.clients, client.userID)
	}
	logger.Debug("ws client unregistered", "user_id", client.userID)
}

// PublishMessage ставит сообщение в очередь доставки получателю.
// Не блокирует: при переполненной очереди событие теряется, сообщение
// остается доступным через GET /messages.
func (manager *WebSocketManager) PublishMessage(receiverID string, message *models.Message) {
	payload, err := json.Marshal(Envelope{Type: "message", Data: message})
	if err != nil {
		logger.WithError(err).Error("failed to encode ws message", "message_id", message.ID)
		return
	}

	select {
	case manager.outbound <- delivery{userID: receiverID, payload: payload}:
	default:
		logger.Warn("ws outbound queue full, event dropped", "receiver_id", receiverID)
	}
}

// IsClientConnected проверяет, есть ли у пользователя открытые соединения
func (manager *WebSocketManager) IsClientConnected(userID string) bool {
	result := make(chan bool, 1)
	query := func(clients map[string]map[*Client]struct{}) {
		result <- len(clients[userID]) > 0
	}
	select {
	case manager.queries <- query:
		return <-result
	case <-manager.done:
		return false
	}
}

// GetClientCount возвращает количество открытых соединений
func (manager *WebSocketManager) GetClientCount() int {
	result := make(chan int, 1)
	query := func(clients map[string]map[*Client]struct{}) {
		total := 0
		for _, set := range clients {
			total += len(set)
		}
		result <- total
	}
	select {
	case manager.queries <- query:
		return <-result
	case <-manager.done:
		return 0
	}
}
