package medium

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	uuidLib "github.com/google/uuid"
	"github.com/gorilla/websocket"

	"aptchat/pkg/entities"
	"aptchat/utilities"
)

type ErrWSConnAbsent struct {
	Message string
	ID      string
}

func (e *ErrWSConnAbsent) Error() string {
	return fmt.Sprintf("%s, ID: %s", e.Message, e.ID)
}

// Socket maps user ids to their live connections. It holds no durable
// state; everything here dies with the process.
type Socket struct {
	*sync.RWMutex
	ConnSet     map[string]*UserConnObject
	ReadChannel chan Message
	WithReader  bool
}

type UserConnObject struct {
	ConnObjs    []*ConnObject
	IsOnline    bool
	LastChecked time.Time
}

type ConnObject struct {
	ID    string
	Conn  *websocket.Conn
	Close chan bool
}

// Message is the bidirectional websocket frame. Kind selects the handler;
// Sender is stamped server side from the authenticated connection.
type Message struct {
	Kind       string            `json:"kind"`
	Sender     string            `json:"sender,omitempty"`
	ChatRoomID string            `json:"chat_room_id,omitempty"`
	MessageID  string            `json:"message_id,omitempty"`
	Day        int64             `json:"day,omitempty"`
	User       string            `json:"user,omitempty"`
	Payload    *entities.Message `json:"payload,omitempty"`
	Time       int64             `json:"time,omitempty"`
}

const (
	pingInterval = time.Second * 30
)

func (s *Socket) GetReadChannel() chan Message {
	if !s.WithReader {
		return nil
	}
	return s.ReadChannel
}

func (s *Socket) Add(userID string, newUserConn *websocket.Conn) {
	s.Lock()
	defer s.Unlock()
	log := utilities.NewLoggerWithFields(
		"websocket.Add", map[string]interface{}{
			"id": userID,
		},
	)

	if _, ok := s.ConnSet[userID]; !ok {
		s.ConnSet[userID] = &UserConnObject{
			ConnObjs: make([]*ConnObject, 0),
		}
	}

	connObj := &ConnObject{
		Conn:  newUserConn,
		Close: make(chan bool),
		ID:    uuidLib.NewString(),
	}

	err := connObj.Conn.SetWriteDeadline(time.Time{})
	if err != nil {
		log.WithError(err).Errorf("setting SetWriteDeadline failed for id %s", userID)
	}

	connObj.Conn.SetCloseHandler(
		func(code int, text string) error {
			close(connObj.Close)
			log.Infof("Received close message with code %d and text %s for id %s:%s", code, text, userID, connObj.ID)
			return nil
		},
	)

	readerFn := func(connObj *ConnObject, id string) {
		defer close(connObj.Close)
		thisConn := connObj.Conn
		for {
			log.Debugf("Waiting for message, id: %s", id)
			messageType, message, err := thisConn.ReadMessage()
			if err != nil {
				closeErr := &websocket.CloseError{}
				if !errors.As(err, &closeErr) {
					log.WithError(err).Errorf("error reading msg of type %d", messageType)
				}
				return
			}
			_ = thisConn.SetReadDeadline(time.Now().Add(pingInterval))
			var msg Message
			err = json.Unmarshal(message, &msg)
			if err != nil {
				log.WithError(err).Errorf("failed to unmarshal message %v", string(message))
				continue
			}

			// the connection identity wins over whatever the client claims
			msg.Sender = id
			if msg.Time == 0 {
				msg.Time = utilities.UnixMilli()
			}
			s.ReadChannel <- msg
		}
	}

	if s.WithReader {
		go readerFn(connObj, userID)
	}

	// to check health of connection
	go func(s *Socket, connObj *ConnObject, id string) {
		thisConn := connObj.Conn
		ticker := time.NewTicker(pingInterval)
		defer func() {
			log.Infof("Closing the ws connection for %s:%s", id, connObj.ID)
			ticker.Stop()
			err = thisConn.WriteMessage(
				websocket.CloseMessage, websocket.FormatCloseMessage(
					websocket.CloseNormalClosure, "",
				),
			)
			if err != nil {
				log.WithError(err).Error("sending close msg failed")
			}
			s.Remove(id, connObj.ID)
		}()

		_ = thisConn.SetReadDeadline(time.Now().Add(pingInterval))
		thisConn.SetPongHandler(func(string) error { _ = thisConn.SetReadDeadline(time.Now().Add(pingInterval)); return nil })

		for {
			if err = thisConn.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				log.WithError(err).Errorf("ping failed, id: %s", id)
				return
			}

			s.Lock()
			if userConn, ok := s.ConnSet[id]; ok {
				userConn.IsOnline = true
				userConn.LastChecked = time.Now()
			}
			s.Unlock()

			select {
			case <-connObj.Close:
				log.Debugf("Received ping close for %s", id)
				return
			case <-ticker.C:
			}
		}
	}(s, connObj, userID)

	s.ConnSet[userID].ConnObjs = append(
		s.ConnSet[userID].ConnObjs, connObj,
	)
	log.Debugf("Adding new ws connection %s for user %s, total conns: %d", connObj.ID, userID, len(s.ConnSet[userID].ConnObjs))
}

func (s *Socket) Remove(identifier string, connID string) {
	log := utilities.NewLoggerWithFields(
		"websocket.Remove", map[string]interface{}{
			"id": identifier,
		},
	)

	s.Lock()
	defer s.Unlock()
	userConnObj, ok := s.ConnSet[identifier]
	if !ok || userConnObj == nil {
		// nothing to remove
		return
	}

	acceptedConns := make([]*ConnObject, 0)
	for _, connObj := range userConnObj.ConnObjs {
		if connObj.ID == connID {
			err := connObj.Conn.Close()
			if err != nil {
				log.WithError(err).Errorf("error closing ws conn for id %s", identifier)
			}
			continue
		}
		acceptedConns = append(acceptedConns, connObj)
	}

	if len(acceptedConns) == 0 {
		delete(s.ConnSet, identifier)
	} else {
		s.ConnSet[identifier].ConnObjs = acceptedConns
	}
}

// IsOnline reports whether the user has a healthy connection
func (s *Socket) IsOnline(userID string) bool {
	s.RLock()
	defer s.RUnlock()

	userConn, ok := s.ConnSet[userID]
	if !ok || userConn == nil {
		return false
	}

	return userConn.IsOnline && time.Since(userConn.LastChecked) <= pingInterval
}

func NewWebSocket(withReader bool) *Socket {
	socketConnect := &Socket{
		RWMutex:     new(sync.RWMutex),
		ConnSet:     make(map[string]*UserConnObject),
		ReadChannel: make(chan Message, 1000),
		WithReader:  withReader,
	}

	return socketConnect
}

func Upgrade() websocket.Upgrader {
	return websocket.Upgrader{
		Subprotocols: []string{"websocket"},
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

func (s *Socket) PushMessage(userID string, data []byte, broadcast bool) error {
	s.RLock()
	defer s.RUnlock()
	log := utilities.NewLoggerWithFields(
		"websocket.PushMessage", map[string]interface{}{
			"id": userID,
		},
	)

	userConnObj, ok := s.ConnSet[userID]
	if !ok || userConnObj == nil || len(userConnObj.ConnObjs) < 1 {
		return &ErrWSConnAbsent{
			Message: "ws connection absent",
			ID:      userID,
		}
	}

	connObjs := userConnObj.ConnObjs
	if !broadcast {
		connObjs = []*ConnObject{userConnObj.ConnObjs[len(userConnObj.ConnObjs)-1]}
	}

	sent := false
	var pushErrors []string
	for _, connObj := range connObjs {
		err := connObj.Conn.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			pushErrors = append(pushErrors, err.Error())
			continue
		}
		sent = true
		log.Debugf("ws message %s sent to %s", string(data), userID)
	}

	if !sent {
		return fmt.Errorf("ws message %s failed for %s: %s", string(data), userID, strings.Join(pushErrors, ":"))
	}

	return nil
}

// PushToUsers fans data out to every id in userIDs, skipping absent
// connections. Returns the ids that had no live connection.
func (s *Socket) PushToUsers(userIDs []string, data []byte) []string {
	var offline []string
	for _, userID := range userIDs {
		if err := s.PushMessage(userID, data, true); err != nil {
			absentErr := &ErrWSConnAbsent{}
			if errors.As(err, &absentErr) {
				offline = append(offline, userID)
			}
		}
	}
	return offline
}
