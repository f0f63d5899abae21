package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"

	"aptchat/pkg/consts"
	"aptchat/pkg/entities"
	"aptchat/pkg/repo"
	"aptchat/pkg/repo/driver/medium"
	"aptchat/utilities"
)

type ChatUseCases struct {
	repo          repo.ChatRepoImply
	userRepo      repo.UserRepoImply
	ws            *medium.Socket
	notifications chan notification
}

type notification struct {
	receiver string
	message  messaging.Message
}

type ChatUseCaseImply interface {
	GetChatRoom(ctx context.Context, roomID string, withHistory bool) (*entities.ChatRoom, error)
	CreateGroup(ctx context.Context, ownerID string, request *entities.GroupCreateRequest) (*entities.ChatRoom, error)
	PinRoom(ctx context.Context, userID, roomID string) ([]string, error)
	UnpinRoom(ctx context.Context, userID, roomID string) ([]string, error)
	GetRoomSummary(ctx context.Context, userID string) ([]*entities.RoomSummary, error)
	ClearChatRoom(ctx context.Context, userID, roomID string) error
	SendMessage(ctx context.Context, roomID string, msg *entities.Message) (*entities.Message, int64, error)
	MarkDelivered(ctx context.Context, roomID string, day int64, messageID string, memberIDs []string) error
	MarkRead(ctx context.Context, roomID string, day int64, messageID, userID string) error

	ChatProcessor(ctx context.Context)
	NotificationProcessor(ctx context.Context)
}

func NewChatUseCases(chatRepo repo.ChatRepoImply, userRepo repo.UserRepoImply, ws *medium.Socket) ChatUseCaseImply {
	return &ChatUseCases{
		repo:          chatRepo,
		userRepo:      userRepo,
		ws:            ws,
		notifications: make(chan notification, 1000),
	}
}

func (c *ChatUseCases) GetChatRoom(ctx context.Context, roomID string, withHistory bool) (*entities.ChatRoom, error) {
	room, err := c.repo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, repo.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if withHistory {
		history, err := c.repo.GetRoomHistory(ctx, roomID)
		if err != nil {
			return nil, err
		}
		room.History = history
	}

	return room, nil
}

func (c *ChatUseCases) CreateGroup(ctx context.Context, ownerID string, request *entities.GroupCreateRequest) (*entities.ChatRoom, error) {
	if request.Name == "" {
		return nil, ErrMissingFields
	}

	members := append([]string{}, request.Members...)
	if !utilities.ContainsString(members, ownerID) {
		members = append(members, ownerID)
	}

	room := &entities.ChatRoom{
		RoomType: consts.RoomTypeGroup,
		Name:     request.Name,
		Members:  members,
	}

	if err := c.repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	if err := c.userRepo.AddRoomToUsers(ctx, room.RoomID, members); err != nil {
		return nil, err
	}

	return room, nil
}

func (c *ChatUseCases) PinRoom(ctx context.Context, userID, roomID string) ([]string, error) {
	if _, err := c.repo.GetRoom(ctx, roomID); err != nil {
		if errors.Is(err, repo.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return c.userRepo.PinRoom(ctx, userID, roomID)
}

func (c *ChatUseCases) UnpinRoom(ctx context.Context, userID, roomID string) ([]string, error) {
	return c.userRepo.UnpinRoom(ctx, userID, roomID)
}

// GetRoomSummary lists the user's rooms, pinned ones first, both groups
// ordered by latest activity, newest first
func (c *ChatUseCases) GetRoomSummary(ctx context.Context, userID string) ([]*entities.RoomSummary, error) {
	log := utilities.NewLogger("GetRoomSummary")

	user, err := c.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	pinned := utilities.SliceToMap(user.PinnedRooms)

	type summaryEntry struct {
		summary      *entities.RoomSummary
		lastActivity int64
	}

	var entries []summaryEntry
	for _, roomID := range user.ChatRooms {
		room, err := c.repo.GetRoom(ctx, roomID)
		if err != nil {
			log.WithError(err).Errorf("skipping room %s in summary for user %s", roomID, userID)
			continue
		}

		summary := &entities.RoomSummary{
			ChatRoomID: roomID,
			RoomType:   room.RoomType,
			Name:       room.Name,
			Pinned:     pinned[roomID],
		}

		if latest, err := c.repo.GetLatestMessage(ctx, roomID); err == nil {
			summary.LatestMessage = latest
		}

		if count, err := c.userRepo.UnreadCount(ctx, userID, roomID); err == nil {
			summary.UnreadCount = count
		}

		if room.RoomType == consts.RoomTypePrivate {
			c.fillPrivateProfile(ctx, userID, room, summary)
		}

		entries = append(entries, summaryEntry{summary: summary, lastActivity: room.LastActivity})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].summary.Pinned != entries[j].summary.Pinned {
			return entries[i].summary.Pinned
		}
		return entries[i].lastActivity > entries[j].lastActivity
	})

	summaries := make([]*entities.RoomSummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, entry.summary)
	}

	return summaries, nil
}

func (c *ChatUseCases) fillPrivateProfile(ctx context.Context, userID string, room *entities.ChatRoom, summary *entities.RoomSummary) {
	for _, member := range room.Members {
		if member == userID {
			continue
		}

		other, err := c.userRepo.GetUserByID(ctx, member)
		if err != nil {
			return
		}

		summary.Profile = &entities.UserProfile{
			UserID:   other.UserID,
			Username: other.Username,
			Avatar:   other.Avatar,
			Bio:      other.Bio,
			Status:   other.Status,
		}

		contacts, err := c.userRepo.GetContacts(ctx, userID)
		if err != nil {
			return
		}
		for _, contact := range contacts {
			if contact.Details != nil && contact.Details.UserID == member {
				summary.ContactName = contact.Name
				break
			}
		}
		return
	}
}

func (c *ChatUseCases) ClearChatRoom(ctx context.Context, userID, roomID string) error {
	room, err := c.repo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, repo.ErrRoomNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !utilities.ContainsString(room.Members, userID) {
		return ErrNotFound
	}

	return c.repo.ClearRoom(ctx, roomID)
}

// SendMessage appends to the room's active day bucket and fans the message
// out to the members' live connections; recipients with no connection get
// an FCM push instead.
func (c *ChatUseCases) SendMessage(ctx context.Context, roomID string, msg *entities.Message) (*entities.Message, int64, error) {
	stored, day, err := c.repo.AppendMessage(ctx, roomID, msg)
	if err != nil {
		if errors.Is(err, repo.ErrRoomNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	frame := medium.Message{
		Kind:       consts.EventNewMessage,
		Sender:     stored.Sender,
		ChatRoomID: roomID,
		MessageID:  stored.MessageID,
		Day:        day,
		Payload:    stored,
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return stored, day, fmt.Errorf("failed to marshal message frame: %w", err)
	}

	recipients := utilities.RemoveString(stored.UndeliveredMembers, stored.Sender)
	offline := c.ws.PushToUsers(recipients, data)

	for _, receiver := range offline {
		c.notifications <- notification{
			receiver: receiver,
			message: messaging.Message{
				Notification: &messaging.Notification{
					Title: "New message",
					Body:  stored.Message,
				},
				Data: map[string]string{
					"chat_room_id": roomID,
					"message_id":   stored.MessageID,
					"sender":       stored.Sender,
					"day":          fmt.Sprintf("%d", day),
				},
				APNS: &messaging.APNSConfig{Payload: &messaging.APNSPayload{Aps: &messaging.Aps{Sound: "default"}}},
			},
		}
	}

	return stored, day, nil
}

func (c *ChatUseCases) fanOutRoomEvent(ctx context.Context, room *entities.ChatRoom, event entities.RoomEvent) {
	log := utilities.NewLogger("fanOutRoomEvent")

	data, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Errorf("failed to marshal %s event", event.Event)
		return
	}

	c.ws.PushToUsers(room.Members, data)
}

// MarkDelivered checks memberIDs off the message's undelivered set. The
// messageDelivered event fires exactly once, on the transition that empties
// the set; retries and overlapping acks are no-ops.
func (c *ChatUseCases) MarkDelivered(ctx context.Context, roomID string, day int64, messageID string, memberIDs []string) error {
	msg, transitioned, err := c.repo.MarkDelivered(ctx, roomID, day, messageID, memberIDs)
	if err != nil {
		if errors.Is(err, repo.ErrMessageNotFound) || errors.Is(err, repo.ErrRoomNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !transitioned {
		return nil
	}

	room, err := c.repo.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	c.fanOutRoomEvent(ctx, room, entities.RoomEvent{
		Event:      consts.EventMessageDelivered,
		MessageID:  msg.MessageID,
		SenderID:   msg.Sender,
		ChatRoomID: roomID,
		Day:        day,
	})

	return nil
}

// MarkRead is the read-side twin: one user at a time, event on the
// emptying transition only
func (c *ChatUseCases) MarkRead(ctx context.Context, roomID string, day int64, messageID, userID string) error {
	msg, transitioned, err := c.repo.MarkRead(ctx, roomID, day, messageID, userID)
	if err != nil {
		if errors.Is(err, repo.ErrMessageNotFound) || errors.Is(err, repo.ErrRoomNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !transitioned {
		return nil
	}

	room, err := c.repo.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	c.fanOutRoomEvent(ctx, room, entities.RoomEvent{
		Event:      consts.EventMessageRead,
		MessageID:  msg.MessageID,
		SenderID:   msg.Sender,
		ChatRoomID: roomID,
		Day:        day,
	})

	return nil
}

func (c *ChatUseCases) userOnlineStatus(ctx context.Context, msg medium.Message) error {
	statusData := &entities.UserStatus{
		Event:  consts.EventUserStatus,
		User:   msg.User,
		Online: c.ws.IsOnline(msg.User),
	}

	mStatusData, err := json.Marshal(statusData)
	if err != nil {
		return err
	}

	return c.ws.PushMessage(msg.Sender, mStatusData, true)
}

func (c *ChatUseCases) ackToSender(sender string, ok bool, messageID string, day int64) {
	ack := map[string]interface{}{
		"event":      consts.EventMessageAck,
		"ok":         ok,
		"message_id": messageID,
		"day":        day,
	}

	data, err := json.Marshal(ack)
	if err != nil {
		return
	}

	_ = c.ws.PushMessage(sender, data, true)
}

// ChatProcessor consumes the websocket read channel and dispatches on the
// frame kind
func (c *ChatUseCases) ChatProcessor(ctx context.Context) {
	logrus.Info("Starting chat processor")
	for msg := range c.ws.GetReadChannel() {
		logrus.Debugf(
			"Received frame of kind '%s' from user '%s' for room '%s', message: %s",
			msg.Kind, msg.Sender, msg.ChatRoomID, msg.MessageID,
		)

		switch msg.Kind {
		case consts.WSKindChat:
			if msg.Payload == nil {
				c.ackToSender(msg.Sender, false, "", 0)
				continue
			}
			msg.Payload.Sender = msg.Sender
			stored, day, err := c.SendMessage(ctx, msg.ChatRoomID, msg.Payload)
			if err != nil {
				logrus.WithError(err).Errorf("unable to send chat to room %s", msg.ChatRoomID)
				c.ackToSender(msg.Sender, false, "", 0)
				continue
			}
			c.ackToSender(msg.Sender, true, stored.MessageID, day)
		case consts.WSKindDelivered:
			if err := c.MarkDelivered(ctx, msg.ChatRoomID, msg.Day, msg.MessageID, []string{msg.Sender}); err != nil {
				logrus.WithError(err).Errorf("unable to mark message %s delivered", msg.MessageID)
			}
		case consts.WSKindSeen:
			if err := c.MarkRead(ctx, msg.ChatRoomID, msg.Day, msg.MessageID, msg.Sender); err != nil {
				logrus.WithError(err).Errorf("unable to mark message %s read", msg.MessageID)
			}
		case consts.WSKindStatus:
			if err := c.userOnlineStatus(ctx, msg); err != nil {
				logrus.WithError(err).Errorf("unable to send online status of %s", msg.User)
			}
		}
	}
}

// NotificationProcessor drains the FCM queue for recipients that had no
// live connection at fan-out time
func (c *ChatUseCases) NotificationProcessor(ctx context.Context) {
	for item := range c.notifications {
		tokens, err := c.userRepo.GetFCMTokens(ctx, item.receiver)
		if err != nil {
			logrus.WithError(err).Errorf("failed to get fcm tokens for %s", item.receiver)
			continue
		}

		client := medium.GetFirebaseClient()
		if client == nil || len(tokens) == 0 {
			continue
		}

		if err = client.PushMessageToClient(ctx, item.receiver, item.message, tokens); err != nil {
			logrus.WithError(err).Error("failed to push chat notification")
		}
	}
}
