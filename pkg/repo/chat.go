package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocql/gocql"
	uuidLib "github.com/google/uuid"

	"aptchat/config"
	"aptchat/pkg/consts"
	"aptchat/pkg/entities"
	"aptchat/utilities"
)

var ErrRoomNotFound = errors.New("chat room not found")
var ErrMessageNotFound = errors.New("message not found")

type ChatRepo struct {
	Db   *gocql.Session
	Conf *config.AptchatConfModel
}

type ChatRepoImply interface {
	CreateRoom(ctx context.Context, room *entities.ChatRoom) error
	GetRoom(ctx context.Context, roomID string) (*entities.ChatRoom, error)
	GetRoomHistory(ctx context.Context, roomID string) ([]entities.DayBucket, error)
	DeleteRoom(ctx context.Context, roomID string) error
	AppendMessage(ctx context.Context, roomID string, msg *entities.Message) (*entities.Message, int64, error)
	GetMessage(ctx context.Context, roomID string, day int64, messageID string) (*entities.Message, error)
	GetLatestMessage(ctx context.Context, roomID string) (*entities.Message, error)
	MarkDelivered(ctx context.Context, roomID string, day int64, messageID string, memberIDs []string) (*entities.Message, bool, error)
	MarkRead(ctx context.Context, roomID string, day int64, messageID, userID string) (*entities.Message, bool, error)
	ClearRoom(ctx context.Context, roomID string) error
	SetAlgoToken(ctx context.Context, roomID string, token *entities.AlgoToken) error
}

func NewChatRepo(db *gocql.Session, conf *config.AptchatConfModel) ChatRepoImply {
	return &ChatRepo{Db: db, Conf: conf}
}

func (c *ChatRepo) CreateRoom(ctx context.Context, room *entities.ChatRoom) error {
	if room.RoomID == "" {
		room.RoomID = uuidLib.NewString()
	}
	if room.Created.IsZero() {
		room.Created = utilities.TimeNow()
	}

	query := fmt.Sprintf(
		`INSERT INTO %s.%s (room_id, room_type, name, members, created, last_day, last_activity) VALUES %s`,
		c.Conf.DB.Keyspace, consts.ChatRoomInfoTable, utilities.DBMultiValuePlaceholders(7),
	)

	err := c.Db.Query(
		query, room.RoomID, room.RoomType, room.Name, room.Members, room.Created,
		int64(0), room.Created.UnixMilli(),
	).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("failed to create chat room: %w", err)
	}

	return nil
}

func (c *ChatRepo) GetRoom(ctx context.Context, roomID string) (*entities.ChatRoom, error) {
	query := fmt.Sprintf(
		`SELECT room_id, room_type, name, members, created, last_day, last_activity,
token_module_address, token_created_by, token_created_at, token_active FROM %s.%s WHERE room_id = ?`,
		c.Conf.DB.Keyspace, consts.ChatRoomInfoTable,
	)

	room := &entities.ChatRoom{}
	token := &entities.AlgoToken{}

	err := c.Db.Query(query, roomID).WithContext(ctx).Scan(
		&room.RoomID, &room.RoomType, &room.Name, &room.Members, &room.Created,
		&room.LastDay, &room.LastActivity,
		&token.ModuleAddress, &token.CreatedBy, &token.CreatedAt, &token.IsActive,
	)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to fetch chat room %s: %w", roomID, err)
	}

	if token.ModuleAddress != "" || token.IsActive {
		room.AlgoToken = token
	}

	return room, nil
}

func (c *ChatRepo) roomDays(ctx context.Context, roomID string) ([]int64, error) {
	query := fmt.Sprintf(
		`SELECT days FROM %s.%s WHERE room_id = ?`,
		c.Conf.DB.Keyspace, consts.ChatRoomInfoTable,
	)

	var days []int64
	if err := c.Db.Query(query, roomID).WithContext(ctx).Scan(&days); err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to fetch day list for room %s: %w", roomID, err)
	}

	return days, nil
}

// messageTTLClause lets messages age out of Cassandra when a retention
// window is configured; zero or negative means keep forever
func messageTTLClause(ttlSecs int) string {
	if ttlSecs <= 0 {
		return ""
	}
	return fmt.Sprintf(" USING TTL %d", ttlSecs)
}

const messageColumns = `message_id, message_type, sender, message, image_url,
call_type, call_duration, call_reject_reason, voice_note_url, voice_note_duration,
read_status, delivered_status, undelivered_members, unread_members, sent_time`

func scanMessage(scan func(...interface{}) error) (*entities.Message, error) {
	msg := &entities.Message{}
	call := entities.CallDetails{}

	var messageID gocql.UUID

	err := scan(
		&messageID, &msg.MessageType, &msg.Sender, &msg.Message, &msg.ImageURL,
		&call.CallType, &call.CallDuration, &call.CallRejectReason,
		&msg.VoiceNoteURL, &msg.VoiceNoteDuration,
		&msg.ReadStatus, &msg.DeliveredStatus,
		&msg.UndeliveredMembers, &msg.UnreadMembers, &msg.TimeSent,
	)
	if err != nil {
		return nil, err
	}

	msg.MessageID = messageID.String()
	if call != (entities.CallDetails{}) {
		msg.CallDetails = &call
	}

	return msg, nil
}

// GetRoomHistory assembles the day buckets of a room, oldest day first,
// append order inside each bucket
func (c *ChatRepo) GetRoomHistory(ctx context.Context, roomID string) ([]entities.DayBucket, error) {
	days, err := c.roomDays(ctx, roomID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM %s.%s WHERE room_id = ? AND day = ?`,
		messageColumns, c.Conf.DB.Keyspace, consts.ChatMessageTable,
	)

	history := make([]entities.DayBucket, 0, len(days))
	for _, day := range days {
		bucket := entities.DayBucket{Day: day}

		scanner := c.Db.Query(query, roomID, day).WithContext(ctx).Iter().Scanner()
		for scanner.Next() {
			msg, scanErr := scanMessage(scanner.Scan)
			if scanErr != nil {
				return nil, fmt.Errorf("failed to scan message in room %s: %w", roomID, scanErr)
			}
			bucket.Messages = append(bucket.Messages, msg)
		}
		if err = scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read day bucket %d of room %s: %w", day, roomID, err)
		}

		history = append(history, bucket)
	}

	return history, nil
}

// AppendMessage files msg under the day bucket of its send time, seeds the
// member sets and the members' inverse-index markers, all in one logged
// batch so the two representations cannot drift.
func (c *ChatRepo) AppendMessage(ctx context.Context, roomID string, msg *entities.Message) (*entities.Message, int64, error) {
	room, err := c.GetRoom(ctx, roomID)
	if err != nil {
		return nil, 0, err
	}

	if msg.TimeSent.IsZero() {
		msg.TimeSent = utilities.TimeNow()
	}
	day := utilities.DayKey(msg.TimeSent)

	messageID := gocql.TimeUUID()
	msg.MessageID = messageID.String()
	msg.UndeliveredMembers = append([]string{}, room.Members...)
	msg.UnreadMembers = utilities.RemoveString(room.Members, msg.Sender)
	msg.ReadStatus = false
	msg.DeliveredStatus = false

	var call entities.CallDetails
	if msg.CallDetails != nil {
		call = *msg.CallDetails
	}

	insertQuery := fmt.Sprintf(
		`INSERT INTO %s.%s (room_id, day, %s) VALUES %s%s`,
		c.Conf.DB.Keyspace, consts.ChatMessageTable, messageColumns,
		utilities.DBMultiValuePlaceholders(17), messageTTLClause(c.Conf.Chat.MessageTTL),
	)
	roomQuery := fmt.Sprintf(
		`UPDATE %s.%s SET days = days + ?, last_day = ?, last_activity = ? WHERE room_id = ?`,
		c.Conf.DB.Keyspace, consts.ChatRoomInfoTable,
	)
	markerQuery := fmt.Sprintf(
		`INSERT INTO %s.%s (user_id, kind, chat_room_id, message_id, day) VALUES %s`,
		c.Conf.DB.Keyspace, consts.UserMarkerTable, utilities.DBMultiValuePlaceholders(5),
	)

	batch := c.Db.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(
		insertQuery, roomID, day,
		messageID, msg.MessageType, msg.Sender, msg.Message, msg.ImageURL,
		call.CallType, call.CallDuration, call.CallRejectReason,
		msg.VoiceNoteURL, msg.VoiceNoteDuration,
		msg.ReadStatus, msg.DeliveredStatus,
		msg.UndeliveredMembers, msg.UnreadMembers, msg.TimeSent,
	)
	batch.Query(roomQuery, []int64{day}, day, msg.TimeSent.UnixMilli(), roomID)

	for _, member := range msg.UndeliveredMembers {
		batch.Query(markerQuery, member, consts.MarkerUndelivered, roomID, messageID, day)
	}
	for _, member := range msg.UnreadMembers {
		batch.Query(markerQuery, member, consts.MarkerUnread, roomID, messageID, day)
	}

	if err = c.Db.ExecuteBatch(batch); err != nil {
		return nil, 0, fmt.Errorf("failed to append message to room %s: %w", roomID, err)
	}

	return msg, day, nil
}

func (c *ChatRepo) GetMessage(ctx context.Context, roomID string, day int64, messageID string) (*entities.Message, error) {
	msgUUID, err := gocql.ParseUUID(messageID)
	if err != nil {
		return nil, fmt.Errorf("invalid message id %s: %w", messageID, err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM %s.%s WHERE room_id = ? AND day = ? AND message_id = ?`,
		messageColumns, c.Conf.DB.Keyspace, consts.ChatMessageTable,
	)

	msg, err := scanMessage(c.Db.Query(query, roomID, day, msgUUID).WithContext(ctx).Scan)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to fetch message %s: %w", messageID, err)
	}

	return msg, nil
}

func (c *ChatRepo) GetLatestMessage(ctx context.Context, roomID string) (*entities.Message, error) {
	room, err := c.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.LastDay == 0 {
		return nil, ErrMessageNotFound
	}

	query := fmt.Sprintf(
		`SELECT %s FROM %s.%s WHERE room_id = ? AND day = ? ORDER BY message_id DESC LIMIT 1`,
		messageColumns, c.Conf.DB.Keyspace, consts.ChatMessageTable,
	)

	msg, err := scanMessage(c.Db.Query(query, roomID, room.LastDay).WithContext(ctx).Scan)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to fetch latest message of room %s: %w", roomID, err)
	}

	return msg, nil
}

// MarkDelivered drops memberIDs from the message's undelivered set and the
// matching user markers. Returns the updated message and whether this call
// emptied the set; re-marking removed members changes nothing and can never
// report the transition again.
func (c *ChatRepo) MarkDelivered(ctx context.Context, roomID string, day int64, messageID string, memberIDs []string) (*entities.Message, bool, error) {
	msg, err := c.GetMessage(ctx, roomID, day, messageID)
	if err != nil {
		return nil, false, err
	}

	drop := utilities.SliceToMap(memberIDs)
	remaining := make([]string, 0, len(msg.UndeliveredMembers))
	var removed []string
	for _, member := range msg.UndeliveredMembers {
		if drop[member] {
			removed = append(removed, member)
			continue
		}
		remaining = append(remaining, member)
	}

	if len(removed) == 0 {
		return msg, false, nil
	}

	transitioned := len(remaining) == 0 && !msg.DeliveredStatus

	msgUUID, _ := gocql.ParseUUID(messageID)
	updateQuery := fmt.Sprintf(
		`UPDATE %s.%s SET undelivered_members = ?, delivered_status = ? WHERE room_id = ? AND day = ? AND message_id = ?`,
		c.Conf.DB.Keyspace, consts.ChatMessageTable,
	)
	markerQuery := fmt.Sprintf(
		`DELETE FROM %s.%s WHERE user_id = ? AND kind = ? AND chat_room_id = ? AND message_id = ?`,
		c.Conf.DB.Keyspace, consts.UserMarkerTable,
	)

	batch := c.Db.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(updateQuery, remaining, len(remaining) == 0, roomID, day, msgUUID)
	for _, member := range removed {
		batch.Query(markerQuery, member, consts.MarkerUndelivered, roomID, msgUUID)
	}

	if err = c.Db.ExecuteBatch(batch); err != nil {
		return nil, false, fmt.Errorf("failed to mark message %s delivered: %w", messageID, err)
	}

	msg.UndeliveredMembers = remaining
	msg.DeliveredStatus = len(remaining) == 0

	return msg, transitioned, nil
}

// MarkRead is the read-side twin of MarkDelivered for a single user
func (c *ChatRepo) MarkRead(ctx context.Context, roomID string, day int64, messageID, userID string) (*entities.Message, bool, error) {
	msg, err := c.GetMessage(ctx, roomID, day, messageID)
	if err != nil {
		return nil, false, err
	}

	if !utilities.ContainsString(msg.UnreadMembers, userID) {
		return msg, false, nil
	}

	remaining := utilities.RemoveString(msg.UnreadMembers, userID)
	transitioned := len(remaining) == 0 && !msg.ReadStatus

	msgUUID, _ := gocql.ParseUUID(messageID)
	updateQuery := fmt.Sprintf(
		`UPDATE %s.%s SET unread_members = ?, read_status = ? WHERE room_id = ? AND day = ? AND message_id = ?`,
		c.Conf.DB.Keyspace, consts.ChatMessageTable,
	)
	markerQuery := fmt.Sprintf(
		`DELETE FROM %s.%s WHERE user_id = ? AND kind = ? AND chat_room_id = ? AND message_id = ?`,
		c.Conf.DB.Keyspace, consts.UserMarkerTable,
	)

	batch := c.Db.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(updateQuery, remaining, len(remaining) == 0, roomID, day, msgUUID)
	batch.Query(markerQuery, userID, consts.MarkerUnread, roomID, msgUUID)

	if err = c.Db.ExecuteBatch(batch); err != nil {
		return nil, false, fmt.Errorf("failed to mark message %s read: %w", messageID, err)
	}

	msg.UnreadMembers = remaining
	msg.ReadStatus = len(remaining) == 0

	return msg, transitioned, nil
}

// ClearRoom empties the room's history and strips every member's markers
// for it
func (c *ChatRepo) ClearRoom(ctx context.Context, roomID string) error {
	room, err := c.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	days, err := c.roomDays(ctx, roomID)
	if err != nil {
		return err
	}

	messageQuery := fmt.Sprintf(
		`DELETE FROM %s.%s WHERE room_id = ? AND day = ?`,
		c.Conf.DB.Keyspace, consts.ChatMessageTable,
	)
	markerQuery := fmt.Sprintf(
		`DELETE FROM %s.%s WHERE user_id = ? AND kind = ? AND chat_room_id = ?`,
		c.Conf.DB.Keyspace, consts.UserMarkerTable,
	)
	roomQuery := fmt.Sprintf(
		`UPDATE %s.%s SET days = ?, last_day = ? WHERE room_id = ?`,
		c.Conf.DB.Keyspace, consts.ChatRoomInfoTable,
	)

	batch := c.Db.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for _, day := range days {
		batch.Query(messageQuery, roomID, day)
	}
	for _, member := range room.Members {
		batch.Query(markerQuery, member, consts.MarkerUnread, roomID)
		batch.Query(markerQuery, member, consts.MarkerUndelivered, roomID)
	}
	batch.Query(roomQuery, []int64{}, int64(0), roomID)

	if err = c.Db.ExecuteBatch(batch); err != nil {
		return fmt.Errorf("failed to clear chat room %s: %w", roomID, err)
	}

	return nil
}

func (c *ChatRepo) DeleteRoom(ctx context.Context, roomID string) error {
	if err := c.ClearRoom(ctx, roomID); err != nil {
		return err
	}

	query := fmt.Sprintf(
		`DELETE FROM %s.%s WHERE room_id = ?`,
		c.Conf.DB.Keyspace, consts.ChatRoomInfoTable,
	)

	if err := c.Db.Query(query, roomID).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("failed to delete chat room %s: %w", roomID, err)
	}

	return nil
}

func (c *ChatRepo) SetAlgoToken(ctx context.Context, roomID string, token *entities.AlgoToken) error {
	query := fmt.Sprintf(
		`UPDATE %s.%s SET token_module_address = ?, token_created_by = ?, token_created_at = ?, token_active = ? WHERE room_id = ?`,
		c.Conf.DB.Keyspace, consts.ChatRoomInfoTable,
	)

	err := c.Db.Query(
		query, token.ModuleAddress, token.CreatedBy, token.CreatedAt, token.IsActive, roomID,
	).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("failed to set group token on room %s: %w", roomID, err)
	}

	return nil
}
