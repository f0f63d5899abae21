package entities

import "time"

type ChatRoom struct {
	RoomID       string      `json:"chat_room_id,omitempty"`
	RoomType     string      `json:"room_type,omitempty"`
	Name         string      `json:"name,omitempty"`
	Members      []string    `json:"members,omitempty"`
	Created      time.Time   `json:"created,omitempty"`
	LastDay      int64       `json:"last_day,omitempty"`
	LastActivity int64       `json:"last_activity,omitempty"`
	AlgoToken    *AlgoToken  `json:"algo_token,omitempty"`
	History      []DayBucket `json:"message_history,omitempty"`
}

// DayBucket groups a room's messages by calendar day. Buckets are append
// only; the last one is the active day.
type DayBucket struct {
	Day      int64      `json:"day"`
	Messages []*Message `json:"messages"`
}

type CallDetails struct {
	CallType         string `json:"call_type,omitempty"`
	CallDuration     string `json:"call_duration,omitempty"`
	CallRejectReason string `json:"call_reject_reason,omitempty"`
}

type Message struct {
	MessageID          string       `json:"message_id,omitempty"`
	MessageType        string       `json:"message_type"`
	Sender             string       `json:"sender"`
	Message            string       `json:"message,omitempty"`
	ImageURL           string       `json:"image_url,omitempty"`
	CallDetails        *CallDetails `json:"call_details,omitempty"`
	VoiceNoteURL       string       `json:"voice_note_url,omitempty"`
	VoiceNoteDuration  string       `json:"voice_note_duration,omitempty"`
	ReadStatus         bool         `json:"read_status"`
	DeliveredStatus    bool         `json:"delivered_status"`
	UndeliveredMembers []string     `json:"undelivered_members,omitempty"`
	UnreadMembers      []string     `json:"unread_members,omitempty"`
	TimeSent           time.Time    `json:"time_sent"`
}

type GroupCreateRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type RoomSummary struct {
	ChatRoomID    string       `json:"chat_room_id"`
	RoomType      string       `json:"room_type"`
	Name          string       `json:"name,omitempty"`
	Pinned        bool         `json:"pinned"`
	UnreadCount   int          `json:"unread_messages_count"`
	LatestMessage *Message     `json:"latest_message,omitempty"`
	Profile       *UserProfile `json:"profile,omitempty"`
	ContactName   string       `json:"contact_name,omitempty"`
}

// RoomEvent is the fan-out payload for delivery/read transitions
type RoomEvent struct {
	Event      string `json:"event"`
	MessageID  string `json:"message_id"`
	SenderID   string `json:"sender_id"`
	ChatRoomID string `json:"chat_room_id"`
	Day        int64  `json:"day"`
}

type UserStatus struct {
	Event  string `json:"event"`
	User   string `json:"user"`
	Online bool   `json:"online"`
}
