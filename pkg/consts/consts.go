package consts

const (
	AppName = "aptchat"

	// gin context keys
	UserID        = "user_id"
	UserAddress   = "user_address"
	UserPublicKey = "user_public_key"
	UserToken     = "user_token"

	AuthCookieName = "auth_token"
)

// table names
const (
	UserInfoTable     = "user_info"
	UserContactsTable = "user_contacts"
	UserMarkerTable   = "user_marker"
	ChatRoomInfoTable = "chat_room_info"
	ChatMessageTable  = "chat_message"
)

// room types
const (
	RoomTypePrivate = "Private"
	RoomTypeGroup   = "Group"
)

// message types
const (
	MessageTypeText      = "text"
	MessageTypeImage     = "image"
	MessageTypeCall      = "call"
	MessageTypeVoiceNote = "voiceNote"
)

// marker kinds on the user_marker table
const (
	MarkerUnread      = "unread"
	MarkerUndelivered = "undelivered"
)

// websocket event kinds, client -> server
const (
	WSKindChat      = "chat"
	WSKindDelivered = "delivered"
	WSKindSeen      = "seen"
	WSKindStatus    = "status"
)

// websocket event names, server -> room members
const (
	EventMessageDelivered = "user:messageDelivered"
	EventMessageRead      = "user:messageReadByAllMembers"
	EventMessageAck       = "user:messageAck"
	EventUserStatus       = "user:status"
	EventNewMessage       = "user:newMessage"
)
