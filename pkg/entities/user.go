package entities

import "time"

type UserModel struct {
	UserID         string    `json:"user_id,omitempty"`
	Username       string    `json:"username,omitempty"`
	AptosAddress   string    `json:"aptos_address,omitempty"`
	AptosPublicKey string    `json:"aptos_public_key,omitempty"`
	Avatar         string    `json:"avatar,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Status         string    `json:"status,omitempty"`
	ChatRooms      []string  `json:"chat_rooms,omitempty"`
	PinnedRooms    []string  `json:"pinned_chat_rooms,omitempty"`
	FCMTokens      []string  `json:"-"`
	Joined         time.Time `json:"joined,omitempty"`
}

type UserProfile struct {
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Status   string `json:"status,omitempty"`
}

type ProfileUpdateRequest struct {
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Status   string `json:"status,omitempty"`
}

type Contact struct {
	Name       string       `json:"name,omitempty"`
	ChatRoomID string       `json:"chat_room_id,omitempty"`
	Details    *UserProfile `json:"contact_details,omitempty"`
}

type ContactRequest struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username"`
}
