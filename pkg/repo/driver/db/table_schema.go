package db

import "aptchat/pkg/consts"

var dbTableSchemas = map[string]string{
	consts.UserInfoTable:     userInfoSchema,
	consts.UserContactsTable: userContactsSchema,
	consts.UserMarkerTable:   userMarkerSchema,
	consts.ChatRoomInfoTable: chatRoomInfoSchema,
	consts.ChatMessageTable:  chatMessageSchema,
}

// secondary indexes are created after every table exists
var dbIndexSchemas = map[string]string{
	"user_info_by_address":  userInfoAddressIndex,
	"user_info_by_username": userInfoUsernameIndex,
}

var userInfoSchema = `
CREATE TABLE IF NOT EXISTS %s.user_info (
user_id varchar,
username varchar,
aptos_address varchar,
aptos_public_key varchar,
avatar varchar,
bio varchar,
status varchar,
chat_rooms set<text>,
pinned_chat_rooms set<text>,
fcm_tokens set<text>,
joined timestamp,
PRIMARY KEY (user_id)
)
`

var userInfoAddressIndex = `
CREATE INDEX IF NOT EXISTS user_info_by_address ON %s.user_info (aptos_address)
`

var userInfoUsernameIndex = `
CREATE INDEX IF NOT EXISTS user_info_by_username ON %s.user_info (username)
`

var userContactsSchema = `
CREATE TABLE IF NOT EXISTS %s.user_contacts (
user_id varchar,
contact_id varchar,
name varchar,
chat_room_id varchar,
PRIMARY KEY (user_id, contact_id)
)
`

// inverse index of the per-message member sets, one row per pending
// delivery/read of one message for one user
var userMarkerSchema = `
CREATE TABLE IF NOT EXISTS %s.user_marker (
user_id varchar,
kind varchar,
chat_room_id varchar,
message_id timeuuid,
day bigint,
PRIMARY KEY (user_id, kind, chat_room_id, message_id)
)
`

var chatRoomInfoSchema = `
CREATE TABLE IF NOT EXISTS %s.chat_room_info (
room_id varchar,
room_type varchar,
name varchar,
members set<text>,
days set<bigint>,
created timestamp,
last_day bigint,
last_activity bigint,
token_module_address varchar,
token_created_by varchar,
token_created_at timestamp,
token_active boolean,
PRIMARY KEY (room_id)
)
`

// partition per room per day keeps a day bucket one contiguous read;
// timeuuid clustering preserves append order inside the bucket
var chatMessageSchema = `
CREATE TABLE IF NOT EXISTS %s.chat_message (
room_id varchar,
day bigint,
message_id timeuuid,
message_type varchar,
sender varchar,
message varchar,
image_url varchar,
call_type varchar,
call_duration varchar,
call_reject_reason varchar,
voice_note_url varchar,
voice_note_duration varchar,
read_status boolean,
delivered_status boolean,
undelivered_members set<text>,
unread_members set<text>,
sent_time timestamp,
PRIMARY KEY ((room_id, day), message_id)
) WITH CLUSTERING ORDER BY (message_id ASC)
`
