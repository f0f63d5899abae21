package entities

import "time"

// AlgoToken is the group-token sub-record on a chat room
type AlgoToken struct {
	ModuleAddress string    `json:"module_address,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	IsActive      bool      `json:"is_active"`
}

type TokenInitRequest struct {
	GroupChatID string `json:"group_chat_id"`
}

type TokenConfirmRequest struct {
	GroupChatID string `json:"group_chat_id"`
	TxHash      string `json:"tx_hash"`
}

// EntryFunctionPayload is the Move call handed back to the wallet for signing
type EntryFunctionPayload struct {
	Function          string   `json:"function"`
	TypeArguments     []string `json:"typeArguments"`
	FunctionArguments []string `json:"functionArguments"`
}

type TokenStatus struct {
	IsActive      bool   `json:"is_active"`
	ModuleAddress string `json:"module_address,omitempty"`
	Price         string `json:"price,omitempty"`
	SlipReserve   string `json:"slip_reserve,omitempty"`
	PegReserve    string `json:"peg_reserve,omitempty"`
}
