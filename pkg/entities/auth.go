package entities

type NonceRequest struct {
	Address string `json:"address,omitempty"`
}

type NonceResponse struct {
	Nonce string `json:"nonce"`
}

type VerifyRequest struct {
	Address     string `json:"address"`
	PublicKey   string `json:"public_key"`
	Signature   string `json:"signature"`
	Message     string `json:"message,omitempty"`
	FullMessage string `json:"full_message,omitempty"`
	Nonce       string `json:"nonce"`
}

// SignedMessage returns whichever message field the wallet populated
func (r *VerifyRequest) SignedMessage() string {
	if r.FullMessage != "" {
		return r.FullMessage
	}
	return r.Message
}

type VerifyResponse struct {
	OK     bool   `json:"ok"`
	UserID string `json:"user_id"`
}
