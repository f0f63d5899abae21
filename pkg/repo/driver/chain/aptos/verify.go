package aptos

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// DecodeBytes normalizes a key or signature to raw bytes. Wallets hand the
// values over as hex (0x prefixed or bare) or base64/base64url, depending on
// the SDK version; all of them are accepted, nothing ever panics.
func DecodeBytes(in string) ([]byte, error) {
	s := strings.TrimSpace(in)
	if s == "" {
		return nil, fmt.Errorf("empty input")
	}

	hexPart := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if isHex(hexPart) {
		if len(hexPart)%2 == 1 {
			hexPart = "0" + hexPart
		}
		out, err := hex.DecodeString(hexPart)
		if err == nil {
			return out, nil
		}
	}

	// base64url to standard alphabet, re-pad
	b64 := strings.ReplaceAll(strings.ReplaceAll(s, "-", "+"), "_", "/")
	if m := len(b64) % 4; m != 0 {
		b64 += strings.Repeat("=", 4-m)
	}

	out, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("input is neither hex nor base64: %w", err)
	}

	return out, nil
}

// VerifyEd25519Flexible verifies sig over the exact UTF-8 bytes of message.
// The caller includes any domain separation prefix in message itself. Fails
// closed on malformed input. Pure, safe for concurrent use.
func VerifyEd25519Flexible(publicKey, signature, message string) bool {
	pub, err := DecodeBytes(publicKey)
	if err != nil {
		return false
	}

	sig, err := DecodeBytes(signature)
	if err != nil {
		return false
	}

	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}

	return ed25519.Verify(ed25519.PublicKey(pub), []byte(message), sig)
}
