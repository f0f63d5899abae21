package cache

import (
	"testing"
	"time"
)

func TestNonceRegistry_ConsumeOnce(t *testing.T) {
	registry := NewNonceRegistry(5 * time.Minute)

	nonce, err := registry.Issue("0xABC")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if !registry.Consume("0xabc", nonce) {
		t.Fatal("Consume() rejected a freshly issued nonce")
	}

	if registry.Consume("0xabc", nonce) {
		t.Error("Consume() accepted a replayed nonce")
	}
}

func TestNonceRegistry_MismatchBurnsEntry(t *testing.T) {
	registry := NewNonceRegistry(5 * time.Minute)

	nonce, _ := registry.Issue("0xabc")

	if registry.Consume("0xabc", "deadbeef") {
		t.Fatal("Consume() accepted a mismatched nonce")
	}

	// an attempted use deletes the entry, the real value no longer works
	if registry.Consume("0xabc", nonce) {
		t.Error("Consume() accepted a nonce after a failed attempt on the same key")
	}
}

func TestNonceRegistry_SelfKeyed(t *testing.T) {
	registry := NewNonceRegistry(5 * time.Minute)

	nonce, err := registry.Issue("")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if !registry.Consume("0xnew-address", nonce) {
		t.Fatal("Consume() could not find the self-keyed entry")
	}

	if registry.Consume("0xnew-address", nonce) {
		t.Error("Consume() accepted a replayed self-keyed nonce")
	}
}

func TestNonceRegistry_Expiry(t *testing.T) {
	registry := NewNonceRegistry(20 * time.Millisecond)

	nonce, _ := registry.Issue("0xabc")

	time.Sleep(50 * time.Millisecond)

	if registry.Consume("0xabc", nonce) {
		t.Error("Consume() accepted an expired nonce")
	}
}

func TestNonceRegistry_UnknownKey(t *testing.T) {
	registry := NewNonceRegistry(5 * time.Minute)

	if registry.Consume("0xabc", "anything") {
		t.Error("Consume() accepted a nonce that was never issued")
	}
	if registry.Consume("0xabc", "") {
		t.Error("Consume() accepted an empty nonce")
	}
}
