package usecases

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"aptchat/pkg/cache"
	"aptchat/pkg/entities"
	"aptchat/pkg/repo"
	"aptchat/utilities/jwt"
)

// fakeUserRepo is an in-memory stand-in for the Cassandra-backed user repo
type fakeUserRepo struct {
	users    map[string]*entities.UserModel
	contacts map[string]map[string]contactEntry
	nextID   int
}

type contactEntry struct {
	name   string
	roomID string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    map[string]*entities.UserModel{},
		contacts: map[string]map[string]contactEntry{},
	}
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID string) (*entities.UserModel, error) {
	if user, ok := f.users[userID]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, repo.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByAddress(_ context.Context, address string) (*entities.UserModel, error) {
	for _, user := range f.users {
		if user.AptosAddress == address {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repo.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*entities.UserModel, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repo.ErrUserNotFound
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *entities.UserModel) error {
	f.nextID++
	user.UserID = fmt.Sprintf("user-%d", f.nextID)
	copied := *user
	f.users[user.UserID] = &copied
	return nil
}

func (f *fakeUserRepo) UpdatePublicKey(_ context.Context, userID, publicKey string) error {
	user, ok := f.users[userID]
	if !ok {
		return repo.ErrUserNotFound
	}
	user.AptosPublicKey = publicKey
	return nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, userID string, update *entities.ProfileUpdateRequest) (*entities.UserModel, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	if update.Username != "" {
		user.Username = update.Username
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}
	if update.Bio != "" {
		user.Bio = update.Bio
	}
	if update.Status != "" {
		user.Status = update.Status
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) AddRoomToUsers(_ context.Context, roomID string, userIDs []string) error {
	for _, id := range userIDs {
		if user, ok := f.users[id]; ok {
			user.ChatRooms = append(user.ChatRooms, roomID)
		}
	}
	return nil
}

func (f *fakeUserRepo) RemoveRoomFromUsers(_ context.Context, roomID string, userIDs []string) error {
	for _, id := range userIDs {
		user, ok := f.users[id]
		if !ok {
			continue
		}
		var kept []string
		for _, room := range user.ChatRooms {
			if room != roomID {
				kept = append(kept, room)
			}
		}
		user.ChatRooms = kept
	}
	return nil
}

func (f *fakeUserRepo) PinRoom(_ context.Context, userID, roomID string) ([]string, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	for _, pinned := range user.PinnedRooms {
		if pinned == roomID {
			return user.PinnedRooms, nil
		}
	}
	user.PinnedRooms = append(user.PinnedRooms, roomID)
	return user.PinnedRooms, nil
}

func (f *fakeUserRepo) UnpinRoom(_ context.Context, userID, roomID string) ([]string, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	var kept []string
	for _, pinned := range user.PinnedRooms {
		if pinned != roomID {
			kept = append(kept, pinned)
		}
	}
	user.PinnedRooms = kept
	return user.PinnedRooms, nil
}

func (f *fakeUserRepo) GetContacts(ctx context.Context, userID string) ([]*entities.Contact, error) {
	var out []*entities.Contact
	for contactID, entry := range f.contacts[userID] {
		contact := &entities.Contact{Name: entry.name, ChatRoomID: entry.roomID}
		if details, err := f.GetUserByID(ctx, contactID); err == nil {
			contact.Details = &entities.UserProfile{
				UserID:   details.UserID,
				Username: details.Username,
				Avatar:   details.Avatar,
				Bio:      details.Bio,
				Status:   details.Status,
			}
		}
		out = append(out, contact)
	}
	return out, nil
}

func (f *fakeUserRepo) AddContact(_ context.Context, userID, contactID, name, roomID string) error {
	if f.contacts[userID] == nil {
		f.contacts[userID] = map[string]contactEntry{}
	}
	f.contacts[userID][contactID] = contactEntry{name: name, roomID: roomID}
	return nil
}

func (f *fakeUserRepo) RemoveContact(ctx context.Context, userID, contactID string) (string, error) {
	roomID, err := f.ContactRoom(ctx, userID, contactID)
	if err != nil {
		return "", err
	}
	delete(f.contacts[userID], contactID)
	return roomID, nil
}

func (f *fakeUserRepo) ContactRoom(_ context.Context, userID, contactID string) (string, error) {
	if entry, ok := f.contacts[userID][contactID]; ok {
		return entry.roomID, nil
	}
	return "", repo.ErrUserNotFound
}

func (f *fakeUserRepo) UnreadCount(_ context.Context, userID, roomID string) (int, error) {
	return 0, nil
}

func (f *fakeUserRepo) GetFCMTokens(_ context.Context, userID string) ([]string, error) {
	return nil, nil
}

type wallet struct {
	address   string
	publicKey ed25519.PublicKey
	private   ed25519.PrivateKey
}

func newWallet(t *testing.T) wallet {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}

	return wallet{
		address:   "0x" + hex.EncodeToString(pub)[:40],
		publicKey: pub,
		private:   priv,
	}
}

func (w wallet) sign(message string) string {
	return hex.EncodeToString(ed25519.Sign(w.private, []byte(message)))
}

func TestVerifyLoginHandshake(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	auth := NewAuthUseCases(users, cache.NewNonceRegistry(5*time.Minute), time.Hour)

	w := newWallet(t)

	nonce, err := auth.RequestNonce(ctx, w.address)
	if err != nil {
		t.Fatalf("RequestNonce() error = %v", err)
	}

	message := "APTOS\nmessage: login\nnonce: " + nonce
	request := &entities.VerifyRequest{
		Address:     w.address,
		PublicKey:   "0x" + hex.EncodeToString(w.publicKey),
		Signature:   w.sign(message),
		FullMessage: message,
		Nonce:       nonce,
	}

	token, ttl, userID, err := auth.VerifyLogin(ctx, request)
	if err != nil {
		t.Fatalf("VerifyLogin() error = %v", err)
	}
	if token == "" || userID == "" {
		t.Fatalf("VerifyLogin() returned empty token or user id")
	}
	if ttl != 3600 {
		t.Errorf("VerifyLogin() ttl = %d, want 3600", ttl)
	}

	claims, err := jwt.VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT() error = %v", err)
	}
	if claims["user_id"] != userID {
		t.Errorf("token user_id = %v, want %s", claims["user_id"], userID)
	}
	if claims["address"] != w.address {
		t.Errorf("token address = %v, want %s", claims["address"], w.address)
	}

	user, err := users.GetUserByAddress(ctx, w.address)
	if err != nil {
		t.Fatalf("user was not created: %v", err)
	}
	if user.Username == "" {
		t.Error("created user has no derived username")
	}

	// same nonce must not verify twice
	if _, _, _, err = auth.VerifyLogin(ctx, request); err != ErrNonceInvalid {
		t.Errorf("replayed VerifyLogin() error = %v, want ErrNonceInvalid", err)
	}
}

func TestVerifyLoginSignatureEncodings(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name   string
		encode func(sig []byte) string
	}{
		{"hex", func(sig []byte) string { return hex.EncodeToString(sig) }},
		{"0x hex", func(sig []byte) string { return "0x" + hex.EncodeToString(sig) }},
		{"base64", func(sig []byte) string { return base64.StdEncoding.EncodeToString(sig) }},
		{"base64url", func(sig []byte) string { return base64.RawURLEncoding.EncodeToString(sig) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			auth := NewAuthUseCases(newFakeUserRepo(), cache.NewNonceRegistry(5*time.Minute), time.Hour)
			w := newWallet(t)

			nonce, _ := auth.RequestNonce(ctx, w.address)
			message := "login with nonce " + nonce

			_, _, _, err := auth.VerifyLogin(ctx, &entities.VerifyRequest{
				Address:   w.address,
				PublicKey: hex.EncodeToString(w.publicKey),
				Signature: tc.encode(ed25519.Sign(w.private, []byte(message))),
				Message:   message,
				Nonce:     nonce,
			})
			if err != nil {
				t.Errorf("VerifyLogin() error = %v", err)
			}
		})
	}
}

func TestVerifyLoginRejections(t *testing.T) {
	ctx := context.Background()
	w := newWallet(t)

	tests := []struct {
		name    string
		mutate  func(r *entities.VerifyRequest)
		wantErr error
	}{
		{
			name:    "missing signature",
			mutate:  func(r *entities.VerifyRequest) { r.Signature = "" },
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing message",
			mutate:  func(r *entities.VerifyRequest) { r.Message, r.FullMessage = "", "" },
			wantErr: ErrMissingFields,
		},
		{
			name:    "unknown nonce",
			mutate:  func(r *entities.VerifyRequest) { r.Nonce = "deadbeef" },
			wantErr: ErrNonceInvalid,
		},
		{
			name:    "tampered message",
			mutate:  func(r *entities.VerifyRequest) { r.Message = r.Message + "!" },
			wantErr: ErrBadSignature,
		},
		{
			name: "signature from another key",
			mutate: func(r *entities.VerifyRequest) {
				other := wallet{}
				_, other.private, _ = ed25519.GenerateKey(rand.Reader)
				r.Signature = other.sign(r.Message)
			},
			wantErr: ErrBadSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewAuthUseCases(newFakeUserRepo(), cache.NewNonceRegistry(5*time.Minute), time.Hour)

			nonce, _ := auth.RequestNonce(ctx, w.address)
			message := "login with nonce " + nonce

			request := &entities.VerifyRequest{
				Address:   w.address,
				PublicKey: hex.EncodeToString(w.publicKey),
				Signature: w.sign(message),
				Message:   message,
				Nonce:     nonce,
			}
			tt.mutate(request)

			if _, _, _, err := auth.VerifyLogin(ctx, request); err != tt.wantErr {
				t.Errorf("VerifyLogin() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyLoginRotatesPublicKey(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	auth := NewAuthUseCases(users, cache.NewNonceRegistry(5*time.Minute), time.Hour)

	w := newWallet(t)
	login := func(pub ed25519.PublicKey, priv ed25519.PrivateKey) string {
		nonce, _ := auth.RequestNonce(ctx, w.address)
		message := "login with nonce " + nonce
		_, _, userID, err := auth.VerifyLogin(ctx, &entities.VerifyRequest{
			Address:   w.address,
			PublicKey: hex.EncodeToString(pub),
			Signature: hex.EncodeToString(ed25519.Sign(priv, []byte(message))),
			Message:   message,
			Nonce:     nonce,
		})
		if err != nil {
			t.Fatalf("VerifyLogin() error = %v", err)
		}
		return userID
	}

	firstID := login(w.publicKey, w.private)

	rotatedPub, rotatedPriv, _ := ed25519.GenerateKey(rand.Reader)
	secondID := login(rotatedPub, rotatedPriv)

	if firstID != secondID {
		t.Fatalf("key rotation created a second user: %s vs %s", firstID, secondID)
	}

	user, _ := users.GetUserByAddress(ctx, w.address)
	if user.AptosPublicKey != hex.EncodeToString(rotatedPub) {
		t.Errorf("stored public key was not rotated")
	}
}
