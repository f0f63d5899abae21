package usecases

import (
	"context"
	"testing"

	"aptchat/pkg/consts"
	"aptchat/pkg/entities"
	"aptchat/utilities"
)

func newTokenFixture(t *testing.T) (*fakeChatRepo, TokenUseCaseImply, string) {
	t.Helper()

	chats := newFakeChatRepo()
	room := &entities.ChatRoom{
		RoomType: consts.RoomTypeGroup,
		Name:     "crew",
		Members:  []string{"alice", "bob"},
	}
	if err := chats.CreateRoom(context.Background(), room); err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}

	return chats, NewTokenUseCases(chats, nil), room.RoomID
}

func TestInitializeTokenGuards(t *testing.T) {
	ctx := context.Background()
	chats, uc, roomID := newTokenFixture(t)

	if _, err := uc.InitializeToken(ctx, "alice", &entities.TokenInitRequest{}); err != ErrMissingFields {
		t.Errorf("empty room id error = %v, want ErrMissingFields", err)
	}
	if _, err := uc.InitializeToken(ctx, "alice", &entities.TokenInitRequest{GroupChatID: "nope"}); err != ErrNotFound {
		t.Errorf("unknown room error = %v, want ErrNotFound", err)
	}
	if _, err := uc.InitializeToken(ctx, "mallory", &entities.TokenInitRequest{GroupChatID: roomID}); err != ErrNotFound {
		t.Errorf("non-member error = %v, want ErrNotFound", err)
	}

	// a live token blocks a second initialization
	err := chats.SetAlgoToken(ctx, roomID, &entities.AlgoToken{
		ModuleAddress: "0xdeployer",
		CreatedBy:     "alice",
		CreatedAt:     utilities.TimeNow(),
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("SetAlgoToken() error = %v", err)
	}
	if _, err = uc.InitializeToken(ctx, "alice", &entities.TokenInitRequest{GroupChatID: roomID}); err != ErrConflict {
		t.Errorf("active token error = %v, want ErrConflict", err)
	}
}

func TestConfirmTokenGuards(t *testing.T) {
	ctx := context.Background()
	_, uc, roomID := newTokenFixture(t)

	if err := uc.ConfirmToken(ctx, "alice", &entities.TokenConfirmRequest{GroupChatID: roomID}); err != ErrMissingFields {
		t.Errorf("missing tx hash error = %v, want ErrMissingFields", err)
	}
	if err := uc.ConfirmToken(ctx, "mallory", &entities.TokenConfirmRequest{GroupChatID: roomID, TxHash: "0xabc"}); err != ErrNotFound {
		t.Errorf("non-member error = %v, want ErrNotFound", err)
	}
}

func TestTokenStatusInactiveRoom(t *testing.T) {
	ctx := context.Background()
	_, uc, roomID := newTokenFixture(t)

	status, err := uc.TokenStatus(ctx, roomID)
	if err != nil {
		t.Fatalf("TokenStatus() error = %v", err)
	}
	if status.IsActive {
		t.Error("room without a token reported active status")
	}

	if _, err = uc.TokenStatus(ctx, "nope"); err != ErrNotFound {
		t.Errorf("unknown room error = %v, want ErrNotFound", err)
	}
}
