package usecases

import (
	"context"
	"testing"

	"aptchat/pkg/cache"
	"aptchat/pkg/consts"
	"aptchat/pkg/entities"
)

func newContactsFixture() (*fakeChatRepo, *fakeUserRepo, ContactsUseCaseImply) {
	chats := newFakeChatRepo()
	users := newFakeUserRepo()
	users.users["alice"] = &entities.UserModel{UserID: "alice", Username: "alice"}
	users.users["bob"] = &entities.UserModel{UserID: "bob", Username: "bob"}
	return chats, users, NewContactsUseCases(users, chats)
}

func TestAddContactCreatesPrivateRoom(t *testing.T) {
	ctx := context.Background()
	chats, users, uc := newContactsFixture()

	contact, err := uc.AddContact(ctx, "alice", &entities.ContactRequest{Username: "bob", Name: "Bobby"})
	if err != nil {
		t.Fatalf("AddContact() error = %v", err)
	}
	if contact.Name != "Bobby" || contact.Details == nil || contact.Details.UserID != "bob" {
		t.Fatalf("AddContact() = %+v, want Bobby/bob", contact)
	}

	room, err := chats.GetRoom(ctx, contact.ChatRoomID)
	if err != nil {
		t.Fatalf("private room was not created: %v", err)
	}
	if room.RoomType != consts.RoomTypePrivate || len(room.Members) != 2 {
		t.Errorf("room = %+v, want private room with both members", room)
	}

	for _, userID := range []string{"alice", "bob"} {
		if len(users.users[userID].ChatRooms) != 1 {
			t.Errorf("room not attached to %s", userID)
		}
	}
}

func TestAddContactReusesReverseRoom(t *testing.T) {
	ctx := context.Background()
	_, _, uc := newContactsFixture()

	first, err := uc.AddContact(ctx, "alice", &entities.ContactRequest{Username: "bob"})
	if err != nil {
		t.Fatalf("AddContact() error = %v", err)
	}

	second, err := uc.AddContact(ctx, "bob", &entities.ContactRequest{Username: "alice"})
	if err != nil {
		t.Fatalf("reverse AddContact() error = %v", err)
	}

	if first.ChatRoomID != second.ChatRoomID {
		t.Errorf("pair got two rooms: %s vs %s", first.ChatRoomID, second.ChatRoomID)
	}
}

func TestAddContactRejections(t *testing.T) {
	ctx := context.Background()
	_, _, uc := newContactsFixture()

	if _, err := uc.AddContact(ctx, "alice", &entities.ContactRequest{}); err != ErrMissingFields {
		t.Errorf("empty username error = %v, want ErrMissingFields", err)
	}
	if _, err := uc.AddContact(ctx, "alice", &entities.ContactRequest{Username: "nobody"}); err != ErrNotFound {
		t.Errorf("unknown username error = %v, want ErrNotFound", err)
	}
	if _, err := uc.AddContact(ctx, "alice", &entities.ContactRequest{Username: "alice"}); err != ErrConflict {
		t.Errorf("self add error = %v, want ErrConflict", err)
	}

	if _, err := uc.AddContact(ctx, "alice", &entities.ContactRequest{Username: "bob"}); err != nil {
		t.Fatalf("AddContact() error = %v", err)
	}
	if _, err := uc.AddContact(ctx, "alice", &entities.ContactRequest{Username: "bob"}); err != ErrConflict {
		t.Errorf("duplicate add error = %v, want ErrConflict", err)
	}
}

func TestAddContactConflictFromWarmCache(t *testing.T) {
	ctx := context.Background()
	_, _, uc := newContactsFixture()

	cache.UserContactsCache = cache.NewUserContactsCache()
	t.Cleanup(func() { cache.UserContactsCache = nil })

	cache.UserContactsCache.AddUserContactsCache("alice", "bob")

	if _, err := uc.AddContact(ctx, "alice", &entities.ContactRequest{Username: "bob"}); err != ErrConflict {
		t.Errorf("cached pair error = %v, want ErrConflict", err)
	}
}

func TestRemoveContactTearsDownOrphanRoom(t *testing.T) {
	ctx := context.Background()
	chats, _, uc := newContactsFixture()

	contact, err := uc.AddContact(ctx, "alice", &entities.ContactRequest{Username: "bob"})
	if err != nil {
		t.Fatalf("AddContact() error = %v", err)
	}
	if _, err = uc.AddContact(ctx, "bob", &entities.ContactRequest{Username: "alice"}); err != nil {
		t.Fatalf("reverse AddContact() error = %v", err)
	}

	// bob still keeps alice, so the room survives
	if err = uc.RemoveContact(ctx, "alice", "bob"); err != nil {
		t.Fatalf("RemoveContact() error = %v", err)
	}
	if _, err = chats.GetRoom(ctx, contact.ChatRoomID); err != nil {
		t.Fatalf("room torn down while reverse contact exists: %v", err)
	}

	// last reference drops the room
	if err = uc.RemoveContact(ctx, "bob", "alice"); err != nil {
		t.Fatalf("RemoveContact() error = %v", err)
	}
	if _, err = chats.GetRoom(ctx, contact.ChatRoomID); err == nil {
		t.Error("orphaned room was not deleted")
	}

	if err = uc.RemoveContact(ctx, "alice", "bob"); err != ErrNotFound {
		t.Errorf("removing absent contact error = %v, want ErrNotFound", err)
	}
}
