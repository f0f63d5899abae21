package usecases

import (
	"context"
	"errors"

	"aptchat/pkg/cache"
	"aptchat/pkg/consts"
	"aptchat/pkg/entities"
	"aptchat/pkg/repo"
	"aptchat/utilities"
)

type ContactsUseCases struct {
	userRepo repo.UserRepoImply
	chatRepo repo.ChatRepoImply
}

type ContactsUseCaseImply interface {
	GetContacts(ctx context.Context, userID string) ([]*entities.Contact, error)
	AddContact(ctx context.Context, userID string, request *entities.ContactRequest) (*entities.Contact, error)
	RemoveContact(ctx context.Context, userID, contactUsername string) error
}

func NewContactsUseCases(userRepo repo.UserRepoImply, chatRepo repo.ChatRepoImply) ContactsUseCaseImply {
	return &ContactsUseCases{userRepo: userRepo, chatRepo: chatRepo}
}

func (c *ContactsUseCases) GetContacts(ctx context.Context, userID string) ([]*entities.Contact, error) {
	return c.userRepo.GetContacts(ctx, userID)
}

// AddContact binds the pair to a private room. When the other side already
// added this user, the existing room is reused so both entries point at the
// same conversation.
func (c *ContactsUseCases) AddContact(ctx context.Context, userID string, request *entities.ContactRequest) (*entities.Contact, error) {
	log := utilities.NewLogger("AddContact")

	if request.Username == "" {
		return nil, ErrMissingFields
	}

	contact, err := c.userRepo.GetUserByUsername(ctx, request.Username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if contact.UserID == userID {
		return nil, ErrConflict
	}

	// warm cache answers the duplicate check without a store round-trip
	if cc := cache.UserContactsCache; cc != nil && cc.IsUserInContactsCache(userID, contact.UserID) {
		return nil, ErrConflict
	}

	if _, err = c.userRepo.ContactRoom(ctx, userID, contact.UserID); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		return nil, err
	}

	name := request.Name
	if name == "" {
		name = contact.Username
	}

	// reverse direction decides whether a room already exists for the pair
	roomID, err := c.userRepo.ContactRoom(ctx, contact.UserID, userID)
	if err != nil {
		if !errors.Is(err, repo.ErrUserNotFound) {
			return nil, err
		}

		room := &entities.ChatRoom{
			RoomType: consts.RoomTypePrivate,
			Members:  []string{userID, contact.UserID},
		}
		if err = c.chatRepo.CreateRoom(ctx, room); err != nil {
			return nil, err
		}
		if err = c.userRepo.AddRoomToUsers(ctx, room.RoomID, room.Members); err != nil {
			return nil, err
		}
		roomID = room.RoomID

		log.Debugf("created private room %s for users %s and %s", roomID, userID, contact.UserID)
	}

	if err = c.userRepo.AddContact(ctx, userID, contact.UserID, name, roomID); err != nil {
		return nil, err
	}

	return &entities.Contact{
		Name:       name,
		ChatRoomID: roomID,
		Details: &entities.UserProfile{
			UserID:   contact.UserID,
			Username: contact.Username,
			Avatar:   contact.Avatar,
			Bio:      contact.Bio,
			Status:   contact.Status,
		},
	}, nil
}

// RemoveContact drops the entry; the shared room is torn down only once
// neither side keeps the other as a contact
func (c *ContactsUseCases) RemoveContact(ctx context.Context, userID, contactUsername string) error {
	contact, err := c.userRepo.GetUserByUsername(ctx, contactUsername)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return ErrNotFound
		}
		return err
	}

	roomID, err := c.userRepo.RemoveContact(ctx, userID, contact.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return ErrNotFound
		}
		return err
	}

	if _, err = c.userRepo.ContactRoom(ctx, contact.UserID, userID); err == nil {
		return nil
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		return err
	}

	if err = c.chatRepo.DeleteRoom(ctx, roomID); err != nil {
		return err
	}

	return c.userRepo.RemoveRoomFromUsers(ctx, roomID, []string{userID, contact.UserID})
}
