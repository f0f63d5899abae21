package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gocql/gocql"
	uuidLib "github.com/google/uuid"

	"aptchat/config"
	"aptchat/pkg/cache"
	"aptchat/pkg/consts"
	"aptchat/pkg/entities"
	"aptchat/utilities"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepo struct {
	Db   *gocql.Session
	Conf *config.AptchatConfModel
}

type UserRepoImply interface {
	GetUserByID(ctx context.Context, userID string) (*entities.UserModel, error)
	GetUserByAddress(ctx context.Context, address string) (*entities.UserModel, error)
	GetUserByUsername(ctx context.Context, username string) (*entities.UserModel, error)
	CreateUser(ctx context.Context, user *entities.UserModel) error
	UpdatePublicKey(ctx context.Context, userID, publicKey string) error
	UpdateProfile(ctx context.Context, userID string, update *entities.ProfileUpdateRequest) (*entities.UserModel, error)
	AddRoomToUsers(ctx context.Context, roomID string, userIDs []string) error
	RemoveRoomFromUsers(ctx context.Context, roomID string, userIDs []string) error
	PinRoom(ctx context.Context, userID, roomID string) ([]string, error)
	UnpinRoom(ctx context.Context, userID, roomID string) ([]string, error)
	GetContacts(ctx context.Context, userID string) ([]*entities.Contact, error)
	AddContact(ctx context.Context, userID, contactID, name, roomID string) error
	RemoveContact(ctx context.Context, userID, contactID string) (string, error)
	ContactRoom(ctx context.Context, userID, contactID string) (string, error)
	UnreadCount(ctx context.Context, userID, roomID string) (int, error)
	GetFCMTokens(ctx context.Context, userID string) ([]string, error)
}

func NewUserRepo(db *gocql.Session, conf *config.AptchatConfModel) UserRepoImply {
	return &UserRepo{Db: db, Conf: conf}
}

func (u *UserRepo) scanUser(query string, args ...interface{}) (*entities.UserModel, error) {
	user := &entities.UserModel{}

	err := u.Db.Query(query, args...).Scan(
		&user.UserID, &user.Username, &user.AptosAddress, &user.AptosPublicKey,
		&user.Avatar, &user.Bio, &user.Status,
		&user.ChatRooms, &user.PinnedRooms, &user.FCMTokens, &user.Joined,
	)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return user, nil
}

const userColumns = `user_id, username, aptos_address, aptos_public_key, avatar, bio, status, chat_rooms, pinned_chat_rooms, fcm_tokens, joined`

func (u *UserRepo) GetUserByID(ctx context.Context, userID string) (*entities.UserModel, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s.%s WHERE user_id = ?`,
		userColumns, u.Conf.DB.Keyspace, consts.UserInfoTable,
	)
	return u.scanUser(query, userID)
}

func (u *UserRepo) GetUserByAddress(ctx context.Context, address string) (*entities.UserModel, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s.%s WHERE aptos_address = ?`,
		userColumns, u.Conf.DB.Keyspace, consts.UserInfoTable,
	)
	return u.scanUser(query, strings.ToLower(address))
}

func (u *UserRepo) GetUserByUsername(ctx context.Context, username string) (*entities.UserModel, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s.%s WHERE username = ?`,
		userColumns, u.Conf.DB.Keyspace, consts.UserInfoTable,
	)
	return u.scanUser(query, username)
}

func (u *UserRepo) CreateUser(ctx context.Context, user *entities.UserModel) error {
	if user.UserID == "" {
		user.UserID = uuidLib.NewString()
	}
	if user.Joined.IsZero() {
		user.Joined = utilities.TimeNow()
	}

	query := fmt.Sprintf(
		`INSERT INTO %s.%s (%s) VALUES %s`,
		u.Conf.DB.Keyspace, consts.UserInfoTable, userColumns, utilities.DBMultiValuePlaceholders(11),
	)

	err := u.Db.Query(
		query, user.UserID, user.Username, strings.ToLower(user.AptosAddress), user.AptosPublicKey,
		user.Avatar, user.Bio, user.Status,
		user.ChatRooms, user.PinnedRooms, user.FCMTokens, user.Joined,
	).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.UserID, err)
	}

	return nil
}

func (u *UserRepo) UpdatePublicKey(ctx context.Context, userID, publicKey string) error {
	query := fmt.Sprintf(
		`UPDATE %s.%s SET aptos_public_key = ? WHERE user_id = ?`,
		u.Conf.DB.Keyspace, consts.UserInfoTable,
	)

	if err := u.Db.Query(query, publicKey, userID).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("failed to update public key for user %s: %w", userID, err)
	}

	return nil
}

func (u *UserRepo) UpdateProfile(ctx context.Context, userID string, update *entities.ProfileUpdateRequest) (*entities.UserModel, error) {
	var (
		assignments []string
		args        []interface{}
	)

	if update.Username != "" {
		assignments = append(assignments, "username = ?")
		args = append(args, update.Username)
	}
	if update.Avatar != "" {
		assignments = append(assignments, "avatar = ?")
		args = append(args, update.Avatar)
	}
	if update.Bio != "" {
		assignments = append(assignments, "bio = ?")
		args = append(args, update.Bio)
	}
	if update.Status != "" {
		assignments = append(assignments, "status = ?")
		args = append(args, update.Status)
	}

	if len(assignments) > 0 {
		query := fmt.Sprintf(
			`UPDATE %s.%s SET %s WHERE user_id = ?`,
			u.Conf.DB.Keyspace, consts.UserInfoTable, strings.Join(assignments, ", "),
		)
		args = append(args, userID)

		if err := u.Db.Query(query, args...).WithContext(ctx).Exec(); err != nil {
			return nil, fmt.Errorf("failed to update profile for user %s: %w", userID, err)
		}
	}

	return u.GetUserByID(ctx, userID)
}

func (u *UserRepo) AddRoomToUsers(ctx context.Context, roomID string, userIDs []string) error {
	query := fmt.Sprintf(
		`UPDATE %s.%s SET chat_rooms = chat_rooms + ? WHERE user_id = ?`,
		u.Conf.DB.Keyspace, consts.UserInfoTable,
	)

	batch := u.Db.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for _, userID := range userIDs {
		batch.Query(query, []string{roomID}, userID)
	}

	if err := u.Db.ExecuteBatch(batch); err != nil {
		return fmt.Errorf("failed to add room %s to users: %w", roomID, err)
	}

	return nil
}

func (u *UserRepo) RemoveRoomFromUsers(ctx context.Context, roomID string, userIDs []string) error {
	roomQuery := fmt.Sprintf(
		`UPDATE %s.%s SET chat_rooms = chat_rooms - ?, pinned_chat_rooms = pinned_chat_rooms - ? WHERE user_id = ?`,
		u.Conf.DB.Keyspace, consts.UserInfoTable,
	)

	batch := u.Db.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for _, userID := range userIDs {
		batch.Query(roomQuery, []string{roomID}, []string{roomID}, userID)
	}

	if err := u.Db.ExecuteBatch(batch); err != nil {
		return fmt.Errorf("failed to remove room %s from users: %w", roomID, err)
	}

	return nil
}

func (u *UserRepo) PinRoom(ctx context.Context, userID, roomID string) ([]string, error) {
	query := fmt.Sprintf(
		`UPDATE %s.%s SET pinned_chat_rooms = pinned_chat_rooms + ? WHERE user_id = ?`,
		u.Conf.DB.Keyspace, consts.UserInfoTable,
	)

	if err := u.Db.Query(query, []string{roomID}, userID).WithContext(ctx).Exec(); err != nil {
		return nil, fmt.Errorf("failed to pin room %s for user %s: %w", roomID, userID, err)
	}

	user, err := u.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user.PinnedRooms, nil
}

func (u *UserRepo) UnpinRoom(ctx context.Context, userID, roomID string) ([]string, error) {
	query := fmt.Sprintf(
		`UPDATE %s.%s SET pinned_chat_rooms = pinned_chat_rooms - ? WHERE user_id = ?`,
		u.Conf.DB.Keyspace, consts.UserInfoTable,
	)

	if err := u.Db.Query(query, []string{roomID}, userID).WithContext(ctx).Exec(); err != nil {
		return nil, fmt.Errorf("failed to unpin room %s for user %s: %w", roomID, userID, err)
	}

	user, err := u.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user.PinnedRooms, nil
}

func (u *UserRepo) GetContacts(ctx context.Context, userID string) ([]*entities.Contact, error) {
	query := fmt.Sprintf(
		`SELECT contact_id, name, chat_room_id FROM %s.%s WHERE user_id = ?`,
		u.Conf.DB.Keyspace, consts.UserContactsTable,
	)

	var (
		contactID, name, roomID string
		contacts                []*entities.Contact
	)

	iter := u.Db.Query(query, userID).WithContext(ctx).Iter()
	for iter.Scan(&contactID, &name, &roomID) {
		contact := &entities.Contact{
			Name:       name,
			ChatRoomID: roomID,
		}

		details, err := u.GetUserByID(ctx, contactID)
		if err == nil {
			contact.Details = &entities.UserProfile{
				UserID:   details.UserID,
				Username: details.Username,
				Avatar:   details.Avatar,
				Bio:      details.Bio,
				Status:   details.Status,
			}
		}

		contacts = append(contacts, contact)
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to fetch contacts for user %s: %w", userID, err)
	}

	return contacts, nil
}

func (u *UserRepo) AddContact(ctx context.Context, userID, contactID, name, roomID string) error {
	query := fmt.Sprintf(
		`INSERT INTO %s.%s (user_id, contact_id, name, chat_room_id) VALUES %s`,
		u.Conf.DB.Keyspace, consts.UserContactsTable, utilities.DBMultiValuePlaceholders(4),
	)

	if err := u.Db.Query(query, userID, contactID, name, roomID).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("failed to add contact %s for user %s: %w", contactID, userID, err)
	}

	cache.UserContactsCache.AddUserContactsCache(userID, contactID)

	return nil
}

func (u *UserRepo) RemoveContact(ctx context.Context, userID, contactID string) (string, error) {
	roomID, err := u.ContactRoom(ctx, userID, contactID)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf(
		`DELETE FROM %s.%s WHERE user_id = ? AND contact_id = ?`,
		u.Conf.DB.Keyspace, consts.UserContactsTable,
	)

	if err = u.Db.Query(query, userID, contactID).WithContext(ctx).Exec(); err != nil {
		return "", fmt.Errorf("failed to remove contact %s for user %s: %w", contactID, userID, err)
	}

	cache.UserContactsCache.RemoveUserContactsCache(userID, contactID)

	return roomID, nil
}

// ContactRoom returns the private room bound to the contact pair, or
// ErrUserNotFound if no such contact entry exists
func (u *UserRepo) ContactRoom(ctx context.Context, userID, contactID string) (string, error) {
	query := fmt.Sprintf(
		`SELECT chat_room_id FROM %s.%s WHERE user_id = ? AND contact_id = ?`,
		u.Conf.DB.Keyspace, consts.UserContactsTable,
	)

	var roomID string
	err := u.Db.Query(query, userID, contactID).WithContext(ctx).Scan(&roomID)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to fetch contact room: %w", err)
	}

	return roomID, nil
}

func (u *UserRepo) UnreadCount(ctx context.Context, userID, roomID string) (int, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM %s.%s WHERE user_id = ? AND kind = ? AND chat_room_id = ?`,
		u.Conf.DB.Keyspace, consts.UserMarkerTable,
	)

	var count int
	if err := u.Db.Query(query, userID, consts.MarkerUnread, roomID).WithContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread markers: %w", err)
	}

	return count, nil
}

func (u *UserRepo) GetFCMTokens(ctx context.Context, userID string) ([]string, error) {
	user, err := u.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user.FCMTokens, nil
}
