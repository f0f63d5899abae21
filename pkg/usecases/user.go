package usecases

import (
	"context"
	"errors"

	"aptchat/pkg/entities"
	"aptchat/pkg/repo"
)

type UserUseCases struct {
	repo repo.UserRepoImply
}

type UserUseCaseImply interface {
	GetProfile(ctx context.Context, userID string) (*entities.UserModel, error)
	UpdateProfile(ctx context.Context, userID string, update *entities.ProfileUpdateRequest) (*entities.UserModel, error)
}

func NewUserUseCases(userRepo repo.UserRepoImply) UserUseCaseImply {
	return &UserUseCases{repo: userRepo}
}

func (u *UserUseCases) GetProfile(ctx context.Context, userID string) (*entities.UserModel, error) {
	user, err := u.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}

func (u *UserUseCases) UpdateProfile(ctx context.Context, userID string, update *entities.ProfileUpdateRequest) (*entities.UserModel, error) {
	if update.Username != "" {
		existing, err := u.repo.GetUserByUsername(ctx, update.Username)
		if err != nil && !errors.Is(err, repo.ErrUserNotFound) {
			return nil, err
		}
		if err == nil && existing.UserID != userID {
			return nil, ErrConflict
		}
	}

	user, err := u.repo.UpdateProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}
