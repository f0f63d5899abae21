package usecases

import (
	"context"
	"errors"

	"aptchat/pkg/consts"
	"aptchat/pkg/entities"
	"aptchat/pkg/repo"
	"aptchat/pkg/repo/driver/chain/aptos"
	"aptchat/utilities"
)

type TokenUseCases struct {
	chatRepo repo.ChatRepoImply
	chain    *aptos.Aptos
}

type TokenUseCaseImply interface {
	InitializeToken(ctx context.Context, userID string, request *entities.TokenInitRequest) (*entities.EntryFunctionPayload, error)
	ConfirmToken(ctx context.Context, userID string, request *entities.TokenConfirmRequest) error
	TokenStatus(ctx context.Context, roomID string) (*entities.TokenStatus, error)
}

func NewTokenUseCases(chatRepo repo.ChatRepoImply, chain *aptos.Aptos) TokenUseCaseImply {
	return &TokenUseCases{chatRepo: chatRepo, chain: chain}
}

func (t *TokenUseCases) groupRoom(ctx context.Context, userID, roomID string) (*entities.ChatRoom, error) {
	room, err := t.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, repo.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if room.RoomType != consts.RoomTypeGroup || !utilities.ContainsString(room.Members, userID) {
		return nil, ErrNotFound
	}

	return room, nil
}

// InitializeToken hands the wallet the entry function to sign; it mutates
// nothing server side until the confirm call lands
func (t *TokenUseCases) InitializeToken(ctx context.Context, userID string, request *entities.TokenInitRequest) (*entities.EntryFunctionPayload, error) {
	if request.GroupChatID == "" {
		return nil, ErrMissingFields
	}

	room, err := t.groupRoom(ctx, userID, request.GroupChatID)
	if err != nil {
		return nil, err
	}

	if room.AlgoToken != nil && room.AlgoToken.IsActive {
		return nil, ErrConflict
	}

	payload := t.chain.InitializePayload()

	return &payload, nil
}

func (t *TokenUseCases) ConfirmToken(ctx context.Context, userID string, request *entities.TokenConfirmRequest) error {
	if request.GroupChatID == "" || request.TxHash == "" {
		return ErrMissingFields
	}

	room, err := t.groupRoom(ctx, userID, request.GroupChatID)
	if err != nil {
		return err
	}

	if room.AlgoToken != nil && room.AlgoToken.IsActive {
		return ErrConflict
	}

	token := &entities.AlgoToken{
		ModuleAddress: t.chain.ModuleAddress(),
		CreatedBy:     userID,
		CreatedAt:     utilities.TimeNow(),
		IsActive:      true,
	}

	return t.chatRepo.SetAlgoToken(ctx, request.GroupChatID, token)
}

// TokenStatus reports the on-chain price and reserves; chain lookups degrade
// to "0" rather than failing the call
func (t *TokenUseCases) TokenStatus(ctx context.Context, roomID string) (*entities.TokenStatus, error) {
	room, err := t.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, repo.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	status := &entities.TokenStatus{}
	if room.AlgoToken == nil || !room.AlgoToken.IsActive {
		return status, nil
	}

	status.IsActive = true
	status.ModuleAddress = room.AlgoToken.ModuleAddress

	status.Price, _ = t.chain.GetTokenPrice(ctx, room.AlgoToken.ModuleAddress)
	status.SlipReserve, status.PegReserve, _ = t.chain.GetReserves(ctx, room.AlgoToken.ModuleAddress)

	return status, nil
}
