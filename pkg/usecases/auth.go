package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aptchat/pkg/cache"
	"aptchat/pkg/entities"
	"aptchat/pkg/repo"
	"aptchat/pkg/repo/driver/chain/aptos"
	"aptchat/utilities"
	"aptchat/utilities/jwt"
)

type AuthUseCases struct {
	userRepo    repo.UserRepoImply
	nonces      *cache.NonceRegistry
	tokenExpiry time.Duration
}

type AuthUseCaseImply interface {
	RequestNonce(ctx context.Context, address string) (string, error)
	VerifyLogin(ctx context.Context, request *entities.VerifyRequest) (string, int, string, error)
}

func NewAuthUseCases(userRepo repo.UserRepoImply, nonces *cache.NonceRegistry, tokenExpiry time.Duration) AuthUseCaseImply {
	return &AuthUseCases{
		userRepo:    userRepo,
		nonces:      nonces,
		tokenExpiry: tokenExpiry,
	}
}

// RequestNonce starts a login attempt. The challenge is bound to the
// claimed address when the client sends one; otherwise it keys itself and
// binding happens at verification.
func (a *AuthUseCases) RequestNonce(ctx context.Context, address string) (string, error) {
	return a.nonces.Issue(strings.ToLower(address))
}

// VerifyLogin walks the handshake: consume the nonce, verify the wallet
// signature over the exact signed message, upsert the user, and mint a
// session token. Any failure leaves no partial state behind.
func (a *AuthUseCases) VerifyLogin(ctx context.Context, request *entities.VerifyRequest) (string, int, string, error) {
	log := utilities.NewLogger("VerifyLogin")

	message := request.SignedMessage()
	if request.Address == "" || request.PublicKey == "" || request.Signature == "" ||
		message == "" || request.Nonce == "" {
		return "", 0, "", ErrMissingFields
	}

	address := strings.ToLower(request.Address)

	if ok := a.nonces.Consume(address, request.Nonce); !ok {
		log.Warnf("nonce rejected for address %s", address)
		return "", 0, "", ErrNonceInvalid
	}

	if ok := aptos.VerifyEd25519Flexible(request.PublicKey, request.Signature, message); !ok {
		log.Warnf("signature rejected for address %s", address)
		return "", 0, "", ErrBadSignature
	}

	user, err := a.userRepo.GetUserByAddress(ctx, address)
	switch {
	case errors.Is(err, repo.ErrUserNotFound):
		user = &entities.UserModel{
			Username:       utilities.UsernameFromAddress(address),
			AptosAddress:   address,
			AptosPublicKey: request.PublicKey,
		}
		if err = a.userRepo.CreateUser(ctx, user); err != nil {
			return "", 0, "", fmt.Errorf("failed to create user for %s: %w", address, err)
		}
		log.Infof("Created user %s for address %s", user.UserID, address)
	case err != nil:
		return "", 0, "", err
	case user.AptosPublicKey != request.PublicKey:
		if err = a.userRepo.UpdatePublicKey(ctx, user.UserID, request.PublicKey); err != nil {
			return "", 0, "", err
		}
	}

	token, ttl, err := jwt.GenerateJWT(user.UserID, address, request.PublicKey, a.tokenExpiry)
	if err != nil {
		return "", 0, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	return token, ttl, user.UserID, nil
}
