package middlewares

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"aptchat/pkg/consts"
	"aptchat/pkg/entities"
	"aptchat/utilities"
	"aptchat/utilities/jwt"
)

type Middlewares struct {
	Cache *cache.Cache
}

func NewMiddlewares() *Middlewares {
	return &Middlewares{
		Cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// sessionToken digs the JWT out of the request, preferring the Authorization
// header over the auth cookie
func sessionToken(ctx *gin.Context) string {
	if header := ctx.GetHeader("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}

	if cookie, err := ctx.Cookie(consts.AuthCookieName); err == nil {
		return cookie
	}

	return ""
}

func (m *Middlewares) ValidateToken(ctx *gin.Context) {
	log := utilities.NewLogger("ValidateToken")

	token := sessionToken(ctx)
	if token == "" {
		ctx.AbortWithStatusJSON(
			http.StatusUnauthorized, entities.ErrorResponse{
				StatusCode: http.StatusUnauthorized,
				Message:    "Missing session token",
			},
		)
		return
	}

	var claims map[string]string
	if cached, ok := m.Cache.Get(token); ok {
		claims = cached.(map[string]string)
	} else {
		var err error
		claims, err = jwt.VerifyJWT(token)
		if err != nil {
			log.WithError(err).Error("jwt verification failed")
			ctx.AbortWithStatusJSON(
				http.StatusUnauthorized, entities.ErrorResponse{
					StatusCode: http.StatusUnauthorized,
					Message:    "Authentication failed",
				},
			)
			return
		}
		m.Cache.SetDefault(token, claims)
	}

	log.Debugf("User %s validated", claims["user_id"])

	ctx.Set(consts.UserID, claims["user_id"])
	ctx.Set(consts.UserAddress, claims["address"])
	ctx.Set(consts.UserPublicKey, claims["public_key"])
	ctx.Set(consts.UserToken, token)

	ctx.Next()
}

// VerifyWebsocketRequest authenticates the upgrade request; the socket layer
// calls it before accepting the connection
func (m *Middlewares) VerifyWebsocketRequest(ctx *gin.Context) (string, error) {
	token := sessionToken(ctx)
	if token == "" {
		return "", fmt.Errorf("authentication failed: missing session token")
	}

	claims, err := jwt.VerifyJWT(token)
	if err != nil {
		return "", fmt.Errorf("authentication failed: %w", err)
	}

	ctx.Set(consts.UserID, claims["user_id"])
	ctx.Set(consts.UserAddress, claims["address"])
	ctx.Set(consts.UserToken, token)

	return claims["user_id"], nil
}
