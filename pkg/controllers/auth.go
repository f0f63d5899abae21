package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aptchat/config"
	"aptchat/pkg/consts"
	"aptchat/pkg/entities"
	"aptchat/pkg/middlewares"
	"aptchat/pkg/usecases"
	"aptchat/utilities"
)

type AuthController struct {
	router       *gin.RouterGroup
	useCases     usecases.AuthUseCaseImply
	userUseCases usecases.UserUseCaseImply
	middleWares  *middlewares.Middlewares
}

func NewAuthController(
	router *gin.RouterGroup, authUseCase usecases.AuthUseCaseImply,
	userUseCase usecases.UserUseCaseImply, middleWare *middlewares.Middlewares,
) *AuthController {
	return &AuthController{
		router:       router,
		useCases:     authUseCase,
		userUseCases: userUseCase,
		middleWares:  middleWare,
	}
}

// InitRoutes initializes the routes for the AuthController.
func (c *AuthController) InitRoutes() {
	v1 := c.router.Group(config.GetConfig().Server.APIVersion)
	{
		v1.POST("/auth/nonce", c.RequestNonce)
		v1.POST("/auth/verify", c.VerifyLogin)
	}

	verifyToken := v1.Group("", c.middleWares.ValidateToken)
	{
		verifyToken.POST("/auth/logout", c.Logout)
		verifyToken.GET("/me", c.Me)
	}
}

func (c *AuthController) RequestNonce(ctx *gin.Context) {
	log := utilities.NewLogger("RequestNonce")

	var request entities.NonceRequest
	if err := ctx.BindJSON(&request); err != nil {
		ctx.JSON(
			http.StatusBadRequest, entities.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Error:      "failed to request nonce",
				Message:    "Invalid request body",
			},
		)
		return
	}

	nonce, err := c.useCases.RequestNonce(ctx, request.Address)
	if err != nil {
		log.WithError(err).Error("nonce issuance failed")
		abortWithError(ctx, err, "failed to request nonce")
		return
	}

	ctx.JSON(http.StatusOK, entities.NonceResponse{Nonce: nonce})
}

func (c *AuthController) VerifyLogin(ctx *gin.Context) {
	log := utilities.NewLogger("VerifyLogin")
	log.Info("Received VerifyLogin request")

	var request entities.VerifyRequest
	if err := ctx.BindJSON(&request); err != nil {
		ctx.JSON(
			http.StatusBadRequest, entities.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Error:      "failed to verify login",
				Message:    "Invalid request body",
			},
		)
		return
	}

	token, maxAge, userID, err := c.useCases.VerifyLogin(ctx, &request)
	if err != nil {
		log.WithError(err).Errorf("login verification failed for address %s", request.Address)
		abortWithError(ctx, err, "failed to verify login")
		return
	}

	conf := config.GetConfig()
	if conf.Auth.CookieMaxAge > 0 {
		maxAge = conf.Auth.CookieMaxAge
	}

	secure := conf.Mode != "local"
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(consts.AuthCookieName, token, maxAge, "/", "", secure, true)

	ctx.JSON(http.StatusOK, entities.VerifyResponse{OK: true, UserID: userID})
}

func (c *AuthController) Logout(ctx *gin.Context) {
	secure := config.GetConfig().Mode != "local"
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(consts.AuthCookieName, "", -1, "/", "", secure, true)

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Logged out",
		},
	)
}

func (c *AuthController) Me(ctx *gin.Context) {
	log := utilities.NewLogger("Me")

	userID := ctx.GetString(consts.UserID)

	user, err := c.userUseCases.GetProfile(ctx, userID)
	if err != nil {
		log.WithError(err).Errorf("profile lookup failed for user %s", userID)
		abortWithError(ctx, err, "failed to get session user")
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Session user retrieved successfully.",
			Data:       user,
		},
	)
}
