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

type TokenController struct {
	router      *gin.RouterGroup
	useCases    usecases.TokenUseCaseImply
	middleWares *middlewares.Middlewares
}

func NewTokenController(
	router *gin.RouterGroup, tokenUseCase usecases.TokenUseCaseImply,
	middleWare *middlewares.Middlewares,
) *TokenController {
	return &TokenController{
		router:      router,
		useCases:    tokenUseCase,
		middleWares: middleWare,
	}
}

// InitRoutes initializes the routes for the TokenController.
func (c *TokenController) InitRoutes() {
	v1 := c.router.Group(config.GetConfig().Server.APIVersion)

	verifyToken := v1.Group("", c.middleWares.ValidateToken)
	{
		verifyToken.POST("/token/initialize", c.InitializeToken)
		verifyToken.POST("/token/confirm", c.ConfirmToken)
		verifyToken.GET("/token/:chatRoomId/status", c.TokenStatus)
	}
}

func (c *TokenController) InitializeToken(ctx *gin.Context) {
	log := utilities.NewLogger("InitializeToken")
	log.Info("Received InitializeToken request")

	var request entities.TokenInitRequest
	if err := ctx.BindJSON(&request); err != nil {
		ctx.JSON(
			http.StatusBadRequest, entities.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Error:      "failed to initialize group token",
				Message:    "Invalid request body",
			},
		)
		return
	}

	payload, err := c.useCases.InitializeToken(ctx, ctx.GetString(consts.UserID), &request)
	if err != nil {
		log.WithError(err).Errorf("token initialization failed for room %s", request.GroupChatID)
		abortWithError(ctx, err, "failed to initialize group token")
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Sign the payload to initialize the group token.",
			Data:       payload,
		},
	)
}

func (c *TokenController) ConfirmToken(ctx *gin.Context) {
	log := utilities.NewLogger("ConfirmToken")
	log.Info("Received ConfirmToken request")

	var request entities.TokenConfirmRequest
	if err := ctx.BindJSON(&request); err != nil {
		ctx.JSON(
			http.StatusBadRequest, entities.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Error:      "failed to confirm group token",
				Message:    "Invalid request body",
			},
		)
		return
	}

	if err := c.useCases.ConfirmToken(ctx, ctx.GetString(consts.UserID), &request); err != nil {
		log.WithError(err).Errorf("token confirmation failed for room %s", request.GroupChatID)
		abortWithError(ctx, err, "failed to confirm group token")
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Group token confirmed successfully.",
		},
	)
}

func (c *TokenController) TokenStatus(ctx *gin.Context) {
	log := utilities.NewLogger("TokenStatus")

	roomID := ctx.Param("chatRoomId")

	status, err := c.useCases.TokenStatus(ctx, roomID)
	if err != nil {
		log.WithError(err).Errorf("token status failed for room %s", roomID)
		abortWithError(ctx, err, "failed to get group token status")
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Group token status retrieved successfully.",
			Data:       status,
		},
	)
}
