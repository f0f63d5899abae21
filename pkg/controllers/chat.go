package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"aptchat/config"
	"aptchat/pkg/consts"
	"aptchat/pkg/entities"
	"aptchat/pkg/middlewares"
	"aptchat/pkg/repo/driver/medium"
	"aptchat/pkg/usecases"
	"aptchat/utilities"
)

type ChatController struct {
	router      *gin.RouterGroup
	useCases    usecases.ChatUseCaseImply
	middleWares *middlewares.Middlewares
	ws          *medium.Socket
}

func NewChatController(
	router *gin.RouterGroup, chatUseCase usecases.ChatUseCaseImply, ws *medium.Socket,
	middleWare *middlewares.Middlewares,
) *ChatController {
	return &ChatController{
		router:      router,
		useCases:    chatUseCase,
		middleWares: middleWare,
		ws:          ws,
	}
}

// InitRoutes initializes the routes for the ChatController.
func (c *ChatController) InitRoutes(ctx context.Context) {
	v1 := c.router.Group(config.GetConfig().Server.APIVersion)
	v1.GET("/ws/chat", c.WebsocketHandler)

	verifyToken := v1.Group("", c.middleWares.ValidateToken)
	{
		verifyToken.GET("/chatRoom/summary", c.GetRoomSummary)
		verifyToken.GET("/chatRoom/:chatRoomId", c.GetChatRoom)
		verifyToken.POST("/chatRoom/:chatRoomId", c.PinRoom)
		verifyToken.PATCH("/chatRoom/:chatRoomId", c.UnpinRoom)
		verifyToken.DELETE("/chatRoom/:chatRoomId/messages", c.ClearChatRoom)
		verifyToken.POST("/chatRoom/create-group", c.CreateGroup)
	}

	go c.useCases.ChatProcessor(ctx)
	go c.useCases.NotificationProcessor(ctx)
}

func (c *ChatController) GetRoomSummary(ctx *gin.Context) {
	log := utilities.NewLogger("GetRoomSummary")

	userID := ctx.GetString(consts.UserID)

	summaries, err := c.useCases.GetRoomSummary(ctx, userID)
	if err != nil {
		log.WithError(err).Errorf("summary failed for user %s", userID)
		abortWithError(ctx, err, "failed to get chat room summary")
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Chat room summary retrieved successfully.",
			Data:       summaries,
		},
	)
}

func (c *ChatController) GetChatRoom(ctx *gin.Context) {
	log := utilities.NewLogger("GetChatRoom")

	roomID := ctx.Param("chatRoomId")

	room, err := c.useCases.GetChatRoom(ctx, roomID, true)
	if err != nil {
		log.WithError(err).Errorf("fetch failed for room %s", roomID)
		abortWithError(ctx, err, "failed to get chat room")
		return
	}

	if !utilities.ContainsString(room.Members, ctx.GetString(consts.UserID)) {
		abortWithError(ctx, usecases.ErrNotFound, "failed to get chat room")
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Chat room retrieved successfully.",
			Data:       room,
		},
	)
}

func (c *ChatController) PinRoom(ctx *gin.Context) {
	log := utilities.NewLogger("PinRoom")

	userID := ctx.GetString(consts.UserID)
	roomID := ctx.Param("chatRoomId")

	pinned, err := c.useCases.PinRoom(ctx, userID, roomID)
	if err != nil {
		log.WithError(err).Errorf("pin failed for room %s", roomID)
		abortWithError(ctx, err, "failed to pin chat room")
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Chat room pinned successfully.",
			Data:       pinned,
		},
	)
}

func (c *ChatController) UnpinRoom(ctx *gin.Context) {
	log := utilities.NewLogger("UnpinRoom")

	userID := ctx.GetString(consts.UserID)
	roomID := ctx.Param("chatRoomId")

	pinned, err := c.useCases.UnpinRoom(ctx, userID, roomID)
	if err != nil {
		log.WithError(err).Errorf("unpin failed for room %s", roomID)
		abortWithError(ctx, err, "failed to unpin chat room")
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Chat room unpinned successfully.",
			Data:       pinned,
		},
	)
}

func (c *ChatController) ClearChatRoom(ctx *gin.Context) {
	log := utilities.NewLogger("ClearChatRoom")

	userID := ctx.GetString(consts.UserID)
	roomID := ctx.Param("chatRoomId")

	if err := c.useCases.ClearChatRoom(ctx, userID, roomID); err != nil {
		log.WithError(err).Errorf("clear failed for room %s", roomID)
		abortWithError(ctx, err, "failed to clear chat room")
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Chat room cleared successfully.",
		},
	)
}

func (c *ChatController) CreateGroup(ctx *gin.Context) {
	log := utilities.NewLogger("CreateGroup")
	log.Info("Received CreateGroup request")

	var request entities.GroupCreateRequest
	if err := ctx.BindJSON(&request); err != nil {
		ctx.JSON(
			http.StatusBadRequest, entities.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Error:      "failed to create group",
				Message:    "Invalid request body",
			},
		)
		return
	}

	room, err := c.useCases.CreateGroup(ctx, ctx.GetString(consts.UserID), &request)
	if err != nil {
		log.WithError(err).Errorf("group creation failed for %s", request.Name)
		abortWithError(ctx, err, "failed to create group")
		return
	}

	ctx.JSON(
		http.StatusCreated, entities.Response{
			StatusCode: 201,
			Message:    "Group created successfully.",
			Data:       room,
		},
	)
}

// WebsocketHandler authenticates the upgrade request and hands the
// connection to the socket registry; the token may arrive as a bearer
// header, the auth cookie, or a token query param
func (c *ChatController) WebsocketHandler(ctx *gin.Context) {
	log := utilities.NewLogger("WebsocketHandler")

	if token := ctx.Query("token"); token != "" && ctx.GetHeader("Authorization") == "" {
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
	}

	userID, err := c.middleWares.VerifyWebsocketRequest(ctx)
	if err != nil {
		ctx.JSON(
			http.StatusUnauthorized, entities.ErrorResponse{
				StatusCode: http.StatusUnauthorized,
				Error:      "failed to open chat socket",
				Message:    err.Error(),
			},
		)
		return
	}

	upgrader := medium.Upgrade()
	wsConn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.WithError(err).Errorf("websocket upgrade failed for user %s", userID)
		ctx.JSON(
			http.StatusBadRequest, entities.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Error:      "failed to open chat socket",
				Message:    "Websocket upgrade failed",
			},
		)
		return
	}

	c.ws.Add(userID, wsConn)
}
