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

type ProfileController struct {
	router      *gin.RouterGroup
	useCases    usecases.UserUseCaseImply
	middleWares *middlewares.Middlewares
}

func NewProfileController(
	router *gin.RouterGroup, userUseCase usecases.UserUseCaseImply,
	middleWare *middlewares.Middlewares,
) *ProfileController {
	return &ProfileController{
		router:      router,
		useCases:    userUseCase,
		middleWares: middleWare,
	}
}

// InitRoutes initializes the routes for the ProfileController.
func (c *ProfileController) InitRoutes() {
	v1 := c.router.Group(config.GetConfig().Server.APIVersion)

	verifyToken := v1.Group("", c.middleWares.ValidateToken)
	{
		verifyToken.GET("/profile", c.GetProfile)
		verifyToken.PATCH("/profile", c.UpdateProfile)
	}
}

func (c *ProfileController) GetProfile(ctx *gin.Context) {
	log := utilities.NewLogger("GetProfile")

	userID := ctx.GetString(consts.UserID)

	user, err := c.useCases.GetProfile(ctx, userID)
	if err != nil {
		log.WithError(err).Errorf("profile lookup failed for user %s", userID)
		abortWithError(ctx, err, "failed to get profile")
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Profile retrieved successfully.",
			Data:       user,
		},
	)
}

func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	log := utilities.NewLogger("UpdateProfile")
	log.Info("Received UpdateProfile request")

	var request entities.ProfileUpdateRequest
	if err := ctx.BindJSON(&request); err != nil {
		ctx.JSON(
			http.StatusBadRequest, entities.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Error:      "failed to update profile",
				Message:    "Invalid request body",
			},
		)
		return
	}

	user, err := c.useCases.UpdateProfile(ctx, ctx.GetString(consts.UserID), &request)
	if err != nil {
		log.WithError(err).Error("profile update failed")
		abortWithError(ctx, err, "failed to update profile")
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Profile updated successfully.",
			Data:       user,
		},
	)
}
