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

type ContactsController struct {
	router      *gin.RouterGroup
	useCases    usecases.ContactsUseCaseImply
	middleWares *middlewares.Middlewares
}

func NewContactsController(
	router *gin.RouterGroup, contactsUseCase usecases.ContactsUseCaseImply,
	middleWare *middlewares.Middlewares,
) *ContactsController {
	return &ContactsController{
		router:      router,
		useCases:    contactsUseCase,
		middleWares: middleWare,
	}
}

// InitRoutes initializes the routes for the ContactsController.
func (c *ContactsController) InitRoutes() {
	v1 := c.router.Group(config.GetConfig().Server.APIVersion)

	verifyToken := v1.Group("", c.middleWares.ValidateToken)
	{
		verifyToken.GET("/contacts", c.GetContacts)
		verifyToken.POST("/contacts", c.AddContact)
		verifyToken.DELETE("/contacts", c.RemoveContact)
	}
}

func (c *ContactsController) GetContacts(ctx *gin.Context) {
	log := utilities.NewLogger("GetContacts")

	userID := ctx.GetString(consts.UserID)

	contacts, err := c.useCases.GetContacts(ctx, userID)
	if err != nil {
		log.WithError(err).Errorf("contact list failed for user %s", userID)
		abortWithError(ctx, err, "failed to get contacts")
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Contacts retrieved successfully.",
			Data:       contacts,
		},
	)
}

func (c *ContactsController) AddContact(ctx *gin.Context) {
	log := utilities.NewLogger("AddContact")
	log.Info("Received AddContact request")

	var request entities.ContactRequest
	if err := ctx.BindJSON(&request); err != nil {
		ctx.JSON(
			http.StatusBadRequest, entities.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Error:      "failed to add contact",
				Message:    "Invalid request body",
			},
		)
		return
	}

	contact, err := c.useCases.AddContact(ctx, ctx.GetString(consts.UserID), &request)
	if err != nil {
		log.WithError(err).Errorf("add contact %s failed", request.Username)
		abortWithError(ctx, err, "failed to add contact")
		return
	}

	ctx.JSON(
		http.StatusCreated, entities.Response{
			StatusCode: 201,
			Message:    "Contact added successfully.",
			Data:       contact,
		},
	)
}

func (c *ContactsController) RemoveContact(ctx *gin.Context) {
	log := utilities.NewLogger("RemoveContact")

	var request entities.ContactRequest
	if err := ctx.BindJSON(&request); err != nil {
		ctx.JSON(
			http.StatusBadRequest, entities.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Error:      "failed to remove contact",
				Message:    "Invalid request body",
			},
		)
		return
	}

	if err := c.useCases.RemoveContact(ctx, ctx.GetString(consts.UserID), request.Username); err != nil {
		log.WithError(err).Errorf("remove contact %s failed", request.Username)
		abortWithError(ctx, err, "failed to remove contact")
		return
	}

	ctx.Status(http.StatusNoContent)
}
