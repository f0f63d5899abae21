package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aptchat/config"
	"aptchat/pkg/entities"
	"aptchat/pkg/middlewares"
	"aptchat/pkg/repo/driver/db"
	"aptchat/pkg/usecases"
)

type Controller struct {
	router      *gin.RouterGroup
	middleWares *middlewares.Middlewares
}

// NewController
func NewController(router *gin.RouterGroup, middleWare *middlewares.Middlewares) *Controller {
	return &Controller{
		router:      router,
		middleWares: middleWare,
	}
}

// InitRoutes
func (c *Controller) InitRoutes() {
	v1 := c.router.Group(config.GetConfig().Server.APIVersion)
	{
		v1.GET("/", c.RootHandler)
		v1.GET("/health", c.HealthHandler)
		v1.GET("/db/health", c.DatabaseHealthHandler)
	}
}

func (c *Controller) RootHandler(ctx *gin.Context) {
	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Welcome to the Aptchat API! Please refer to the documentation for information on available endpoints.",
		},
	)
}

// HealthHandler
func (c *Controller) HealthHandler(ctx *gin.Context) {
	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Heath check ok",
		},
	)
}

func (c *Controller) DatabaseHealthHandler(ctx *gin.Context) {
	session := db.GetCassandraSession()
	if session == nil || session.Closed() {
		ctx.JSON(
			http.StatusServiceUnavailable, entities.ErrorResponse{
				StatusCode: http.StatusServiceUnavailable,
				Message:    "Database connection is not alive",
			},
		)
		return
	}

	ctx.JSON(
		http.StatusOK, entities.Response{
			StatusCode: 200,
			Message:    "Database connection is alive",
		},
	)
}

// abortWithError maps usecase sentinels onto the wire taxonomy; anything
// unexpected surfaces as a generic server error without leaking internals
func abortWithError(ctx *gin.Context, err error, action string) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, usecases.ErrMissingFields):
		status = http.StatusBadRequest
		message = "Required fields are missing"
	case errors.Is(err, usecases.ErrNonceInvalid):
		status = http.StatusUnauthorized
		message = "Invalid or expired nonce"
	case errors.Is(err, usecases.ErrBadSignature):
		status = http.StatusUnauthorized
		message = "Signature verification failed"
	case errors.Is(err, usecases.ErrNotFound):
		status = http.StatusNotFound
		message = "Not found"
	case errors.Is(err, usecases.ErrConflict):
		status = http.StatusConflict
		message = "Conflicting request"
	}

	ctx.JSON(
		status, entities.ErrorResponse{
			StatusCode: status,
			Error:      action,
			Message:    message,
		},
	)
}
