package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"aptchat/config"
	"aptchat/pkg/cache"
	controllersLib "aptchat/pkg/controllers"
	"aptchat/pkg/middlewares"
	repoLib "aptchat/pkg/repo"
	"aptchat/pkg/repo/driver/chain/aptos"
	"aptchat/pkg/repo/driver/db"
	"aptchat/pkg/repo/driver/medium"
	"aptchat/pkg/usecases"
	"aptchat/utilities"
)

func Run() {
	ctx := context.Background()
	ctx, cancelFn := context.WithCancel(ctx)

	// init the env config
	conf, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("unable to initialize environment variables %s", err.Error())
	}

	// Initialise the logger
	utilities.InitLogger(conf.LogLevel)
	log := utilities.NewLogger("run")

	if conf.Mode != "local" {
		log.Info("Initialising firebase")
		if err = medium.InitFirebase(ctx, conf); err != nil {
			log.WithError(err).Fatal("failed to initialise firebase")
		}
	}

	log.Info("Initialising DB")
	session, err := db.NewCassandraSession(conf.DB)
	if err != nil {
		log.Fatal("unable to create cassandra session ", err.Error())
	}
	defer session.Close()

	log.Info("Initialising cache")
	cache.Init()

	// here initalizing the router
	router := initRouter(conf)
	if conf.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	api := router.Group(conf.Server.APIPrefix)

	chatWS := medium.NewWebSocket(true)
	chain := aptos.New()
	nonces := cache.NewNonceRegistry(time.Duration(conf.Auth.NonceTTL) * time.Second)

	{
		// repo initialization
		userRepo := repoLib.NewUserRepo(session, conf)
		chatRepo := repoLib.NewChatRepo(session, conf)

		// initializing usecases
		authUseCases := usecases.NewAuthUseCases(userRepo, nonces, cast.ToDuration(conf.LoginTokenExpiry))
		userUseCases := usecases.NewUserUseCases(userRepo)
		chatUseCases := usecases.NewChatUseCases(chatRepo, userRepo, chatWS)
		contactsUseCases := usecases.NewContactsUseCases(userRepo, chatRepo)
		tokenUseCases := usecases.NewTokenUseCases(chatRepo, chain)

		// initializing middleware
		m := middlewares.NewMiddlewares()

		// initializing controllersLib
		authControllers := controllersLib.NewAuthController(api, authUseCases, userUseCases, m)
		chatControllers := controllersLib.NewChatController(api, chatUseCases, chatWS, m)
		contactsControllers := controllersLib.NewContactsController(api, contactsUseCases, m)
		profileControllers := controllersLib.NewProfileController(api, userUseCases, m)
		tokenControllers := controllersLib.NewTokenController(api, tokenUseCases, m)
		controllers := controllersLib.NewController(api, m)

		// init the routes
		authControllers.InitRoutes()
		chatControllers.InitRoutes(ctx)
		contactsControllers.InitRoutes()
		profileControllers.InitRoutes()
		tokenControllers.InitRoutes()
		controllers.InitRoutes()
	}

	// run the app
	launch(ctx, cancelFn, router)
}

func initRouter(conf *config.AptchatConfModel) *gin.Engine {
	router := gin.Default()
	gin.SetMode(gin.DebugMode)

	allowOrigins := []string{"*"}
	allowCredentials := false
	if conf.Server.ClientURL != "" {
		// cookie sessions need a concrete origin
		allowOrigins = []string{conf.Server.ClientURL}
		allowCredentials = true
	}

	router.Use(
		cors.New(
			cors.Config{
				AllowOrigins: allowOrigins,
				AllowMethods: []string{"PUT", "PATCH", "POST", "DELETE", "GET", "OPTIONS"},
				AllowHeaders: []string{
					"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept",
					"origin", "Cache-Control", "HOST",
				},
				AllowCredentials: allowCredentials,
				MaxAge:           12 * time.Hour,
			},
		),
	)

	mode := conf.Mode
	if mode == "stage" || mode == "local" {
		router.GET("/debug/pprof/*profile", gin.WrapF(pprof.Index))
	}

	router.Use(gzip.Gzip(gzip.DefaultCompression))

	return router
}

// launch
func launch(ctx context.Context, cancelFn context.CancelFunc, router *gin.Engine) {
	log := utilities.NewLogger("launch")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.GetConfig().Server.Port),
		Handler: router,
	}

	go func() {
		// service connections
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	fmt.Println("Server listening in...", config.GetConfig().Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown Server ...")
	cancelFn()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	log.Println("Server exiting")
}
