package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kairopay/internal/config"
	"kairopay/internal/delivery"
	"kairopay/internal/infra/privy"
	"kairopay/internal/logger"
	"kairopay/internal/service"

	"github.com/gin-gonic/gin"
	cors "github.com/rs/cors/wrapper/gin"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Db     *gorm.DB
	Log    logger.Logger
}

func (app *App) Start() {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(cors.Default())

	verifier, err := privy.NewVerifier(app.Config.Privy.VerificationKey, app.Config.Privy.AppID)
	if err != nil {
		panic("privy verifier: " + err.Error())
	}

	services := service.NewServices(app.Db, app.Log, verifier, app.Config)

	services.WebhookSender.Start()
	defer services.WebhookSender.Close()

	{
		h := delivery.InitHandler(services, app.Db, app.Config, app.Log)

		h.InitAPI(r)
	}

	eChan := make(chan error)
	interrupt := make(chan os.Signal, 1)

	fmt.Println("kairopay api is starting")

	go func() {
		err := r.Run(app.Config.Api.Ipv4)
		if err != nil {
			eChan <- fmt.Errorf("listen and serve: %w", err)
		}
	}()

	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-eChan:
		app.Log.TemplHTTPError("app fatal error", app.Config.Api.Ipv4, err)
		return
	case <-interrupt:
		return
	}
}
