package main

import (
	"os"

	"kairopay/internal/app"
	"kairopay/internal/config"
	"kairopay/internal/infra/postgres"
	"kairopay/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load(os.Getenv("ENVPATH"))
	if err != nil {
		panic("Can't load .env file: " + err.Error())
	}

	config := config.ReadConfig()
	config.DB = postgres.Init(config)

	log := logger.Init(config)

	app := &app.App{
		Config: config,
		Db:     config.DB,
		Log:    log,
	}

	app.Start()
}
