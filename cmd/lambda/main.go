package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	zlog "github.com/rs/zerolog/log"

	"github.com/dharmasatrya/faregate/internal/app"
	"github.com/dharmasatrya/faregate/internal/config"
	"github.com/dharmasatrya/faregate/internal/handler"
	"github.com/dharmasatrya/faregate/internal/logging"
)

func main() {
	cfg := config.FromEnv()
	log := logging.New(os.Stdout, cfg.LogLevel, "json")

	a, err := app.New(cfg, log, nil)
	if err != nil {
		zlog.Fatal().Err(err).Msg("could not start fare search function")
	}

	lambda.Start(handler.LambdaHandler(a.Service, log))
}
