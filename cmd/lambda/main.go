package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bbernstein/meetpoint/backend-go/internal/api"
	"github.com/bbernstein/meetpoint/backend-go/internal/app"
	"github.com/bbernstein/meetpoint/backend-go/internal/config"
	"github.com/rs/zerolog/log"
)

type requestHandler interface {
	HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

var (
	lambdaStart = lambda.Start // Allow mocking of lambda.Start in tests
	handler     requestHandler
	setupOnce   sync.Once
	initHandler = defaultInitHandler
)

func defaultInitHandler(ctx context.Context) (requestHandler, error) {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	h, err := app.NewHandler(ctx, cfg, config.GetCacheConfig())
	if err != nil {
		return nil, err
	}
	return h, nil
}

// InitializeService builds the handler once per container
func InitializeService() error {
	var initError error
	setupOnce.Do(func() {
		log.Debug().Msg("Initializing meetpoint service...")
		var err error
		handler, err = initHandler(context.Background())
		if err != nil {
			handler = nil
			initError = fmt.Errorf("failed to initialize handler: %w", err)
			log.Error().Err(err).Msg("Failed to initialize handler")
			return
		}
		log.Debug().Msg("Meetpoint service initialized successfully")
	})
	return initError
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if handler == nil {
		return api.Error(api.MsgInternalError, http.StatusInternalServerError)
	}
	return handler.HandleRequest(ctx, request)
}

func main() {
	if err := InitializeService(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	lambdaStart(handleRequest)
}
