package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stefando/aadClaimsAWS/internal/config"
	"github.com/stefando/aadClaimsAWS/internal/logging"
	"github.com/stefando/aadClaimsAWS/internal/pretoken"
)

// Handler adapts the Cognito Pre Token Generation V2_0 trigger to the
// transformer and decides whether extraction failures reach Cognito.
type Handler struct {
	logger      *zap.Logger
	failOnError bool
}

// NewHandler creates a handler logging through logger
func NewHandler(logger *zap.Logger, failOnError bool) *Handler {
	return &Handler{logger: logger, failOnError: failOnError}
}

// HandleRequest processes one pre token generation event. The raw map keeps
// key presence visible, which the typed event struct would hide.
func (h *Handler) HandleRequest(ctx context.Context, event map[string]any) (map[string]any, error) {
	logger := h.logger.With(zap.String("requestId", requestID(ctx)))
	if header, err := pretoken.DecodeHeader(event); err != nil {
		logger.Debug("Could not decode event header", zap.Error(err))
	} else {
		logger = logger.With(pretoken.HeaderFields(header)...)
	}

	result := pretoken.NewTransformer(logger).Transform(event)
	if result.Err != nil {
		if h.failOnError {
			return result.Event, result.Err
		}
		return result.Event, nil
	}

	logger.Info("Processed pre token generation event", zap.Bool("applied", result.Applied))
	return result.Event, nil
}

// requestID returns the Lambda request id, or a fresh one for local invocations
func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}

func main() {
	var cfg config.PreToken
	if err := config.ParseEnv(&cfg); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Pre token handler initialized", zap.Bool("failOnExtractionError", cfg.FailOnExtractionError))
	lambda.Start(NewHandler(logger, cfg.FailOnExtractionError).HandleRequest)
}
