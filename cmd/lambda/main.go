package main

import (
	"context"
	"errors"
	"os"
	"time"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/labstack/echo/v4"
	adaptermiddleware "jobtracker/internal/adapters/http/middleware"
	adapterlogger "jobtracker/internal/adapters/logger"
	"jobtracker/internal/application"
	"jobtracker/internal/infrastructure/auth"
	"jobtracker/internal/infrastructure/dynamodb"
	httpiface "jobtracker/internal/interfaces/http"
	platformlambda "jobtracker/internal/platform/lambda"
)

type config struct {
	TableName string
	Region    string
	JWTSecret string
	TokenTTL  time.Duration
	AuthMode  adaptermiddleware.Mode
}

func loadConfig() (config, error) {
	authMode, err := adaptermiddleware.ParseAuthMode()
	if err != nil {
		return config{}, err
	}
	tokenTTL := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return config{}, errors.New("invalid TOKEN_TTL")
		}
		tokenTTL = ttl
	}
	cfg := config{
		TableName: os.Getenv("TABLE_NAME"),
		Region:    os.Getenv("AWS_REGION"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  tokenTTL,
		AuthMode:  authMode,
	}
	if cfg.TableName == "" || cfg.Region == "" {
		return config{}, errors.New("missing required environment variables")
	}
	if cfg.AuthMode == adaptermiddleware.ModeJWT && cfg.JWTSecret == "" {
		return config{}, errors.New("JWT_SECRET is required for jwt auth mode")
	}
	return cfg, nil
}

func main() {
	logger := adapterlogger.New("lambda")

	cfg, err := loadConfig()
	if err != nil {
		logger.Error(context.Background(), "configuration error", "error", err)
		os.Exit(1)
	}

	ddbClient, err := dynamodb.NewClient(context.Background(), cfg.Region, cfg.TableName)
	if err != nil {
		logger.Error(context.Background(), "failed to initialize dynamodb client", "error", err)
		os.Exit(1)
	}
	jobRepo := dynamodb.NewJobRepository(ddbClient)
	userRepo := dynamodb.NewUserRepository(ddbClient)
	testimonialRepo := dynamodb.NewTestimonialRepository(ddbClient)
	contactRepo := dynamodb.NewContactMessageRepository(ddbClient)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	jobSvc := application.NewJobService(jobRepo, logger)
	userSvc := application.NewUserService(userRepo, logger)
	authSvc := application.NewAuthService(userRepo, issuer, logger)
	testimonialSvc := application.NewTestimonialService(testimonialRepo, logger)
	contactSvc := application.NewContactService(contactRepo, logger)

	var verifier echo.MiddlewareFunc
	if cfg.AuthMode == adaptermiddleware.ModeJWT {
		verifier = auth.NewJWTMiddleware(cfg.JWTSecret).Handler
	}
	authMiddleware, err := adaptermiddleware.AuthMiddleware(verifier)
	if err != nil {
		logger.Error(context.Background(), "failed to initialize auth middleware", "error", err)
		os.Exit(1)
	}
	mw := httpiface.Middleware{
		Auth:          authMiddleware,
		RequestLogger: adaptermiddleware.RequestLogger(logger),
	}

	e := httpiface.NewRouter(
		httpiface.NewJobsHandler(jobSvc, logger),
		httpiface.NewUsersHandler(userSvc, logger),
		httpiface.NewAuthHandler(authSvc, logger),
		httpiface.NewTestimonialsHandler(testimonialSvc, logger),
		httpiface.NewContactFormsHandler(contactSvc, logger),
		mw,
	)
	awslambda.Start(platformlambda.NewHandler(e))
}
