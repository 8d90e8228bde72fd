package main

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"leadqualify/internal/domain/sqlite"
	"leadqualify/internal/domain/sqlite/repository"
	handler2 "leadqualify/internal/http/handler"
	authmw "leadqualify/internal/http/middleware"
	cognitoclient "leadqualify/internal/infrastructure/aws/cognito"
	"leadqualify/internal/service"
	"leadqualify/internal/utils"
	"leadqualify/internal/utils/uid"
)

const envVarsPrefix = "/leadqualify/prod/"

func main() {
	validate := validator.New()

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	uid.Init(1)

	// Init SQLite
	db, err := sqlite.Init()
	if err != nil {
		panic(err)
	}

	// Public keys of the identity provider, used to verify bearer tokens
	err = utils.InitJWKS(os.Getenv("AWS_COGNITO_REGION"), os.Getenv("AWS_COGNITO_POOL_ID"))
	if err != nil {
		panic(err)
	}

	// Init cognito client
	cogClient, err := cognitoclient.InitCognitoClient(context.Background())
	if err != nil {
		panic(err)
	}

	// Getting repos
	templateRepo := repository.NewTemplateRepository(db)
	companyRepo := repository.NewCompanyQualificationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Getting services
	gate := service.NewIdentityGate(userRepo, utils.ValidateToken)
	templateService := service.NewTemplateService(templateRepo, validate)
	companyService := service.NewCompanyQualificationService(companyRepo, validate)
	materializeService := service.NewMaterializeService(templateRepo, companyService)
	userService := service.NewUserService(userRepo, validate, cogClient)

	// Getting handlers
	templateRoutes := handler2.NewTemplateDefault(templateService, gate)
	companyRoutes := handler2.NewCompanyDefault(companyService, materializeService, gate)
	userRoutes := handler2.NewUserDefault(userService)
	authRequired := authmw.NewAuthMiddleware(gate)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))

	// Qualification rubrics (action-dispatch endpoints)
	e.POST("/api/qualification-templates", templateRoutes.Dispatch)
	e.POST("/api/company-qualifications", companyRoutes.Dispatch)
	e.POST("/api/company-qualifications/materialize", companyRoutes.Materialize)

	// Users
	e.POST("/api/users", userRoutes.CreateUser)
	e.POST("/api/users/login", userRoutes.CreateLogin)
	e.POST("/api/users/confirms", userRoutes.ConfirmSignup)
	e.POST("/api/users/confirms/resend", userRoutes.ResendConfirmation)
	e.GET("/api/users/me", userRoutes.GetSelf, authRequired)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":7070"); err != nil {
		panic(err)
	}
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
