package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jaekwang-park/todo-chat-api/internal/agent"
	cognitopkg "github.com/jaekwang-park/todo-chat-api/internal/cognito"
	"github.com/jaekwang-park/todo-chat-api/internal/config"
	todohttp "github.com/jaekwang-park/todo-chat-api/internal/http"
	"github.com/jaekwang-park/todo-chat-api/internal/llm"
	"github.com/jaekwang-park/todo-chat-api/internal/middleware"
	"github.com/jaekwang-park/todo-chat-api/internal/repository"
	"github.com/jaekwang-park/todo-chat-api/internal/service"
	"github.com/jaekwang-park/todo-chat-api/internal/tool"
)

func runServe(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"auth_dev_mode", cfg.AuthDevMode,
		"log_level", cfg.LogLevel,
		"db_driver", cfg.DB.Driver,
		"llm_model", cfg.LLM.Model,
	)

	// Database connection
	db, err := repository.NewDB(cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	if err := repository.Migrate(ctx, db, cfg.DB.Driver); err != nil {
		return err
	}
	logger.Info("database connected")

	// Repositories
	taskRepo := repository.NewSQLTask(db)
	userRepo := repository.NewSQLUser(db)
	conversationRepo := repository.NewSQLConversation(db)

	// Tools, agents and the language model
	executor := tool.NewExecutor(taskRepo, logger)
	client := llm.NewOpenAIClient(llm.OpenAIConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	})
	orchestrator := agent.NewOrchestrator(client, executor, logger)

	svc := todohttp.Services{
		DB:      db,
		Tasks:   service.NewTaskService(taskRepo),
		Users:   service.NewUserService(userRepo),
		Chat:    service.NewChatService(conversationRepo, orchestrator),
		Actions: agent.NewActionAgent(executor),
		Queries: agent.NewQueryAgent(executor),
	}

	// Cognito client + Auth service
	if cfg.Cognito.Enabled() {
		cognitoClient, err := cognitopkg.NewAWSClient(
			ctx,
			cfg.Cognito.Region,
			cfg.Cognito.AppClientID,
			cfg.Cognito.AppClientSecret,
		)
		if err != nil {
			return err
		}
		svc.Auth = service.NewAuthService(cognitoClient, userRepo)
		logger.Info("cognito client initialized", "region", cfg.Cognito.Region)
	} else {
		logger.Warn("cognito client not initialized: COGNITO_USER_POOL_ID or COGNITO_APP_CLIENT_ID not set")
	}

	// Auth middleware
	authCfg := middleware.AuthConfig{
		DevMode: cfg.AuthDevMode,
		Secret:  []byte(cfg.JWTSecret),
	}
	if cfg.Cognito.Enabled() {
		authCfg.JWKSClient = middleware.NewJWKSClient(middleware.CognitoJWKSURL(cfg.Cognito.Region, cfg.Cognito.UserPoolID))
		authCfg.Issuer = middleware.CognitoIssuer(cfg.Cognito.Region, cfg.Cognito.UserPoolID)
		authCfg.Audience = cfg.Cognito.AppClientID
	}
	auth, err := middleware.NewAuth(authCfg)
	if err != nil {
		return fmt.Errorf("failed to create auth middleware: %w", err)
	}

	// HTTP Server
	srv := todohttp.NewServer(cfg.ServerPort, logger, svc, auth)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}
