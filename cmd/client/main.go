package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/standoff/internal/clients/api"
	"github.com/KirkDiggler/standoff/internal/common/clock"
	"github.com/KirkDiggler/standoff/internal/common/sessiontoken"
	"github.com/KirkDiggler/standoff/internal/common/uuid"
	"github.com/KirkDiggler/standoff/internal/logger"
	"github.com/KirkDiggler/standoff/internal/models"
	sessionRepo "github.com/KirkDiggler/standoff/internal/repositories/session"
	gameService "github.com/KirkDiggler/standoff/internal/services/game"
	"github.com/KirkDiggler/standoff/internal/services/messaging"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const usage = `usage: standoff [-profile name] <command> [flags]

commands:
  create -name NAME -secs SECONDS   start a new game
  join -name NAME -token TOKEN      join a game by its join token
  status                            show the current game
  round start                       start the next round (game master only)
  round show                        show the latest round
  sessions                          list stored sessions
  logout                            forget the stored session
`

type app struct {
	games    gameService.Service
	messages messaging.Service
	clock    clock.Clock
	profile  string
	out      io.Writer
}

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level: getEnv("LOG_LEVEL", "info"),
		File:  getEnv("LOG_FILE", ""),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseURL := getEnv("STANDOFF_API_URL", api.DefaultBaseURL)

	apiClient, err := api.NewHTTP(&api.Config{
		BaseURL:       baseURL,
		UUIDGenerator: uuid.New(),
		Logger:        log,
	})
	if err != nil {
		log.Fatal("Failed to create API client", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
		Password:    getEnv("REDIS_PASSWORD", ""),
		DB:          0,
		DialTimeout: 2 * time.Second,
	})
	defer redisClient.Close()

	// Without Redis a game can still be created, it just can't be resumed later
	var sessions sessionRepo.Repository
	repo, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Warn("Session storage unavailable", zap.Error(err))
	} else {
		sessions = repo
	}

	sysClock := clock.New()

	games, err := gameService.New(&gameService.Config{
		APIClient:   apiClient,
		SessionRepo: sessions,
		TokenDecoder: sessiontoken.New(&sessiontoken.Config{
			Key: []byte(getEnv("STANDOFF_SESSION_KEY", "")),
		}),
		Clock:  sysClock,
		Logger: log,
	})
	if err != nil {
		log.Fatal("Failed to create game service", zap.Error(err))
	}

	messages, err := messaging.NewService(&messaging.ServiceConfig{
		BaseURL: baseURL,
	})
	if err != nil {
		log.Fatal("Failed to create messaging service", zap.Error(err))
	}

	fs := flag.NewFlagSet("standoff", flag.ExitOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	profile := fs.String("profile", getEnv("STANDOFF_PROFILE", models.DefaultProfile), "name to store the session under")
	_ = fs.Parse(os.Args[1:])

	a := &app{
		games:    games,
		messages: messages,
		clock:    sysClock,
		profile:  *profile,
		out:      os.Stdout,
	}

	if err := a.run(ctx, fs.Args()); err != nil {
		log.Debug("Command failed", zap.Error(err))

		msg, msgErr := messages.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
		if msgErr != nil {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stderr, msg.Message)
		}
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("no command given")
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "create":
		return a.create(ctx, args)
	case "join":
		return a.join(ctx, args)
	case "status":
		return a.status(ctx)
	case "round":
		return a.round(ctx, args)
	case "sessions":
		return a.listSessions(ctx)
	case "logout":
		return a.logout(ctx)
	}

	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "your display name")
	secs := fs.String("secs", "90", "seconds per round")
	_ = fs.Parse(args)

	output, err := a.games.RequestGameData(ctx, &gameService.RequestGameDataInput{
		Name:            *name,
		SecondsPerRound: *secs,
		Profile:         a.profile,
	})
	if err != nil {
		return err
	}

	return a.printGame(ctx, output.Game)
}

func (a *app) join(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	name := fs.String("name", "", "your display name")
	token := fs.String("token", "", "join token or join link")
	_ = fs.Parse(args)

	// Accept a full join link as well as the bare token
	joinToken := (&models.Game{JoinLink: *token}).JoinToken()

	output, err := a.games.JoinGame(ctx, &gameService.JoinGameInput{
		JoinToken: joinToken,
		Name:      *name,
		Profile:   a.profile,
	})
	if err != nil {
		return err
	}

	return a.printGame(ctx, output.Game)
}

func (a *app) status(ctx context.Context) error {
	output, err := a.games.GetGame(ctx, &gameService.GetGameInput{Profile: a.profile})
	if err != nil {
		return err
	}

	return a.printGame(ctx, output.Game)
}

func (a *app) round(ctx context.Context, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}

	var round *models.Round
	switch sub {
	case "start":
		output, err := a.games.StartRound(ctx, &gameService.StartRoundInput{Profile: a.profile})
		if err != nil {
			return err
		}
		round = output.Round
	case "show":
		output, err := a.games.GetRound(ctx, &gameService.GetRoundInput{Profile: a.profile})
		if err != nil {
			return err
		}
		round = output.Round
	default:
		return fmt.Errorf("unknown round command %q", sub)
	}

	msg, err := a.messages.GetRoundMessage(ctx, &messaging.GetRoundMessageInput{Round: round})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg.Message)
	return nil
}

func (a *app) listSessions(ctx context.Context) error {
	output, err := a.games.ListSessions(ctx, &gameService.ListSessionsInput{})
	if err != nil {
		return err
	}

	if len(output.Sessions) == 0 {
		fmt.Fprintln(a.out, "No stored sessions")
		return nil
	}

	now := a.clock.Now()
	for _, session := range output.Sessions {
		msg, err := a.messages.GetSessionMessage(ctx, &messaging.GetSessionMessageInput{
			Session: session,
			Now:     now,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, msg.Message)
	}

	return nil
}

func (a *app) logout(ctx context.Context) error {
	output, err := a.games.EndSession(ctx, &gameService.EndSessionInput{Profile: a.profile})
	if err != nil {
		return err
	}

	if output.Removed {
		fmt.Fprintf(a.out, "Forgot session %q\n", a.profile)
	} else {
		fmt.Fprintf(a.out, "No session stored for %q\n", a.profile)
	}
	return nil
}

func (a *app) printGame(ctx context.Context, game *models.Game) error {
	msg, err := a.messages.GetGameSummaryMessage(ctx, &messaging.GetGameSummaryMessageInput{Game: game})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg.Message)
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
