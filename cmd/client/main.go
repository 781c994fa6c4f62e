package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/greenplus/greenplus/internal/adapter"
	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// A thin command-line consumer of the Green+ HTTP API. It signs in (or
// registers), runs one query command, and prints the JSON result to stdout.
func main() {
	printBuildInfo()

	var (
		address  = flag.String("s", "localhost:8080", "Green+ server address")
		timeout  = flag.Duration("timeout", 10*time.Second, "request timeout")
		email    = flag.String("email", "", "account email")
		password = flag.String("password", "", "account password")
		name     = flag.String("name", "", "display name (registers a new account when set)")
		days     = flag.Int("days", 0, "summary window in days (0 uses the server default)")
		limit    = flag.Int("limit", 10, "leaderboard size")
	)
	flag.Parse()

	log := logger.NewLogger("greenplus-client")

	if *email == "" || *password == "" {
		log.Fatal().Msg("-email and -password are required")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(*address, *timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *name != "" {
		_, err = serverAdapter.Register(ctx, models.RegisterRequest{Email: *email, Password: *password, Name: *name})
	} else {
		_, err = serverAdapter.Login(ctx, models.LoginRequest{Email: *email, Password: *password})
	}
	if err != nil {
		log.Fatal().Err(err).Msg("sign in")
	}

	command := flag.Arg(0)
	if command == "" {
		command = "profile"
	}

	result, err := runCommand(ctx, serverAdapter, command, *days, *limit)
	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("command failed")
	}

	printJSON(result)
}

func runCommand(ctx context.Context, serverAdapter adapter.ServerAdapter, command string, days, limit int) (any, error) {
	switch command {
	case "profile":
		return serverAdapter.Profile(ctx)
	case "tasks":
		return serverAdapter.Tasks(ctx)
	case "quota":
		return serverAdapter.Quota(ctx)
	case "rewards":
		return serverAdapter.Rewards(ctx)
	case "history":
		return serverAdapter.History(ctx)
	case "summary":
		return serverAdapter.DailySummary(ctx, days)
	case "leaderboard":
		return serverAdapter.Leaderboard(ctx, limit)
	default:
		return nil, fmt.Errorf("unknown command %q (want profile|tasks|quota|rewards|history|summary|leaderboard)", command)
	}
}

func printJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(v)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
