// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the Green+
// application. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, an optional
// JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as session token parameters.
	App App `envPrefix:"APP_"`

	// Storage holds the flat-file persistence settings: the data directory
	// and the four CSV table file names.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Progression holds tunables of the progression engine.
	Progression Progression `envPrefix:"PROGRESSION_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control the session
// token lifecycle.
type App struct {
	// TokenSignKey is the secret key used to sign and verify session JWTs.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid after
	// issuance (e.g. "24h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage holds the flat-file persistence settings. The CSV tables are the
// durable contract of the application; external tools may consume them.
type Storage struct {
	// DataDir is the directory holding all CSV tables. Created on first run.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// UsersFile is the file name of the users table inside DataDir.
	// Env: STORAGE_USERS_FILE
	UsersFile string `env:"USERS_FILE"`

	// ProgressFile is the file name of the append-only progress log.
	// Env: STORAGE_PROGRESS_FILE
	ProgressFile string `env:"PROGRESS_FILE"`

	// TasksFile is the file name of the task catalog table.
	// Env: STORAGE_TASKS_FILE
	TasksFile string `env:"TASKS_FILE"`

	// RewardsFile is the file name of the reward catalog table.
	// Env: STORAGE_REWARDS_FILE
	RewardsFile string `env:"REWARDS_FILE"`
}

// Server holds network and timeout settings for the inbound HTTP transport.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Progression holds tunables of the progression engine.
type Progression struct {
	// DailyTaskLimit is the maximum number of tasks a user may complete per
	// calendar day.
	// Env: PROGRESSION_DAILY_TASK_LIMIT
	DailyTaskLimit int `env:"DAILY_TASK_LIMIT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
