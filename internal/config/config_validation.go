// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error from
// errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration == 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DataDir == "" ||
		cfg.Storage.UsersFile == "" ||
		cfg.Storage.ProgressFile == "" ||
		cfg.Storage.TasksFile == "" ||
		cfg.Storage.RewardsFile == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout == 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Progression.DailyTaskLimit < 1 {
		return ErrInvalidProgressionConfigs
	}

	return nil
}
