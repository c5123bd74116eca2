package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a single pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for the given environment
func ValidateConfig(cfg *Config, env Environment) error {
	var errs ValidationErrors

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "jwt_secret secret or JWT_SECRET variable is required"})
	}
	if cfg.TokenTTL <= 0 {
		errs = append(errs, ValidationError{"TOKEN_TTL_SECONDS", "must be positive"})
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			errs = append(errs, ValidationError{"DB_HOST", "is required"})
		}
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_NAME", "is required"})
		}
		if cfg.DBUser == "" {
			errs = append(errs, ValidationError{"DB_USER", "db_user secret or DB_USER variable is required"})
		}
		if (env == Production || env == CI) && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DB_PASSWORD", "db_password secret or DB_PASSWORD variable is required"})
		}
	case DriverSQLite:
		if env == Production {
			errs = append(errs, ValidationError{"DB_DRIVER", "sqlite is not allowed in production"})
		}
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "is required"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	switch cfg.LLMProvider {
	case ProviderDeepSeek, ProviderGemini:
	default:
		errs = append(errs, ValidationError{"LLM_PROVIDER", fmt.Sprintf("unsupported provider %q", cfg.LLMProvider)})
	}
	if cfg.LLMTimeout <= 0 {
		errs = append(errs, ValidationError{"LLM_TIMEOUT_SECONDS", "must be positive"})
	}
	if env == Production && cfg.LLMAPIKey == "" {
		errs = append(errs, ValidationError{"LLM_API_KEY", "llm_api_key secret or LLM_API_KEY variable is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
