package auth

import (
	"log/slog"
	"slices"
	"strings"

	"fintrack/config"
	"fintrack/internal/domain/constants"
	"fintrack/internal/errors"
)

const minSecretLength = 32

// ErrWeakSigningSecret flags a deployment that signs tokens with a guessable key.
var ErrWeakSigningSecret = errors.New("signing secret is weak or a known default")

var knownDefaultSecrets = []string{
	"your_jwt_secret",
	"secret",
	"changeme",
	"jwt_secret",
}

// SigningKey is the process-wide token key. It is built once at startup and
// handed to the token service; nothing mutates it afterwards.
type SigningKey struct {
	secret []byte
	issuer string
}

// NewSigningKey validates the configured secret. An empty secret always fails.
// A weak secret fails in production and is logged as a misconfiguration elsewhere.
func NewSigningKey(cfg *config.Config, logger *slog.Logger) (*SigningKey, error) {
	secret := cfg.SecretKey.Access
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	issuer := ""
	if cfg.Auth != nil {
		issuer = cfg.Auth.Issuer
	}

	if isWeakSecret(secret) {
		if cfg.Env.Env == constants.EnvProduction {
			return nil, errors.WithStack(ErrWeakSigningSecret)
		}
		logger.Warn("Signing secret is weak; deployment is misconfigured",
			slog.String("env", cfg.Env.Env),
			slog.Int("minLength", minSecretLength),
		)
	}

	return &SigningKey{secret: []byte(secret), issuer: issuer}, nil
}

// NewStaticSigningKey builds a key without config, for tools and tests.
func NewStaticSigningKey(secret []byte, issuer string) *SigningKey {
	return &SigningKey{secret: slices.Clone(secret), issuer: issuer}
}

func isWeakSecret(secret string) bool {
	if len(secret) < minSecretLength {
		return true
	}

	return slices.Contains(knownDefaultSecrets, strings.ToLower(secret))
}
