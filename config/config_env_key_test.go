package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"http": map[string]any{
			"rateLimit": map[string]any{
				"requestsPerSecond": 5,
			},
		},
		"storage": map[string]any{
			"autoMigrate": true,
		},
		"pubsub": map[string]any{
			"topicUrl":        "",
			"credentialsFile": "",
		},
		"auth": map[string]any{
			"tokenTTL":   "1h",
			"bcryptCost": 10,
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := map[string]string{
		"POSTGRES_SSLMODE":                 "postgres.sslMode",
		"POSTGRES_MASTER_USERNAME":         "postgres.master.userName",
		"HTTP_RATELIMIT_REQUESTSPERSECOND": "http.rateLimit.requestsPerSecond",
		"STORAGE_AUTOMIGRATE":              "storage.autoMigrate",
		"PUBSUB_TOPICURL":                  "pubsub.topicUrl",
		"PUBSUB_CREDENTIALSFILE":           "pubsub.credentialsFile",
		"AUTH_TOKENTTL":                    "auth.tokenTTL",
		"AUTH_BCRYPTCOST":                  "auth.bcryptCost",
		"SECRETKEY_ACCESS":                 "secretKey.access",
		"HTTP_RATELIMIT_BURST":             "http.rateLimit.burst",
		"NEW_FEATURE_FLAG":                 "new.feature.flag",
	}

	for envKey, want := range tests {
		t.Run(envKey, func(t *testing.T) {
			assert.Equal(t, want, canonicalizeEnvKey(envKey, existing))
		})
	}
}
