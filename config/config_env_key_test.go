package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"commerce": map[string]any{
			"storefrontToken": "",
			"apiVersion":      "",
		},
		"firebase": map[string]any{
			"webApiKey": "",
		},
		"store": map[string]any{
			"postgres": map[string]any{
				"sslMode": "disable",
			},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "COMMERCE_STOREFRONTTOKEN", want: "commerce.storefrontToken"},
		{envKey: "COMMERCE_APIVERSION", want: "commerce.apiVersion"},
		{envKey: "FIREBASE_WEBAPIKEY", want: "firebase.webApiKey"},
		{envKey: "STORE_POSTGRES_SSLMODE", want: "store.postgres.sslMode"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
