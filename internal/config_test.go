package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testYAML = `
lms:
  host: 10.0.0.5
  username: admin
  password: secret
  player: "00:04:20:aa:bb:cc"
artnet:
  host: 10.0.0.255
targetFPS: 25
retryDelaySec: 2
`

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("LMS_SERVER_PORT", "9091")
	t.Setenv("TARGET_FPS", "40")
	t.Setenv("DEBUG", "True")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	expected := SessionConfig{
		LMSHost:     "10.0.0.5",
		LMSPort:     9091,
		Username:    "admin",
		Password:    "secret",
		Player:      "00:04:20:aa:bb:cc",
		ArtNetHost:  "10.0.0.255",
		ArtNetPort:  defaultArtNetPort,
		TargetFPS:   40,
		RetryDelay:  2 * time.Second,
		DialTimeout: defaultTimeoutSec * time.Second,
		IOTimeout:   defaultTimeoutSec * time.Second,
		Debug:       true,
	}
	if *cfg != expected {
		t.Errorf("got config %+v\nexpected %+v", *cfg, expected)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("LMS_SERVER_IP", "lms.local")
	t.Setenv("PLAYER_MAC", "aa:bb")
	t.Setenv("ARTNET_TARGET_IP", "2.0.0.1")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LMSPort != defaultLMSPort || cfg.TargetFPS != defaultFPS || cfg.RetryDelay != defaultRetrySec*time.Second {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestConfigApplyEnvInvalidNumber(t *testing.T) {
	c := defaultConf()
	env := map[string]string{"TARGET_FPS": "fast"}

	err := c.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if err == nil || !strings.Contains(err.Error(), "TARGET_FPS") {
		t.Errorf("expected TARGET_FPS error, got %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *conf)
		wantErr string
	}{
		{name: "valid", mutate: func(c *conf) {}},
		{name: "no host", mutate: func(c *conf) { c.LMS.Host = "" }, wantErr: "lms host is required"},
		{name: "no player", mutate: func(c *conf) { c.LMS.Player = "" }, wantErr: "player is required"},
		{name: "no artnet host", mutate: func(c *conf) { c.ArtNet.Host = "" }, wantErr: "artnet host is required"},
		{name: "bad port", mutate: func(c *conf) { c.ArtNet.Port = 70000 }, wantErr: "invalid artnet port"},
		{name: "zero fps", mutate: func(c *conf) { c.TargetFPS = 0 }, wantErr: "target fps must be positive"},
		{name: "negative retry", mutate: func(c *conf) { c.RetryDelay = -1 }, wantErr: "retry delay"},
		{name: "negative dial timeout", mutate: func(c *conf) { c.DialTimeout = -1 }, wantErr: "dial timeout must not be negative"},
		{name: "negative io timeout", mutate: func(c *conf) { c.IOTimeout = -2 }, wantErr: "io timeout must not be negative"},
		{name: "zero timeouts", mutate: func(c *conf) { c.DialTimeout, c.IOTimeout = 0, 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaultConf()
			c.LMS.Host = "lms"
			c.LMS.Player = "player"
			c.ArtNet.Host = "artnet"
			tt.mutate(c)

			_, err := c.resolve()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
