package internal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultLMSPort    = 9090
	defaultArtNetPort = 6454
	defaultFPS        = 30
	defaultRetrySec   = 5
	defaultTimeoutSec = 5
)

func defaultConf() *conf {
	return &conf{
		LMS:         confLMS{Port: defaultLMSPort},
		ArtNet:      confArtNet{Port: defaultArtNetPort},
		TargetFPS:   defaultFPS,
		RetryDelay:  defaultRetrySec,
		DialTimeout: defaultTimeoutSec,
		IOTimeout:   defaultTimeoutSec,
	}
}

// LoadConfig reads the yaml config file if it exists, applies environment
// overrides on top and validates the result.
func LoadConfig(path string) (*SessionConfig, error) {
	c := defaultConf()

	if path != "" {
		confBytes, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Debugf("config file %v not found, using environment only", path)
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(confBytes, c); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
			}
		}
	}

	if err := c.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return c.resolve()
}

func (c *conf) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %v %q: %w", key, v, err)
		}
		*dst = n
		return nil
	}

	str("LMS_SERVER_IP", &c.LMS.Host)
	str("LMS_USERNAME", &c.LMS.Username)
	str("LMS_PASSWORD", &c.LMS.Password)
	str("PLAYER_MAC", &c.LMS.Player)
	str("ARTNET_TARGET_IP", &c.ArtNet.Host)

	for key, dst := range map[string]*int{
		"LMS_SERVER_PORT":    &c.LMS.Port,
		"TARGET_FPS":         &c.TargetFPS,
		"RETRY_DELAY_SEC":    &c.RetryDelay,
		"ARTNET_TARGET_PORT": &c.ArtNet.Port,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup("DEBUG"); ok {
		c.Debug = strings.EqualFold(strings.TrimSpace(v), "true")
	}
	return nil
}

func (c *conf) resolve() (*SessionConfig, error) {
	var errs []error
	if c.LMS.Host == "" {
		errs = append(errs, errors.New("lms host is required"))
	}
	if c.LMS.Player == "" {
		errs = append(errs, errors.New("player is required"))
	}
	if c.ArtNet.Host == "" {
		errs = append(errs, errors.New("artnet host is required"))
	}
	if c.LMS.Port < 1 || c.LMS.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid lms port: %v", c.LMS.Port))
	}
	if c.ArtNet.Port < 1 || c.ArtNet.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid artnet port: %v", c.ArtNet.Port))
	}
	if c.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("target fps must be positive: %v", c.TargetFPS))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("retry delay must not be negative: %v", c.RetryDelay))
	}
	if c.DialTimeout < 0 {
		errs = append(errs, fmt.Errorf("dial timeout must not be negative: %v", c.DialTimeout))
	}
	if c.IOTimeout < 0 {
		errs = append(errs, fmt.Errorf("io timeout must not be negative: %v", c.IOTimeout))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &SessionConfig{
		LMSHost:     c.LMS.Host,
		LMSPort:     c.LMS.Port,
		Username:    c.LMS.Username,
		Password:    c.LMS.Password,
		Player:      c.LMS.Player,
		ArtNetHost:  c.ArtNet.Host,
		ArtNetPort:  c.ArtNet.Port,
		TargetFPS:   c.TargetFPS,
		RetryDelay:  time.Duration(c.RetryDelay) * time.Second,
		DialTimeout: time.Duration(c.DialTimeout) * time.Second,
		IOTimeout:   time.Duration(c.IOTimeout) * time.Second,
		Debug:       c.Debug,
	}, nil
}
