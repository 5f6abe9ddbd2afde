package config

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	Port          string
	BotToken      string // xoxb-, Slack web API
	AppToken      string // xapp-, Socket Mode
	Channel       string // the monitored game channel ID
	CardsFile     string
	JoinReaction  string
	ReadyReaction string
	RevealTimeout time.Duration
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.BotToken = os.Getenv("SLACK_BOT_TOKEN")
	c.AppToken = os.Getenv("SLACK_APP_TOKEN")
	c.Channel = os.Getenv("GAME_CHANNEL")
	c.CardsFile = getenv("CARDS_FILE", "data/cards.txt")
	c.JoinReaction = getenv("JOIN_REACTION", "raised_hands")
	c.ReadyReaction = getenv("READY_REACTION", "white_check_mark")
	c.RevealTimeout = getdur("REVEAL_TIMEOUT", 10*time.Minute)
	return c
}

// Validate checks the settings that have no sane default.
func (c Config) Validate() error {
	if c.BotToken == "" {
		return errors.New("SLACK_BOT_TOKEN is required")
	}
	if c.AppToken == "" {
		return errors.New("SLACK_APP_TOKEN is required")
	}
	if c.Channel == "" {
		return errors.New("GAME_CHANNEL is required")
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
