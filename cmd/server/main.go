package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"wordsmith/internal/config"
	"wordsmith/internal/deck"
	"wordsmith/internal/feed"
	"wordsmith/internal/game"
	"wordsmith/internal/slackbot"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`Wordsmith - word-building party game for Slack

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port for the HTTP status server (default: 8080 or PORT env var)

Environment Variables:
  SLACK_BOT_TOKEN     Slack bot token (xoxb-..., required)
  SLACK_APP_TOKEN     Slack app-level token for Socket Mode (xapp-..., required)
  GAME_CHANNEL        Channel ID the bot plays in (required)
  CARDS_FILE          Path to the card catalog (default: data/cards.txt)
  JOIN_REACTION       Reaction that joins a round (default: raised_hands)
  READY_REACTION      Reaction that marks a player done (default: white_check_mark)
  REVEAL_TIMEOUT      Age after which a partial reveal is allowed (default: 10m)
  LOG_LEVEL           zerolog level (default: info)
  PORT                HTTP status server port (default: 8080)

Say "rules" in the game channel once the bot is running.
`, os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("Wordsmith %s\n", version)
		return
	}

	_ = godotenv.Load()

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cfg := config.FromEnv()
	if *portFlag != "" {
		cfg.Port = *portFlag
	}
	if err := cfg.Validate(); err != nil {
		zerologlog.Fatal().Err(err).Msg("invalid configuration")
	}

	catalog, err := deck.LoadCatalog(cfg.CardsFile)
	if err != nil {
		zerologlog.Fatal().Err(err).Msg("failed to load card catalog")
	}
	p, r, s := catalog.Size()
	zerologlog.Info().Int("prefixes", p).Int("roots", r).Int("suffixes", s).Msg("card catalog loaded")

	api := slack.New(cfg.BotToken, slack.OptionAppLevelToken(cfg.AppToken))
	auth, err := api.AuthTest()
	if err != nil {
		zerologlog.Fatal().Err(err).Msg("slack auth failed")
	}
	zerologlog.Info().Str("user", auth.User).Str("team", auth.Team).Msg("connected to slack")

	session := game.NewSession(catalog, slackbot.NewSender(api), game.Config{
		Channel:       cfg.Channel,
		JoinReaction:  cfg.JoinReaction,
		ReadyReaction: cfg.ReadyReaction,
		RevealTimeout: cfg.RevealTimeout,
	})

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})
	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, session.Snapshot())
	})

	spectators := feed.New(session.Snapshot())
	session.SetObserver(spectators.Broadcast)
	io := spectators.Mount(engine)
	defer io.Close()

	go func() {
		zerologlog.Info().Str("port", cfg.Port).Msg("status server listening")
		if err := engine.Run(":" + cfg.Port); err != nil {
			zerologlog.Fatal().Err(err).Msg("http server exited")
		}
	}()

	// One goroutine drains the event channel, so session handlers run one
	// at a time in arrival order.
	sm := socketmode.New(api)
	router := slackbot.NewRouter(session, cfg.Channel, auth.UserID)
	ctx := context.Background()
	go func() {
		for evt := range sm.Events {
			router.HandleEvent(ctx, evt, sm)
		}
	}()

	zerologlog.Info().Str("channel", cfg.Channel).Msg("listening for game events")
	if err := sm.RunContext(ctx); err != nil {
		zerologlog.Fatal().Err(err).Msg("socket mode exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
