// Package state holds the process-wide singletons: logger, config,
// validator and the discord session.
package state

import (
	"context"
	"os"

	"saltbot/config"

	"github.com/bwmarrin/discordgo"
	"github.com/go-playground/validator/v10"
	"github.com/infinitybotlist/eureka/genconfig"
	"github.com/infinitybotlist/eureka/snippets"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	Discord   *discordgo.Session
	Logger    *zap.SugaredLogger = snippets.CreateZap().Sugar()
	Context   = context.Background()
	Validator = validator.New()

	Config *config.Config
)

func Setup() {
	// A .env is optional, real deployments set the env directly
	_ = godotenv.Load()

	genconfig.GenConfig(config.Config{})

	cfg, err := os.ReadFile("config.yaml")

	if err != nil {
		panic(err)
	}

	err = yaml.Unmarshal(cfg, &Config)

	if err != nil {
		panic(err)
	}

	// Secrets from the environment override the config file
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		Config.DiscordAuth.Token = v
	}

	if v := os.Getenv("GIPHY_AUTH"); v != "" {
		Config.APIs.GiphyKey = v
	}

	if v := os.Getenv("YOUTUBE_AUTH"); v != "" {
		Config.APIs.YoutubeKey = v
	}

	if v := os.Getenv("SENTRY_DSN"); v != "" {
		Config.APIs.SentryDSN = v
	}

	err = Validator.Struct(Config)

	if err != nil {
		panic("configError: " + err.Error())
	}

	Discord, err = discordgo.New("Bot " + Config.DiscordAuth.Token)

	if err != nil {
		panic(err)
	}

	Discord.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent
}
