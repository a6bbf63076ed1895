package main

import (
	"bookrater/internal/adapters/handler"
	"bookrater/internal/adapters/sender"
	"bookrater/internal/app"
	"bookrater/internal/config"
	"bookrater/internal/core/domain/command"
	"bookrater/internal/core/service"
	"context"
	"os"
	"os/signal"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting bookrater bot...")

	log.Info().Msg("reading config file...")
	if err := config.Load(os.Getenv("BOOKRATER_CONFIG")); err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	zerolog.SetGlobalLevel(config.LogLevel())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	token := viper.GetString("telegram.bot_token")
	opts := []bot.Option{
		bot.WithDefaultHandler(noOpHandler),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	s := sender.NewTelegram(b)

	rater, err := app.NewRater(ctx)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing rater")
	}

	auth, err := service.NewAuthorizer(s)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing authorizer")
	}

	tracker := service.NewUsageTracker(ctx, s, viper.GetInt("telegram.daily_rating_limit"))

	handlerTimeout, err := config.Duration("handler.timeout")
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for handler in config")
	}

	commandRegistry := &command.Registry{}

	commandRegistry.Register(command.NewRate(rater, s, auth, tracker, "/rate"))
	commandRegistry.Register(command.NewUsage(tracker, s, "/usage"))
	commandRegistry.Register(command.NewHelp(commandRegistry, s, "/help"))
	commandRegistry.Register(command.NewHelp(commandRegistry, s, "/start"))

	commandHandler := handler.NewCommand(commandRegistry, handlerTimeout)

	b.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, commandHandler.Handle)
	b.RegisterHandler(bot.HandlerTypePhotoCaption, "/", bot.MatchTypePrefix, commandHandler.Handle)

	log.Info().Msg("bot listening")
	b.Start(ctx)
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
