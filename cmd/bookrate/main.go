package main

import (
	"bookrater/internal/app"
	"bookrater/internal/config"
	"bookrater/internal/core/service"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: stderr})

	flags := pflag.NewFlagSet("bookrate", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.StringP("config", "c", "", "path to a TOML config file")
	flags.StringP("provider", "p", "", "model provider: gemini or openrouter")
	flags.StringP("model", "m", "", "model identifier for the selected provider")
	flags.Duration("timeout", 0, "per-image timeout, e.g. 30s")
	flags.StringP("log-level", "l", "", "log level: debug, info, warn, error")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: bookrate [flags] <image-url>...\n\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	if err := config.Load(*configPath); err != nil {
		log.Error().Err(err).Msg("could not load config")
		return 1
	}

	bindFlags(flags)
	zerolog.SetGlobalLevel(config.LogLevel())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rater, err := app.NewRater(ctx)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize rater")
		return 1
	}

	timeout, err := config.Duration("rating.timeout")
	if err != nil {
		log.Error().Err(err).Send()
		return 1
	}

	code := 0
	for _, imageURL := range flags.Args() {
		if rateOne(ctx, rater, imageURL, timeout, stdout) != nil {
			code = 1
		}
	}

	return code
}

func rateOne(ctx context.Context, rater *service.Rater, imageURL string, timeout time.Duration,
	stdout io.Writer) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	rating, err := rater.Rate(ctx, imageURL)
	if err != nil {
		fmt.Fprintf(stdout, "Book Rating: %s\n", err)
		return err
	}

	fmt.Fprintf(stdout, "Book Rating: %s\n", rating.Text)
	return nil
}

// bindFlags lets explicitly set flags override the config file and environment.
func bindFlags(flags *pflag.FlagSet) {
	_ = viper.BindPFlag("rating.provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("rating.timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("app.log_level", flags.Lookup("log-level"))

	if model := flags.Lookup("model"); model.Changed {
		viper.Set(viper.GetString("rating.provider")+".model", model.Value.String())
	}
}
