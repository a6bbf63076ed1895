package app

import (
	"bookrater/internal/adapters/converter"
	"bookrater/internal/adapters/file"
	"bookrater/internal/adapters/generator"
	"bookrater/internal/core/service"
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// NewRater builds the rating pipeline from the loaded configuration.
func NewRater(ctx context.Context) (*service.Rater, error) {
	provider := viper.GetString("rating.provider")

	gen, err := generator.New(ctx, provider, generator.Options{
		GeminiAPIKey:     viper.GetString("gemini.api_key"),
		GeminiModel:      viper.GetString("gemini.model"),
		GeminiBaseURL:    viper.GetString("gemini.base_url"),
		OpenRouterAPIKey: viper.GetString("openrouter.api_key"),
		OpenRouterModel:  viper.GetString("openrouter.model"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed initializing %s generator: %w", provider, err)
	}

	downloader := file.NewDownloader(&http.Client{}, viper.GetInt64("image.max_download_bytes"))
	jpeg := converter.NewJPEG(viper.GetInt("image.jpeg_quality"), viper.GetInt("image.max_dimension"))

	log.Info().
		Str("provider", gen.Model().Provider).
		Str("model", gen.Model().Identifier).
		Msg("rating pipeline ready")

	return service.NewRater(downloader, jpeg, gen, viper.GetString("rating.prompt")), nil
}
