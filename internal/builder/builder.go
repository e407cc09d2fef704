package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/okzhangyubin/image-studio/internal/runner"

	"github.com/patrickmn/go-cache"
	imggen "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"google.golang.org/genai"
)

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.2)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeImageGenerator は ImageGeneratorを初期化します。
func InitializeImageGenerator(httpClient httpkit.ClientInterface, aiClient gemini.GenerativeModel, model string) (imggen.ImageGenerator, error) {
	// 参照画像のダウンロード結果を保持するキャッシュ
	imgCache := cache.New(30*time.Minute, 1*time.Hour)
	cacheTTL := 1 * time.Hour

	core, err := imggen.NewGeminiImageCore(httpClient, imgCache, cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗したのだ: %w", err)
	}

	imgGen, err := imggen.NewGeminiGenerator(core, aiClient, model)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	return imgGen, nil
}

// BuildImageGenerator は AppContext から画像ジェネレーターを組み立てる共通部なのだ。
func BuildImageGenerator(ctx context.Context, appCtx *AppContext) (imggen.ImageGenerator, error) {
	aiClient, err := InitializeAIClient(ctx, appCtx.Settings.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	return InitializeImageGenerator(appCtx.httpClient, aiClient, appCtx.Settings.ImageModel)
}

// BuildComicRunner はコマ画像の一括生成を担当する Runner を構築します。
func BuildComicRunner(ctx context.Context, appCtx *AppContext) (*runner.ComicRunner, error) {
	imgGen, err := BuildImageGenerator(ctx, appCtx)
	if err != nil {
		return nil, err
	}
	return runner.NewComicRunner(
		appCtx.Pipeline,
		imgGen,
		appCtx.Writer,
		appCtx.Settings.ImagePromptSuffix,
		appCtx.Options.AspectRatio,
		appCtx.rateInterval(),
	), nil
}

// BuildStoryboardRunner はストーリーボード生成を担当する Runner を構築します。
func BuildStoryboardRunner(ctx context.Context, appCtx *AppContext) (*runner.StoryboardRunner, error) {
	imgGen, err := BuildImageGenerator(ctx, appCtx)
	if err != nil {
		return nil, err
	}
	return runner.NewStoryboardRunner(
		appCtx.Pipeline,
		imgGen,
		appCtx.Writer,
		appCtx.Settings.ImagePromptSuffix,
		appCtx.Options.AspectRatio,
		appCtx.rateInterval(),
	), nil
}

// BuildWikiRunner は解説カード生成を担当する Runner を構築します。
func BuildWikiRunner(ctx context.Context, appCtx *AppContext) (*runner.WikiRunner, error) {
	imgGen, err := BuildImageGenerator(ctx, appCtx)
	if err != nil {
		return nil, err
	}
	return runner.NewWikiRunner(
		appCtx.Pipeline,
		imgGen,
		appCtx.Writer,
		appCtx.Settings.ImagePromptSuffix,
		appCtx.Options.AspectRatio,
		appCtx.rateInterval(),
	), nil
}

// BuildEditRunner は画像編集を担当する Runner を構築します。
func BuildEditRunner(ctx context.Context, appCtx *AppContext) (*runner.EditRunner, error) {
	imgGen, err := BuildImageGenerator(ctx, appCtx)
	if err != nil {
		return nil, err
	}
	return runner.NewEditRunner(
		appCtx.Pipeline,
		imgGen,
		appCtx.Writer,
		appCtx.Options.AspectRatio,
	), nil
}
