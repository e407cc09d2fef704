package builder

import (
	"net/http"
	"time"

	"github.com/okzhangyubin/image-studio/internal/completion"
	"github.com/okzhangyubin/image-studio/internal/config"
	"github.com/okzhangyubin/image-studio/internal/prompts"
	"github.com/okzhangyubin/image-studio/internal/publish"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する。
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Settings   *config.Settings        // Settingsは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options    config.GenerateOptions  // Optionsは、コマンドラインから渡された実行時の設定です。
	Pipeline   *prompts.Pipeline       // Pipelineは、チャット補完でプロンプトを整形する共通パイプラインです。
	Writer     publish.OutputWriter    // Writerは、生成された内容を保存するための出力先です。
	httpClient httpkit.ClientInterface // httpClient は画像キットが外部APIとの通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する。
func NewAppContext(settings *config.Settings) *AppContext {
	timeout := settings.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}

	completionClient := completion.NewClient(settings, &http.Client{Timeout: timeout})

	return &AppContext{
		Settings:   settings,
		Options:    settings.Options,
		Pipeline:   prompts.NewPipeline(completionClient, settings.Model),
		Writer:     publish.LocalWriter{},
		httpClient: httpkit.New(timeout),
	}
}

// rateInterval は画像生成の呼び出し間隔を返すのだ。
func (a *AppContext) rateInterval() time.Duration {
	return config.DefaultRateLimit
}
