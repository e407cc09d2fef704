package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel             = "gpt-4o-mini"
	DefaultImageModel        = "gemini-3-pro-image-preview"
	DefaultTemperature       = 0.7
	DefaultHTTPTimeout       = 60 * time.Second
	DefaultRateLimit         = 10 * time.Second
	DefaultPanelCount        = 4
	DefaultSegmentCount      = 6
	DefaultCardCount         = 3
	DefaultAspectRatio       = "16:9"
	DefaultLocalOutputDir    = "output" // 生成物のデフォルト保存先なのだ
	DefaultImagePromptSuffix = "cinematic lighting, high detail, clean composition, masterpiece, high resolution"
)

// 各設定値が受け付ける環境変数名なのだ。先頭から順に探して最初の値を採用するのだよ。
var (
	BaseURLKeys = []string{"IMAGE_STUDIO_BASE_URL", "OPENAI_BASE_URL", "OPENAI_API_BASE"}
	APIKeyKeys  = []string{"IMAGE_STUDIO_API_KEY", "OPENAI_API_KEY"}
	ModelKeys   = []string{"IMAGE_STUDIO_MODEL", "OPENAI_MODEL"}
)

// ConfigError は、必須の環境設定が欠けていることを表すエラーなのだ。
// メッセージには設定すべき環境変数名がそのまま含まれるのだ。
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Resolver は、注入された上書きマップとプロセス環境変数の
// 2つのソースから設定値を解決するのだ。Overrides が常に優先なのだよ。
type Resolver struct {
	Overrides map[string]string
}

// Resolve は候補キーを順に試し、最初に見つかった非空の値をトリムして返すのだ。
// どこにも無ければ空文字を返すのだ。
func (r Resolver) Resolve(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(r.Overrides[key]); v != "" {
			return v
		}
		if v := strings.TrimSpace(envutil.GetEnv(key, "")); v != "" {
			return v
		}
	}
	return ""
}

// Settings はアプリケーション全体の環境設定（エンドポイントやAPIキー）を保持する構造体なのだ。
// 起動時に一度だけ構築して、各コンポーネントへ注入して使うのだ。
type Settings struct {
	BaseURL string // チャット補完エンドポイントのベースURL（末尾スラッシュなし）
	APIKey  string // Bearer トークンとして送るAPIキー
	Model   string // チャット補完に使うモデル名

	GeminiAPIKey      string // 画像生成（Gemini）用のAPIキー
	ImageModel        string // 画像生成に使うモデル名
	ImagePromptSuffix string // 全プロンプト共通で付加する画風指示

	Options GenerateOptions
}

// Load は環境変数から設定を読み込み、構造体を返すのだ！
func Load() *Settings {
	return LoadWith(Resolver{})
}

// LoadWith は、指定されたリゾルバーを使って設定を構築するのだ。
// テストや組み込み用途で環境を差し替えたいときに使うのだよ。
func LoadWith(r Resolver) *Settings {
	model := r.Resolve(ModelKeys...)
	if model == "" {
		// モデル名だけは未設定でもエラーにせず、既定モデルに倒すのだ
		model = DefaultModel
	}

	imageModel := r.Resolve("IMAGE_GEMINI_MODEL", "GEMINI_IMAGE_MODEL")
	if imageModel == "" {
		imageModel = DefaultImageModel
	}

	return &Settings{
		BaseURL:           strings.TrimRight(r.Resolve(BaseURLKeys...), "/"),
		APIKey:            r.Resolve(APIKeyKeys...),
		Model:             model,
		GeminiAPIKey:      r.Resolve("GEMINI_API_KEY"),
		ImageModel:        imageModel,
		ImagePromptSuffix: envutil.GetEnv("IMAGE_PROMPT_SUFFIX", DefaultImagePromptSuffix),
	}
}

// EnsureConfigured は、チャット補完の呼び出しに必須の設定が揃っているか検証するのだ。
// ネットワークに触れる前に必ず呼ぶこと。
func (s *Settings) EnsureConfigured() error {
	if s.BaseURL == "" {
		return &ConfigError{Message: fmt.Sprintf(
			"チャット補完のエンドポイントが未設定なのだ。%s のいずれかを設定してほしいのだ",
			strings.Join(BaseURLKeys, " / "))}
	}
	if s.APIKey == "" {
		return &ConfigError{Message: fmt.Sprintf(
			"APIキーが未設定なのだ。%s のいずれかを設定してほしいのだ",
			strings.Join(APIKeyKeys, " / "))}
	}
	return nil
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	InputFile   string // --input-file（'-'で標準入力なのだ）
	SourceImage string // --source-image: 編集系コマンドの元画像パス

	// 生成結果の出力設定
	OutputDir string // --output-dir

	// 生成数・形状
	PanelCount   int    // --panels
	CardCount    int    // --cards
	SegmentCount int    // --segments
	AspectRatio  string // --aspect-ratio

	// AI挙動設定
	Model      string // --model: プロンプト整形用のチャットモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル
	Style      string // --style: 画風サフィックスの上書き

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
