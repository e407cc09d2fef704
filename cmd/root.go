package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/okzhangyubin/image-studio/internal/config"

	"github.com/spf13/cobra"
)

var opts config.GenerateOptions

var rootCmd = &cobra.Command{
	Use:   "image-studio",
	Short: "高レベルな創作リクエストをAIプロバイダーへの構造化呼び出しに変換するのだ。",
	Long: `image-studio は、物語・トピック・編集指示といった創作リクエストを
チャット補完モデルでプロンプトに整形し、画像生成モデルで
コマ画像・解説カード・編集画像などの成果物に仕上げるのだ。`,
	SilenceUsage:      true,
	PersistentPreRunE: preRunAppE,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.InputFile, "input-file", "f", "", "入力ファイルのパス（'-'で標準入力なのだ）。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultLocalOutputDir, "生成物を保存するディレクトリなのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.Model, "model", "", "プロンプト整形に使うチャットモデル名なのだ（未指定なら環境変数か既定値）。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", "", "画像生成に使うGeminiモデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Style, "style", "", "全プロンプト共通で付加する画風サフィックスの上書きなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.AspectRatio, "aspect-ratio", config.DefaultAspectRatio, "生成画像のアスペクト比なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "外部APIリクエストのタイムアウトなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// ネットワークに触れる前に、チャット補完側の設定を検証するのだ
	if err := loadSettings().EnsureConfigured(); err != nil {
		return err
	}
	return nil
}

// loadSettings は環境設定を読み込み、CLIフラグで上書きするのだ。
func loadSettings() *config.Settings {
	cfg := config.Load()
	cfg.Options = opts
	if opts.Model != "" {
		cfg.Model = opts.Model
	}
	if opts.ImageModel != "" {
		cfg.ImageModel = opts.ImageModel
	}
	if opts.Style != "" {
		cfg.ImagePromptSuffix = opts.Style
	}
	return cfg
}

// requireGeminiKey は、画像生成を行うコマンドの事前チェックなのだ。
func requireGeminiKey() error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。画像生成には必須なのだ")
	}
	return nil
}

func init() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(
		comicCmd,
		storyboardCmd,
		wikiCmd,
		imagineCmd,
		editCmd,
		videoCmd,
	)
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("実行に失敗したのだ", "error", err)
		os.Exit(1)
	}
}
