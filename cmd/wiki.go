package cmd

import (
	"fmt"
	"log/slog"

	"github.com/okzhangyubin/image-studio/internal/builder"
	"github.com/okzhangyubin/image-studio/internal/config"

	"github.com/spf13/cobra"
)

// wikiCmd は、トピックから挿絵つきの解説カードを生成するのだ。
var wikiCmd = &cobra.Command{
	Use:   "wiki [topic]",
	Short: "トピックから挿絵つきの解説カードを生成するのだ。",
	Long: `トピックを解説カード（タイトル・要約・カテゴリ・挿絵プロンプト）に
展開し、カードごとの挿絵とカードJSONを保存するのだ。`,
	RunE: wikiCommand,
}

func init() {
	wikiCmd.Flags().IntVarP(&opts.CardCount, "cards", "c", config.DefaultCardCount, "生成するカード数なのだ。")
}

func wikiCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := requireGeminiKey(); err != nil {
		return err
	}

	topic, err := readSourceText(cmd, args)
	if err != nil {
		return err
	}

	cfg := loadSettings()
	appCtx := builder.NewAppContext(cfg)

	slog.Info("Wikiカードモードを起動するのだ！",
		"cards", opts.CardCount,
		"text_model", cfg.Model,
		"output", opts.OutputDir)

	wikiRunner, err := builder.BuildWikiRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("WikiRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := wikiRunner.Run(ctx, topic, opts.CardCount, opts.OutputDir)
	if err != nil {
		return fmt.Errorf("Wikiカードの生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("Wikiカードの生成が完了したのだ！", "cards", len(result.Cards), "output_dir", opts.OutputDir)
	return nil
}
