package cmd

import (
	"fmt"
	"log/slog"

	"github.com/okzhangyubin/image-studio/internal/builder"
	"github.com/okzhangyubin/image-studio/internal/config"

	"github.com/spf13/cobra"
)

// comicCmd は、物語からコマ割りプロンプトを起こしてパネル画像を生成するのだ。
var comicCmd = &cobra.Command{
	Use:   "comic [story]",
	Short: "物語からコマ漫画のパネル画像を生成するのだ。",
	Long: `物語を解析してコマごとの画像生成プロンプトを起こし、
並列でパネル画像を生成して保存するのだ。`,
	RunE: comicCommand,
}

func init() {
	comicCmd.Flags().IntVarP(&opts.PanelCount, "panels", "p", config.DefaultPanelCount, "生成するコマ数なのだ。")
}

func comicCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := requireGeminiKey(); err != nil {
		return err
	}

	story, err := readSourceText(cmd, args)
	if err != nil {
		return err
	}

	cfg := loadSettings()
	appCtx := builder.NewAppContext(cfg)

	slog.Info("コマ漫画モードを起動するのだ！",
		"panels", opts.PanelCount,
		"text_model", cfg.Model,
		"image_model", cfg.ImageModel,
		"output", opts.OutputDir)

	comicRunner, err := builder.BuildComicRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("ComicRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := comicRunner.Run(ctx, story, opts.PanelCount, opts.OutputDir)
	if err != nil {
		return fmt.Errorf("コマ漫画の生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("コマ漫画の生成が完了したのだ！", "panels", len(result.Images), "output_dir", opts.OutputDir)
	return nil
}
