package cmd

import (
	"fmt"
	"log/slog"

	"github.com/okzhangyubin/image-studio/internal/builder"
	"github.com/okzhangyubin/image-studio/internal/config"

	"github.com/spf13/cobra"
)

// storyboardCmd は、物語をストーリーボードに分割してキーフレームを生成するのだ。
var storyboardCmd = &cobra.Command{
	Use:   "storyboard [story]",
	Short: "物語からストーリーボードとキーフレーム画像を生成するのだ。",
	Long: `物語を指定枚数のセグメントに分割し、セグメントごとの
キーフレーム画像とストーリーボードJSONを保存するのだ。
セグメント数が合わなくても失敗にはせず、枚数を揃えて返すのだよ。`,
	RunE: storyboardCommand,
}

func init() {
	storyboardCmd.Flags().IntVarP(&opts.SegmentCount, "segments", "s", config.DefaultSegmentCount, "分割するセグメント（画像）数なのだ。")
}

func storyboardCommand(cmd *cobra.Command, args []string) error {
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

	slog.Info("ストーリーボードモードを起動するのだ！",
		"segments", opts.SegmentCount,
		"text_model", cfg.Model,
		"output", opts.OutputDir)

	storyboardRunner, err := builder.BuildStoryboardRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("StoryboardRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := storyboardRunner.Run(ctx, story, opts.SegmentCount, opts.OutputDir)
	if err != nil {
		return fmt.Errorf("ストーリーボードの生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("ストーリーボードの生成が完了したのだ！",
		"segments", len(result.Segments), "images", len(result.Images), "output_dir", opts.OutputDir)
	return nil
}
