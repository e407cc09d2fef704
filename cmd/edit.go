package cmd

import (
	"fmt"
	"log/slog"

	"github.com/okzhangyubin/image-studio/internal/builder"
	"github.com/okzhangyubin/image-studio/internal/runner"

	"github.com/spf13/cobra"
)

var editMode string

// editCmd は、元画像と指示から編集後の画像を生成するのだ。
var editCmd = &cobra.Command{
	Use:   "edit [instruction]",
	Short: "元画像と指示から編集後の画像を生成するのだ。",
	Long: `元画像をチャット補完に視覚入力として渡し、編集結果を表す
プロンプトを整形してから編集後の画像を生成するのだ。
--mode で edit（編集）/ inpaint（塗りつぶし）/ style（画風変換）を選ぶのだよ。`,
	RunE: editCommand,
}

func init() {
	editCmd.Flags().StringVarP(&opts.SourceImage, "source-image", "i", "", "編集対象の元画像パスなのだ。")
	editCmd.Flags().StringVarP(&editMode, "mode", "m", string(runner.ModeEdit), "編集モード（edit / inpaint / style）なのだ。")
	_ = editCmd.MarkFlagRequired("source-image")
}

func editCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := requireGeminiKey(); err != nil {
		return err
	}

	instruction, err := readSourceText(cmd, args)
	if err != nil {
		return err
	}

	cfg := loadSettings()
	appCtx := builder.NewAppContext(cfg)

	slog.Info("画像編集モードを起動するのだ！",
		"mode", editMode,
		"source", opts.SourceImage,
		"output", opts.OutputDir)

	editRunner, err := builder.BuildEditRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("EditRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := editRunner.Run(ctx, runner.EditMode(editMode), instruction, opts.SourceImage, opts.OutputDir)
	if err != nil {
		return fmt.Errorf("画像編集中にエラーが発生したのだ: %w", err)
	}

	slog.Info("画像編集が完了したのだ！", "prompt", result.Prompt.Prompt, "output_dir", opts.OutputDir)
	return nil
}
