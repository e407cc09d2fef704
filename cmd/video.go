package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/okzhangyubin/image-studio/internal/builder"

	"github.com/spf13/cobra"
)

// videoCmd は、アイデアから動画生成モデル向けのプロンプトを整形するのだ。
// 動画そのものの生成やオペレーションのポーリングはプロバイダー側の仕事なので、
// ここではプロンプトの保存までなのだ。
var videoCmd = &cobra.Command{
	Use:   "video [idea]",
	Short: "アイデアから動画生成用のプロンプトを整形するのだ。",
	RunE:  videoCommand,
}

func videoCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	idea, err := readSourceText(cmd, args)
	if err != nil {
		return err
	}

	cfg := loadSettings()
	appCtx := builder.NewAppContext(cfg)

	result, err := appCtx.Pipeline.VideoPrompt(ctx, idea)
	if err != nil {
		return fmt.Errorf("動画プロンプトの整形中にエラーが発生したのだ: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("動画プロンプトの直列化に失敗したのだ: %w", err)
	}

	path := filepath.Join(opts.OutputDir, "video_prompt.json")
	if err := appCtx.Writer.Write(ctx, path, data, "application/json"); err != nil {
		return err
	}

	fmt.Println(result.Prompt)
	slog.Info("動画プロンプトの整形が完了したのだ！", "path", path)
	return nil
}
