package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/okzhangyubin/image-studio/internal/builder"
	"github.com/okzhangyubin/image-studio/internal/prompts"
	"github.com/okzhangyubin/image-studio/internal/publish"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/spf13/cobra"
)

var imagineExpand bool

// imagineCmd は、アイデアの一文からプロンプトを整形して画像を1枚生成するのだ。
var imagineCmd = &cobra.Command{
	Use:   "imagine [idea]",
	Short: "アイデアからプロンプトを整形して画像を1枚生成するのだ。",
	Long: `アイデアの一文をチャット補完で画像生成プロンプトに展開し、
そのまま1枚の画像を生成して保存するのだ。--expand を付けると、
入力を既に書かれたプロンプトとして扱い、意図を変えずに強化だけするのだよ。`,
	RunE: imagineCommand,
}

func init() {
	imagineCmd.Flags().BoolVar(&imagineExpand, "expand", false, "入力を完成済みプロンプトとして扱い、強化だけ行うのだ。")
}

func imagineCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := requireGeminiKey(); err != nil {
		return err
	}

	idea, err := readSourceText(cmd, args)
	if err != nil {
		return err
	}

	cfg := loadSettings()
	appCtx := builder.NewAppContext(cfg)

	var result prompts.PromptResult
	if imagineExpand {
		result, err = appCtx.Pipeline.ExpandPrompt(ctx, idea)
	} else {
		result, err = appCtx.Pipeline.ImagePrompt(ctx, idea, cfg.ImagePromptSuffix)
	}
	if err != nil {
		return fmt.Errorf("プロンプトの整形中にエラーが発生したのだ: %w", err)
	}

	slog.Info("プロンプトが整ったので画像を生成するのだ", "prompt", result.Prompt)

	imgGen, err := builder.BuildImageGenerator(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("画像ジェネレーターの構築に失敗したのだ: %w", err)
	}

	img, err := imgGen.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:         result.Prompt,
		NegativePrompt: result.NegativePrompt,
		AspectRatio:    opts.AspectRatio,
	})
	if err != nil {
		return fmt.Errorf("画像の生成に失敗したのだ: %w", err)
	}

	path := filepath.Join(opts.OutputDir, "imagine"+publish.ExtensionForMIME(img.MimeType))
	if err := appCtx.Writer.Write(ctx, path, img.Data, img.MimeType); err != nil {
		return err
	}

	slog.Info("画像の生成が完了したのだ！", "path", path)
	return nil
}
