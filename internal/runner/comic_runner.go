package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/okzhangyubin/image-studio/internal/prompts"
	"github.com/okzhangyubin/image-studio/internal/publish"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// ComicResult は、コマごとのプロンプトと生成された画像の対なのだ。
type ComicResult struct {
	PanelPrompts []string
	Images       []*imagedom.ImageResponse
}

// ComicRunner は、物語からコマ割りプロンプトを起こして
// パネル画像を並列生成する核となる構造体なのだ。
type ComicRunner struct {
	pipeline    *prompts.Pipeline
	imageGen    PanelImageGenerator
	writer      publish.OutputWriter
	styleSuffix string // 全パネル共通で適用する画風（スタイル）の指示
	aspectRatio string
	interval    time.Duration
}

// NewComicRunner は、ComicRunnerの新しいインスタンスを生成して返すのだ。
func NewComicRunner(pipeline *prompts.Pipeline, gen PanelImageGenerator, writer publish.OutputWriter, styleSuffix, aspectRatio string, interval time.Duration) *ComicRunner {
	return &ComicRunner{
		pipeline:    pipeline,
		imageGen:    gen,
		writer:      writer,
		styleSuffix: styleSuffix,
		aspectRatio: aspectRatio,
		interval:    interval,
	}
}

// Run は、プロンプト生成 → 並列画像生成 → 保存を一気に行うのだ。
func (cr *ComicRunner) Run(ctx context.Context, story string, panelCount int, outputDir string) (*ComicResult, error) {
	panelPrompts, err := cr.pipeline.PanelPrompts(ctx, story, cr.styleSuffix, panelCount)
	if err != nil {
		return nil, err
	}

	reqs := make([]imagedom.ImageGenerationRequest, len(panelPrompts))
	for i, prompt := range panelPrompts {
		reqs[i] = imagedom.ImageGenerationRequest{
			Prompt:         fmt.Sprintf("%s, %s", prompt, cr.styleSuffix),
			NegativePrompt: defaultNegativePrompt,
			AspectRatio:    cr.aspectRatio,
		}
	}

	images, err := generateAll(ctx, cr.imageGen, reqs, cr.interval)
	if err != nil {
		return nil, fmt.Errorf("パネル画像の生成に失敗したのだ: %w", err)
	}

	for i, img := range images {
		path := filepath.Join(outputDir, fmt.Sprintf("panel_%02d%s", i+1, publish.ExtensionForMIME(img.MimeType)))
		if err := cr.writer.Write(ctx, path, img.Data, img.MimeType); err != nil {
			return nil, err
		}
	}

	return &ComicResult{PanelPrompts: panelPrompts, Images: images}, nil
}
