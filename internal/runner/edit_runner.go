package runner

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/okzhangyubin/image-studio/internal/asset"
	"github.com/okzhangyubin/image-studio/internal/prompts"
	"github.com/okzhangyubin/image-studio/internal/publish"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// EditMode は編集系タスクの種別なのだ。
type EditMode string

const (
	ModeEdit    EditMode = "edit"
	ModeInpaint EditMode = "inpaint"
	ModeStyle   EditMode = "style"
)

// EditResult は、整形されたプロンプトと編集後の画像の対なのだ。
type EditResult struct {
	Prompt prompts.PromptResult
	Image  *imagedom.ImageResponse
}

// EditRunner は、元画像と指示から編集用プロンプトを整形し、
// 編集後の画像を1枚生成するのだ。視覚入力を使う唯一の Runner なのだよ。
type EditRunner struct {
	pipeline    *prompts.Pipeline
	imageGen    PanelImageGenerator
	writer      publish.OutputWriter
	aspectRatio string
}

// NewEditRunner は、EditRunnerの新しいインスタンスを生成して返すのだ。
func NewEditRunner(pipeline *prompts.Pipeline, gen PanelImageGenerator, writer publish.OutputWriter, aspectRatio string) *EditRunner {
	return &EditRunner{
		pipeline:    pipeline,
		imageGen:    gen,
		writer:      writer,
		aspectRatio: aspectRatio,
	}
}

// Run は元画像の読み込み → プロンプト整形 → 画像生成 → 保存を行うのだ。
func (er *EditRunner) Run(ctx context.Context, mode EditMode, instruction, sourcePath, outputDir string) (*EditResult, error) {
	source, err := asset.LoadInlineImage(sourcePath)
	if err != nil {
		return nil, err
	}

	var result prompts.PromptResult
	switch mode {
	case ModeEdit:
		result, err = er.pipeline.EditPrompt(ctx, instruction, source.DataURI)
	case ModeInpaint:
		result, err = er.pipeline.InpaintPrompt(ctx, instruction, source.DataURI)
	case ModeStyle:
		result, err = er.pipeline.StylePrompt(ctx, instruction, source.DataURI)
	default:
		return nil, fmt.Errorf("サポートされていない編集モード: '%s'。edit / inpaint / style のいずれかなのだ", mode)
	}
	if err != nil {
		return nil, err
	}

	// 元画像は参照として渡すのだ。これが無いと inpaint / style で
	// 原型を保てなくなってしまうのだ。
	img, err := er.imageGen.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:         result.Prompt,
		NegativePrompt: result.NegativePrompt,
		AspectRatio:    er.aspectRatio,
		ReferenceURL:   source.DataURI,
	})
	if err != nil {
		return nil, fmt.Errorf("編集後画像の生成に失敗したのだ: %w", err)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("%s_result%s", mode, publish.ExtensionForMIME(img.MimeType)))
	if err := er.writer.Write(ctx, path, img.Data, img.MimeType); err != nil {
		return nil, err
	}

	return &EditResult{Prompt: result, Image: img}, nil
}
