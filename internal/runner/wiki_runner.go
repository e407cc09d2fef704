package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/okzhangyubin/image-studio/internal/prompts"
	"github.com/okzhangyubin/image-studio/internal/publish"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// WikiResult は、生成されたカードと挿絵の対なのだ。
type WikiResult struct {
	Cards  []prompts.WikiCard
	Images []*imagedom.ImageResponse
}

// WikiRunner は、トピックから解説カードを起こして
// カードごとの挿絵を生成するのだ。
type WikiRunner struct {
	pipeline    *prompts.Pipeline
	imageGen    PanelImageGenerator
	writer      publish.OutputWriter
	styleSuffix string
	aspectRatio string
	interval    time.Duration
}

// NewWikiRunner は、WikiRunnerの新しいインスタンスを生成して返すのだ。
func NewWikiRunner(pipeline *prompts.Pipeline, gen PanelImageGenerator, writer publish.OutputWriter, styleSuffix, aspectRatio string, interval time.Duration) *WikiRunner {
	return &WikiRunner{
		pipeline:    pipeline,
		imageGen:    gen,
		writer:      writer,
		styleSuffix: styleSuffix,
		aspectRatio: aspectRatio,
		interval:    interval,
	}
}

// Run はカード生成 → 挿絵の並列生成 → 保存を行うのだ。
func (wr *WikiRunner) Run(ctx context.Context, topic string, cardCount int, outputDir string) (*WikiResult, error) {
	cards, err := wr.pipeline.WikiCards(ctx, topic, cardCount)
	if err != nil {
		return nil, err
	}

	reqs := make([]imagedom.ImageGenerationRequest, len(cards))
	for i, card := range cards {
		reqs[i] = imagedom.ImageGenerationRequest{
			Prompt:         fmt.Sprintf("%s, %s", card.ImagePrompt, wr.styleSuffix),
			NegativePrompt: defaultNegativePrompt,
			AspectRatio:    wr.aspectRatio,
		}
	}

	images, err := generateAll(ctx, wr.imageGen, reqs, wr.interval)
	if err != nil {
		return nil, fmt.Errorf("挿絵の生成に失敗したのだ: %w", err)
	}

	for i, img := range images {
		path := filepath.Join(outputDir, fmt.Sprintf("card_%02d%s", i+1, publish.ExtensionForMIME(img.MimeType)))
		if err := wr.writer.Write(ctx, path, img.Data, img.MimeType); err != nil {
			return nil, err
		}
	}

	// カード本文もJSONで残しておくのだ
	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("カードの直列化に失敗したのだ: %w", err)
	}
	if err := wr.writer.Write(ctx, filepath.Join(outputDir, "cards.json"), data, "application/json"); err != nil {
		return nil, err
	}

	return &WikiResult{Cards: cards, Images: images}, nil
}
