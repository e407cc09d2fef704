package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/okzhangyubin/image-studio/internal/prompts"
	"github.com/okzhangyubin/image-studio/internal/publish"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// StoryboardResult は、セグメントのプロンプトとキーフレーム画像の対なのだ。
// Segments は常にちょうど画像数と同じ長さで返るのだ。
type StoryboardResult struct {
	Segments []string                  `json:"segments"`
	Images   []*imagedom.ImageResponse `json:"-"`
}

// StoryboardRunner は、物語をストーリーボードに分割して
// セグメントごとのキーフレーム画像を生成するのだ。
type StoryboardRunner struct {
	pipeline    *prompts.Pipeline
	imageGen    PanelImageGenerator
	writer      publish.OutputWriter
	styleSuffix string
	aspectRatio string
	interval    time.Duration
}

// NewStoryboardRunner は、StoryboardRunnerの新しいインスタンスを生成して返すのだ。
func NewStoryboardRunner(pipeline *prompts.Pipeline, gen PanelImageGenerator, writer publish.OutputWriter, styleSuffix, aspectRatio string, interval time.Duration) *StoryboardRunner {
	return &StoryboardRunner{
		pipeline:    pipeline,
		imageGen:    gen,
		writer:      writer,
		styleSuffix: styleSuffix,
		aspectRatio: aspectRatio,
		interval:    interval,
	}
}

// Run はセグメント生成 → キーフレーム画像生成 → 保存を行うのだ。
// 空のセグメント（数合わせで埋められたもの）は画像化をスキップするのだ。
func (sr *StoryboardRunner) Run(ctx context.Context, story string, imageCount int, outputDir string) (*StoryboardResult, error) {
	segments, err := sr.pipeline.StoryboardSegments(ctx, story, imageCount)
	if err != nil {
		return nil, err
	}

	// segIndexes[j] は reqs[j] に対応する元のセグメント番号なのだ。
	// ファイル名は storyboard.json のセグメント位置と揃えるのだ。
	reqs := make([]imagedom.ImageGenerationRequest, 0, len(segments))
	segIndexes := make([]int, 0, len(segments))
	for i, segment := range segments {
		if segment == "" {
			slog.Warn("空のセグメントなので画像化をスキップするのだ", "index", i+1)
			continue
		}
		reqs = append(reqs, imagedom.ImageGenerationRequest{
			Prompt:         fmt.Sprintf("%s, %s", segment, sr.styleSuffix),
			NegativePrompt: defaultNegativePrompt,
			AspectRatio:    sr.aspectRatio,
		})
		segIndexes = append(segIndexes, i)
	}

	images, err := generateAll(ctx, sr.imageGen, reqs, sr.interval)
	if err != nil {
		return nil, fmt.Errorf("キーフレーム画像の生成に失敗したのだ: %w", err)
	}

	for i, img := range images {
		path := filepath.Join(outputDir, fmt.Sprintf("keyframe_%02d%s", segIndexes[i]+1, publish.ExtensionForMIME(img.MimeType)))
		if err := sr.writer.Write(ctx, path, img.Data, img.MimeType); err != nil {
			return nil, err
		}
	}

	// セグメント一覧も成果物として残しておくのだ
	result := &StoryboardResult{Segments: segments, Images: images}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("ストーリーボードの直列化に失敗したのだ: %w", err)
	}
	if err := sr.writer.Write(ctx, filepath.Join(outputDir, "storyboard.json"), data, "application/json"); err != nil {
		return nil, err
	}

	return result, nil
}
