package runner

import (
	"context"
	"log/slog"
	"time"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// 画像生成全体で共通の除外指示なのだ。文字やウォーターマークの混入を徹底的に防ぐのだ。
const defaultNegativePrompt = "text, letters, words, watermark, signature, username, low quality, distorted, bad anatomy"

// PanelImageGenerator は、1枚の画像生成を実行する契約なのだ。
// gemini-image-kit のジェネレーターがこれを満たすのだよ。
type PanelImageGenerator interface {
	GenerateMangaPanel(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}

// generateAll は、リクエスト群を並列で画像化するのだ。
// レートリミッター（Burst 2）で流量を抑えつつ、結果は入力と同じ順序で返すのだ。
// 1枚でも失敗したら全体を失敗として扱うのだよ。
func generateAll(ctx context.Context, gen PanelImageGenerator, reqs []imagedom.ImageGenerationRequest, interval time.Duration) ([]*imagedom.ImageResponse, error) {
	images := make([]*imagedom.ImageResponse, len(reqs))
	eg, egCtx := errgroup.WithContext(ctx)

	limiter := rate.NewLimiter(rate.Every(interval), 2)
	slog.Info("並列画像生成を開始するのだ", "count", len(reqs), "interval", interval)

	for i, req := range reqs {
		i, req := i, req // ゴルーチンのクロージャ対策なのだ

		eg.Go(func() error {
			// 自分の番が来るまで待機するのだ
			if err := limiter.Wait(egCtx); err != nil {
				return err
			}

			slog.Info("画像を生成中...", "index", i+1)
			resp, err := gen.GenerateMangaPanel(egCtx, req)
			if err != nil {
				slog.Error("画像生成に失敗したのだ", "index", i+1, "error", err)
				return err
			}

			images[i] = resp
			slog.Info("画像生成に成功したのだ", "index", i+1)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Info("すべての画像が正常に生成されたのだ", "total", len(images))
	return images, nil
}
