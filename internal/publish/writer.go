package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// OutputWriter は、生成された成果物を永続化するためのインターフェースなのだ。
type OutputWriter interface {
	Write(ctx context.Context, path string, data []byte, mimeType string) error
}

// LocalWriter は成果物をローカルのディレクトリへ保存する実体なのだ。
type LocalWriter struct{}

// Write はディレクトリを掘ってからファイルを書き出すのだ。
func (LocalWriter) Write(_ context.Context, path string, data []byte, _ string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("出力ディレクトリ '%s' の作成に失敗したのだ: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("'%s' への保存に失敗したのだ: %w", path, err)
	}
	return nil
}

// ExtensionForMIME は MIME タイプから保存時の拡張子を決めるのだ。
// 未知のタイプは .bin に倒すのだよ。
func ExtensionForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "video/mp4":
		return ".mp4"
	default:
		return ".bin"
	}
}
