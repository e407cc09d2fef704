package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalWriter_Write(t *testing.T) {
	t.Run("ディレクトリごと作って保存できるのだ", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "panel_01.png")

		if err := (LocalWriter{}).Write(context.Background(), path, []byte("data"), "image/png"); err != nil {
			t.Fatalf("成功を期待したのだ: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("保存されたファイルが読めないのだ: %v", err)
		}
		if string(got) != "data" {
			t.Errorf("中身が違うのだ: %q", got)
		}
	})
}

func TestExtensionForMIME(t *testing.T) {
	cases := map[string]string{
		"image/png":                ".png",
		"image/jpeg":               ".jpg",
		"video/mp4":                ".mp4",
		"application/octet-stream": ".bin",
	}
	for mime, want := range cases {
		if got := ExtensionForMIME(mime); got != want {
			t.Errorf("%s の拡張子が違うのだ: got %q want %q", mime, got, want)
		}
	}
}
