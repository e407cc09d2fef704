package asset

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
)

// InlineImage は、視覚入力としてチャット補完へ添付できる画像です。
// DataURI はそのまま画像参照パートの URL になります。
type InlineImage struct {
	MIMEType string
	DataURI  string
}

// LoadInlineImage はローカルファイルを読み込み、MIMEタイプを推定して
// base64 の data URI に変換するのだ。中身が画像かどうかの判定は
// 先頭バイトのスニッフィングに任せるのだよ。
func LoadInlineImage(path string) (InlineImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InlineImage{}, fmt.Errorf("画像ファイル '%s' の読み込みに失敗したのだ: %w", path, err)
	}
	return EncodeInlineImage(data), nil
}

// EncodeInlineImage は画像バイト列を data URI へ変換します。
func EncodeInlineImage(data []byte) InlineImage {
	mimeType := http.DetectContentType(data)
	return InlineImage{
		MIMEType: mimeType,
		DataURI:  fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
	}
}
