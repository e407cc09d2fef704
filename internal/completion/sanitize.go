package completion

import "strings"

// StripCodeFence は、Markdown のコードフェンスで包まれたテキストから中身だけを取り出します。
// チャット補完は生のJSONを頼んでもフェンス付きで返しがちなので、
// パース前に必ずこれを通します。
//
//   - フェンスで始まらないテキストはトリムしてそのまま返します。
//   - 閉じフェンスが見つかればフェンス間の行を、見つからなければ
//     開きフェンス以降の全行を返します（途中で切れた応答への耐性です）。
func StripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")

	// 開きフェンスの後ろから、単独の閉じフェンス行を探します
	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "```" {
			closing = i
			break
		}
	}

	if closing > 0 {
		return strings.TrimSpace(strings.Join(lines[1:closing], "\n"))
	}
	return strings.TrimSpace(strings.Join(lines[1:], "\n"))
}
