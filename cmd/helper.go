package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// readSourceText は、コマンドの入力テキストを解決するのだ。
// 優先順位は --input-file（'-'なら標準入力）→ 位置引数の連結、なのだ。
func readSourceText(cmd *cobra.Command, args []string) (string, error) {
	if opts.InputFile == "-" || (opts.InputFile == "" && len(args) == 0 && isStdin()) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("標準入力の読み込みに失敗したのだ: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if opts.InputFile != "" {
		data, err := os.ReadFile(opts.InputFile)
		if err != nil {
			return "", fmt.Errorf("入力ファイル '%s' の読み込みに失敗したのだ: %w", opts.InputFile, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}

	return "", fmt.Errorf("ソース（--input-file か引数）を指定してほしいのだ")
}

// isStdin は、標準入力がパイプ等で繋がれているかを判定するのだ。
func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
