package completion

import "fmt"

// ProviderErrorKind は、プロバイダー呼び出し失敗の分類です。
type ProviderErrorKind string

const (
	// KindAuth は 401 / 403 による認証失敗です。
	KindAuth ProviderErrorKind = "authentication"
	// KindCall は上記以外の非2xx応答です。
	KindCall ProviderErrorKind = "call"
	// KindUnknown は応答自体が得られなかったトランスポート障害です。
	KindUnknown ProviderErrorKind = "unknown"
)

// ProviderError は、チャット補完エンドポイント呼び出しの失敗を表します。
// Message にはプロバイダーが返したエラーメッセージがそのまま入ります。
type ProviderError struct {
	Kind       ProviderErrorKind
	StatusCode int
	Message    string
	cause      error
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case KindAuth:
		return fmt.Sprintf("認証に失敗しました: %s", e.Message)
	case KindCall:
		return fmt.Sprintf("チャット補完の呼び出しに失敗しました (status %d): %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("チャット補完の呼び出し中に不明なエラーが発生しました: %s", e.Message)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.cause
}

// EmptyContentError は、プロバイダーが利用可能なテキストを返さなかったことを表します。
type EmptyContentError struct {
	Context string // 失敗したタスクの表示名
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("%s: AIの応答が空でした", e.Context)
}

// FormatError は、プロバイダーのテキストが構造化データとして解析できなかったか、
// 呼び出し側の期待する形状を満たさなかったことを表します。
type FormatError struct {
	Context string // 失敗したタスクの表示名
	Reason  string // 違反した期待の説明
	cause   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Context, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.cause
}
