package completion

import "encoding/json"

// ParseValidated は、AI応答のテキストを型付きの結果へ変換します。
// サニタイズ → JSONパース → 形状検証の順で進み、途中で失敗したら
// その時点の型付きエラーを返します。部分的な結果を返すことはありません。
//
// shapeCheck には呼び出し側の期待（フィールドの存在や配列の要素数）を
// 検証する関数を渡します。リクエストに添えた JSON Schema と同じ構造を
// 記述してください。nil なら形状検証を省略します。
func ParseValidated[T any](raw, context string, shapeCheck func(T) error) (T, error) {
	var zero T

	text := StripCodeFence(raw)
	if text == "" {
		return zero, &EmptyContentError{Context: context}
	}

	var value T
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return zero, &FormatError{
			Context: context,
			Reason:  "AIの応答を構造化データとして解析できませんでした",
			cause:   err,
		}
	}

	if shapeCheck != nil {
		if err := shapeCheck(value); err != nil {
			return zero, &FormatError{Context: context, Reason: err.Error()}
		}
	}
	return value, nil
}
