package prompts

import (
	"context"

	"github.com/okzhangyubin/image-studio/internal/completion"
	"github.com/okzhangyubin/image-studio/internal/config"
)

// Invoker は、チャット補完を1回実行する契約です。
type Invoker interface {
	Create(ctx context.Context, req completion.Request) (completion.Response, error)
}

// Pipeline は、自然言語のタスクと構造制約から型付きの結果を取り出す
// 共通パイプラインです。タスクごとの違いは指示文・スキーマ・検証だけで、
// 流れ（リクエスト構築 → 呼び出し → 正規化 → パース → 検証）は全タスク共通です。
type Pipeline struct {
	invoker     Invoker
	model       string
	temperature float64
}

// NewPipeline は Pipeline を生成します。model が空の場合は
// リクエスト時にクライアント側の既定モデルへ倒れます。
func NewPipeline(invoker Invoker, model string) *Pipeline {
	return &Pipeline{
		invoker:     invoker,
		model:       model,
		temperature: config.DefaultTemperature,
	}
}

// taskSpec は1タスク分の設定です。schema はプロバイダーへ送る出力制約で、
// 各タスクの shapeCheck と必ず同じ構造を記述します（二重宣言を
// 乖離させないため、両者はタスク関数内に並べて書きます）。
type taskSpec struct {
	context    string // エラーメッセージに載せるタスクの表示名
	schemaName string
	schema     map[string]any
	system     string
}

// complete は共通の呼び出し部です。system メッセージを先頭に据え、
// 応答の先頭 Choice を1本のテキストへ正規化して返します。
func (p *Pipeline) complete(ctx context.Context, spec taskSpec, userMessages ...completion.Message) (string, error) {
	messages := make([]completion.Message, 0, len(userMessages)+1)
	messages = append(messages, completion.SystemMessage(spec.system))
	messages = append(messages, userMessages...)

	req := completion.Request{
		Model:          p.model,
		Temperature:    p.temperature,
		ResponseFormat: completion.SchemaFormat(spec.schemaName, spec.schema),
		Messages:       messages,
	}

	resp, err := p.invoker.Create(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.FirstContent(), nil
}
