package prompts

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/okzhangyubin/image-studio/internal/completion"
)

// fakeInvoker は、受け取ったリクエストを記録して固定の応答を返すのだ。
type fakeInvoker struct {
	lastRequest completion.Request
	content     string
	err         error
}

func (f *fakeInvoker) Create(_ context.Context, req completion.Request) (completion.Response, error) {
	f.lastRequest = req
	if f.err != nil {
		return completion.Response{}, f.err
	}
	return completion.Response{Choices: []completion.Choice{
		{Message: completion.Message{Role: completion.RoleAssistant, Content: completion.TextContent(f.content)}},
	}}, nil
}

func TestPipeline_PanelPrompts(t *testing.T) {
	t.Run("要素数が一致すればそのまま返るのだ", func(t *testing.T) {
		inv := &fakeInvoker{content: "```json\n{\"panels\":[\"p1\",\"p2\",\"p3\"]}\n```"}
		p := NewPipeline(inv, "test-model")

		got, err := p.PanelPrompts(context.Background(), "昔々あるところに", "watercolor", 3)
		if err != nil {
			t.Fatalf("成功を期待したのだ: %v", err)
		}
		if !reflect.DeepEqual(got, []string{"p1", "p2", "p3"}) {
			t.Errorf("内容が変わってしまったのだ: %+v", got)
		}

		// リクエスト側の制約も確認しておくのだ
		req := inv.lastRequest
		if req.ResponseFormat == nil || req.ResponseFormat.JSONSchema.Name != "comic_panels" {
			t.Errorf("スキーマ制約がリクエストに載っていないのだ: %+v", req.ResponseFormat)
		}
		if req.Messages[0].Role != completion.RoleSystem {
			t.Error("先頭は system メッセージであるべきなのだ")
		}
	})

	t.Run("要素数の不一致は期待数とタスク名入りの FormatError なのだ", func(t *testing.T) {
		inv := &fakeInvoker{content: `{"panels":["p1","p2"]}`}
		p := NewPipeline(inv, "test-model")

		_, err := p.PanelPrompts(context.Background(), "物語", "watercolor", 3)
		var formatErr *completion.FormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("FormatError を期待したのだ: %v", err)
		}
		if !strings.Contains(formatErr.Error(), "3") {
			t.Errorf("期待数がメッセージに無いのだ: %v", formatErr)
		}
		if !strings.Contains(formatErr.Error(), "コマ割りプロンプト生成") {
			t.Errorf("タスク名がメッセージに無いのだ: %v", formatErr)
		}
	})

	t.Run("呼び出し自体の失敗はそのまま伝播するのだ", func(t *testing.T) {
		provErr := &completion.ProviderError{Kind: completion.KindAuth, Message: "bad key"}
		inv := &fakeInvoker{err: provErr}
		p := NewPipeline(inv, "test-model")

		_, err := p.PanelPrompts(context.Background(), "物語", "watercolor", 3)
		if !errors.Is(err, provErr) {
			t.Errorf("ProviderError がそのまま返るべきなのだ: %v", err)
		}
	})
}

func TestPipeline_StoryboardSegments(t *testing.T) {
	t.Run("足りない分は空文字で埋めて必ず指定枚数を返すのだ", func(t *testing.T) {
		inv := &fakeInvoker{content: `{"segments":["s1","s2"]}`}
		p := NewPipeline(inv, "test-model")

		got, err := p.StoryboardSegments(context.Background(), "物語", 4)
		if err != nil {
			t.Fatalf("不一致でも失敗しないのが仕様なのだ: %v", err)
		}
		if !reflect.DeepEqual(got, []string{"s1", "s2", "", ""}) {
			t.Errorf("長さ調整が期待と違うのだ: %+v", got)
		}
	})

	t.Run("多すぎる分は切り詰めるのだ", func(t *testing.T) {
		inv := &fakeInvoker{content: `{"segments":["s1","s2","s3"]}`}
		p := NewPipeline(inv, "test-model")

		got, err := p.StoryboardSegments(context.Background(), "物語", 2)
		if err != nil {
			t.Fatalf("不一致でも失敗しないのが仕様なのだ: %v", err)
		}
		if !reflect.DeepEqual(got, []string{"s1", "s2"}) {
			t.Errorf("切り詰めが期待と違うのだ: %+v", got)
		}
	})

	t.Run("一致していればそのまま返るのだ", func(t *testing.T) {
		inv := &fakeInvoker{content: `{"segments":["s1","s2"]}`}
		p := NewPipeline(inv, "test-model")

		got, err := p.StoryboardSegments(context.Background(), "物語", 2)
		if err != nil {
			t.Fatalf("成功を期待したのだ: %v", err)
		}
		if !reflect.DeepEqual(got, []string{"s1", "s2"}) {
			t.Errorf("内容が変わってしまったのだ: %+v", got)
		}
	})
}

func TestPipeline_WikiCards(t *testing.T) {
	const validCard = `{"title":"t","summary":"s","image_prompt":"i","category":"c"}`

	t.Run("枚数とフィールドが揃っていれば成功なのだ", func(t *testing.T) {
		inv := &fakeInvoker{content: `{"cards":[` + validCard + `,` + validCard + `]}`}
		p := NewPipeline(inv, "test-model")

		got, err := p.WikiCards(context.Background(), "火山", 2)
		if err != nil {
			t.Fatalf("成功を期待したのだ: %v", err)
		}
		if len(got) != 2 || got[0].Title != "t" {
			t.Errorf("内容が期待と違うのだ: %+v", got)
		}
	})

	t.Run("必須フィールドが空ならどのフィールドかを告げて失敗するのだ", func(t *testing.T) {
		inv := &fakeInvoker{content: `{"cards":[{"title":"t","summary":"","image_prompt":"i","category":"c"}]}`}
		p := NewPipeline(inv, "test-model")

		_, err := p.WikiCards(context.Background(), "火山", 1)
		var formatErr *completion.FormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("FormatError を期待したのだ: %v", err)
		}
		if !strings.Contains(formatErr.Error(), "summary") {
			t.Errorf("欠けたフィールド名がメッセージに無いのだ: %v", formatErr)
		}
	})

	t.Run("枚数の不一致は失敗なのだ", func(t *testing.T) {
		inv := &fakeInvoker{content: `{"cards":[` + validCard + `]}`}
		p := NewPipeline(inv, "test-model")

		if _, err := p.WikiCards(context.Background(), "火山", 2); err == nil {
			t.Fatal("失敗を期待したのだ")
		}
	})
}

func TestPipeline_VisionTasks(t *testing.T) {
	t.Run("編集系タスクは画像パートを添付するのだ", func(t *testing.T) {
		inv := &fakeInvoker{content: `{"prompt":"p"}`}
		p := NewPipeline(inv, "test-model")

		dataURI := "data:image/png;base64,xxxx"
		if _, err := p.EditPrompt(context.Background(), "空を夕焼けに", dataURI); err != nil {
			t.Fatalf("成功を期待したのだ: %v", err)
		}

		userMsg := inv.lastRequest.Messages[1]
		if userMsg.Content.Parts == nil {
			t.Fatal("パート列のメッセージを期待したのだ")
		}
		var hasImage bool
		for _, part := range userMsg.Content.Parts {
			if part.Type == completion.PartTypeImageURL && part.ImageURL != nil && part.ImageURL.URL == dataURI {
				hasImage = true
			}
		}
		if !hasImage {
			t.Error("画像パートが添付されていないのだ")
		}
	})

	t.Run("prompt が空だと FormatError なのだ", func(t *testing.T) {
		inv := &fakeInvoker{content: `{"prompt":"  "}`}
		p := NewPipeline(inv, "test-model")

		_, err := p.VideoPrompt(context.Background(), "流星群")
		var formatErr *completion.FormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("FormatError を期待したのだ: %v", err)
		}
	})

	t.Run("negative_prompt は任意なのだ", func(t *testing.T) {
		inv := &fakeInvoker{content: `{"prompt":"p","negative_prompt":"n"}`}
		p := NewPipeline(inv, "test-model")

		got, err := p.ImagePrompt(context.Background(), "猫", "oil painting")
		if err != nil {
			t.Fatalf("成功を期待したのだ: %v", err)
		}
		if got.Prompt != "p" || got.NegativePrompt != "n" {
			t.Errorf("内容が期待と違うのだ: %+v", got)
		}
	})
}
