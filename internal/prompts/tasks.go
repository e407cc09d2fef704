package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/okzhangyubin/image-studio/internal/completion"
)

// PanelPrompts は、物語から漫画のコマ n 枚分の画像生成プロンプトを起こします。
// 要素数が n と一致しない応答は FormatError になります。
func (p *Pipeline) PanelPrompts(ctx context.Context, story, style string, n int) ([]string, error) {
	spec := taskSpec{
		context:    "コマ割りプロンプト生成",
		schemaName: "comic_panels",
		schema:     stringArraySchema("panels", n),
		system: "You are a comic artist's assistant. You break a short story into " +
			"sequential comic panels and write one vivid, self-contained image " +
			"generation prompt in English per panel. Keep characters visually " +
			"consistent across panels by repeating their key features in every prompt.",
	}

	instruction := fmt.Sprintf(
		"Break the following story into exactly %d comic panels.\n"+
			"Art style to apply to every panel: %s\n\nStory:\n%s",
		n, style, story)

	raw, err := p.complete(ctx, spec, completion.UserMessage(instruction))
	if err != nil {
		return nil, err
	}

	result, err := completion.ParseValidated(raw, spec.context, func(r panelsResult) error {
		if len(r.Panels) != n {
			return fmt.Errorf("panels は %d 要素の配列である必要がありますが、%d 要素でした", n, len(r.Panels))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result.Panels, nil
}

// StoryboardSegments は、物語を画像 m 枚分のストーリーボードへ分割します。
//
// 他のタスクと違い、要素数の不一致は失敗にしません。足りなければ空文字で
// 埋め、多ければ切り詰めて、必ずちょうど m 要素を返します。呼び出し側は
// 画像1枚につき1セグメントを常に受け取れることに依存しています。
func (p *Pipeline) StoryboardSegments(ctx context.Context, story string, m int) ([]string, error) {
	spec := taskSpec{
		context:    "ストーリーボード生成",
		schemaName: "storyboard_segments",
		schema:     stringArraySchema("segments", m),
		system: "You are a storyboard director. You split a story into sequential " +
			"visual segments and write one concise English image generation prompt " +
			"per segment, describing camera, subject and mood.",
	}

	instruction := fmt.Sprintf(
		"Split the following story into exactly %d storyboard segments, one per image.\n\nStory:\n%s",
		m, story)

	raw, err := p.complete(ctx, spec, completion.UserMessage(instruction))
	if err != nil {
		return nil, err
	}

	result, err := completion.ParseValidated[segmentsResult](raw, spec.context, nil)
	if err != nil {
		return nil, err
	}

	segments := result.Segments
	if len(segments) != m {
		slog.Warn("ストーリーボードのセグメント数が画像数と一致しなかったので調整するのだ",
			"expected", m, "actual", len(segments))
		adjusted := make([]string, m)
		copy(adjusted, segments)
		segments = adjusted
	}
	return segments, nil
}

// WikiCards は、トピックから解説カード n 枚を生成します。
// 枚数と各カードの必須フィールドを検証し、欠けがあれば FormatError になります。
func (p *Pipeline) WikiCards(ctx context.Context, topic string, n int) ([]WikiCard, error) {
	spec := taskSpec{
		context:    "Wikiカード生成",
		schemaName: "wiki_cards",
		schema:     cardArraySchema(n),
		system: "You are an encyclopedia editor. You explain a topic as a set of " +
			"illustrated cards. Each card has a short title, a two-sentence summary, " +
			"a category label, and an English image generation prompt for its illustration.",
	}

	instruction := fmt.Sprintf("Create exactly %d wiki cards about the following topic.\n\nTopic:\n%s", n, topic)

	raw, err := p.complete(ctx, spec, completion.UserMessage(instruction))
	if err != nil {
		return nil, err
	}

	result, err := completion.ParseValidated(raw, spec.context, func(r cardsResult) error {
		if len(r.Cards) != n {
			return fmt.Errorf("cards は %d 要素の配列である必要がありますが、%d 要素でした", n, len(r.Cards))
		}
		for i, card := range r.Cards {
			if err := card.validate(); err != nil {
				return fmt.Errorf("カード %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result.Cards, nil
}

func (c WikiCard) validate() error {
	for field, value := range map[string]string{
		"title":        c.Title,
		"summary":      c.Summary,
		"image_prompt": c.ImagePrompt,
		"category":     c.Category,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("必須フィールド %s が空です", field)
		}
	}
	return nil
}

// ImagePrompt は、アイデアの一文を画像生成用のプロンプトへ展開します。
func (p *Pipeline) ImagePrompt(ctx context.Context, idea, style string) (PromptResult, error) {
	spec := taskSpec{
		context:    "画像プロンプト生成",
		schemaName: "image_prompt",
		schema:     promptSchema(),
		system: "You are a prompt engineer for an image generation model. You expand " +
			"a rough idea into one rich English prompt, and optionally a negative prompt " +
			"listing artifacts to avoid.",
	}

	instruction := fmt.Sprintf("Idea: %s\nArt style: %s", idea, style)
	return p.promptTask(ctx, spec, completion.UserMessage(instruction))
}

// ExpandPrompt は、ユーザーが書いた粗いプロンプトを言い換えずに強化します。
func (p *Pipeline) ExpandPrompt(ctx context.Context, rough string) (PromptResult, error) {
	spec := taskSpec{
		context:    "プロンプト拡張",
		schemaName: "expanded_prompt",
		schema:     promptSchema(),
		system: "You are a prompt engineer. You keep the user's intent and subject " +
			"untouched and enrich the prompt with composition, lighting and quality terms.",
	}
	return p.promptTask(ctx, spec, completion.UserMessage("Prompt to enrich:\n"+rough))
}

// EditPrompt は、元画像と編集指示から編集用プロンプトを生成します。
// 元画像は data URI のままパートとして添付します（視覚入力）。
func (p *Pipeline) EditPrompt(ctx context.Context, instruction, imageDataURI string) (PromptResult, error) {
	spec := taskSpec{
		context:    "画像編集プロンプト生成",
		schemaName: "edit_prompt",
		schema:     promptSchema(),
		system: "You are an image editing assistant. Looking at the attached image, " +
			"write one English prompt that describes the edited result the user wants, " +
			"preserving everything the instruction does not mention.",
	}
	return p.promptTask(ctx, spec, completion.UserParts(
		completion.TextPart("Edit instruction: "+instruction),
		completion.ImagePart(imageDataURI),
	))
}

// InpaintPrompt は、塗りつぶし（インペイント）領域に描く内容のプロンプトを生成します。
func (p *Pipeline) InpaintPrompt(ctx context.Context, instruction, imageDataURI string) (PromptResult, error) {
	spec := taskSpec{
		context:    "インペイントプロンプト生成",
		schemaName: "inpaint_prompt",
		schema:     promptSchema(),
		system: "You are an inpainting assistant. Looking at the attached image, " +
			"write one English prompt describing only what should fill the masked " +
			"region, matching the surrounding style, lighting and perspective.",
	}
	return p.promptTask(ctx, spec, completion.UserParts(
		completion.TextPart("Inpaint instruction: "+instruction),
		completion.ImagePart(imageDataURI),
	))
}

// StylePrompt は、元画像を指定の画風へ変換するためのプロンプトを生成します。
func (p *Pipeline) StylePrompt(ctx context.Context, styleName, imageDataURI string) (PromptResult, error) {
	spec := taskSpec{
		context:    "スタイル変換プロンプト生成",
		schemaName: "style_prompt",
		schema:     promptSchema(),
		system: "You are a style transfer assistant. Looking at the attached image, " +
			"write one English prompt that re-renders the same scene and subjects in " +
			"the requested art style.",
	}
	return p.promptTask(ctx, spec, completion.UserParts(
		completion.TextPart("Target style: "+styleName),
		completion.ImagePart(imageDataURI),
	))
}

// VideoPrompt は、アイデアから動画生成モデル向けのプロンプトを生成します。
// 動画オペレーションの実行やポーリングはこのコアの守備範囲外です。
func (p *Pipeline) VideoPrompt(ctx context.Context, idea string) (PromptResult, error) {
	spec := taskSpec{
		context:    "動画プロンプト生成",
		schemaName: "video_prompt",
		schema:     promptSchema(),
		system: "You are a prompt engineer for a text-to-video model. You expand an " +
			"idea into one English prompt describing subject, motion, camera work and " +
			"duration feel for a short clip.",
	}
	return p.promptTask(ctx, spec, completion.UserMessage("Video idea: "+idea))
}

// promptTask は PromptResult を返すタスクの共通後半です。
// prompt フィールドが空でないことだけが全タスク共通の期待です。
func (p *Pipeline) promptTask(ctx context.Context, spec taskSpec, msg completion.Message) (PromptResult, error) {
	raw, err := p.complete(ctx, spec, msg)
	if err != nil {
		return PromptResult{}, err
	}
	return completion.ParseValidated(raw, spec.context, func(r PromptResult) error {
		if strings.TrimSpace(r.Prompt) == "" {
			return fmt.Errorf("必須フィールド prompt が空です")
		}
		return nil
	})
}
