package completion

import (
	"encoding/json"
	"strings"
)

// Role はチャットメッセージの発話者です。
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// コンテンツパートの種別です。テキスト系のみが抽出対象で、
// 画像パートは送信専用です。
const (
	PartTypeText      = "text"
	PartTypeInputText = "input_text"
	PartTypeImageURL  = "image_url"
)

// Part は、マルチモーダルなメッセージ内容の1要素です。
// Type で内容が決まる閉じたタグ付きバリアントとして扱います。
type Part struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL は画像参照パートの中身です。URL または data URI を受け付けます。
type ImageURL struct {
	URL string `json:"url"`
}

// TextPart はテキストパートを生成します。
func TextPart(text string) Part {
	return Part{Type: PartTypeText, Text: text}
}

// ImagePart は画像参照パートを生成します。
func ImagePart(url string) Part {
	return Part{Type: PartTypeImageURL, ImageURL: &ImageURL{URL: url}}
}

// Content は、メッセージ内容のワイヤ表現です。プロバイダーは
// 単純な文字列か、順序付きのパート列のどちらかを使います。
// Parts が nil でなければパート列として直列化されます。
type Content struct {
	Text  string
	Parts []Part
}

// TextContent は文字列形式の内容を生成します。
func TextContent(text string) Content {
	return Content{Text: text}
}

// PartsContent はパート列形式の内容を生成します。
func PartsContent(parts ...Part) Content {
	return Content{Parts: parts}
}

// MarshalJSON は、パート列があれば配列として、なければ文字列として直列化します。
func (c Content) MarshalJSON() ([]byte, error) {
	if c.Parts != nil {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON は、文字列・パート配列・null のいずれの形でも受け付けます。
func (c *Content) UnmarshalJSON(data []byte) error {
	*c = Content{}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, &c.Parts)
	}
	return json.Unmarshal(data, &c.Text)
}

// Flatten は、内容を1本のテキストへ正規化します。
// 文字列形式はトリムして返し、パート列は text / input_text パートの
// テキストを順に連結して返します。画像パートは寄与しません。
func (c Content) Flatten() string {
	if c.Parts == nil {
		return strings.TrimSpace(c.Text)
	}

	var sb strings.Builder
	for _, part := range c.Parts {
		switch part.Type {
		case PartTypeText, PartTypeInputText:
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// Message はチャット補完の1メッセージです。
type Message struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// SystemMessage は system ロールのテキストメッセージを生成します。
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: TextContent(text)}
}

// UserMessage は user ロールのテキストメッセージを生成します。
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: TextContent(text)}
}

// UserParts は user ロールのパート列メッセージを生成します。
// 視覚入力（テキスト＋画像参照の混在）に使います。
func UserParts(parts ...Part) Message {
	return Message{Role: RoleUser, Content: PartsContent(parts...)}
}

// JSONSchema は response_format に埋め込む出力形状の制約です。
type JSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

// ResponseFormat は構造化出力の指定です。Type は "json_schema" 固定で使います。
type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

// SchemaFormat は、名前付き JSON Schema を strict 指定で包んだ
// ResponseFormat を生成します。
func SchemaFormat(name string, schema map[string]any) *ResponseFormat {
	return &ResponseFormat{
		Type:       "json_schema",
		JSONSchema: &JSONSchema{Name: name, Strict: true, Schema: schema},
	}
}

// Request はチャット補完リクエストのワイヤ表現です。
type Request struct {
	Model          string          `json:"model"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
	Messages       []Message       `json:"messages"`
}

// Choice は応答候補の1つです。
type Choice struct {
	Message Message `json:"message"`
}

// Response はチャット補完応答のワイヤ表現です。
// このパイプラインは先頭の Choice しか消費しません。
type Response struct {
	Choices []Choice `json:"choices"`
}

// FirstContent は先頭 Choice のメッセージ内容を正規化して返します。
// Choice が無ければ空文字です。
func (r Response) FirstContent() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content.Flatten()
}
