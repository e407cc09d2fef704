package prompts

// PromptResult は、単一の画像・映像生成プロンプトを返すタスクの結果です。
type PromptResult struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
}

// WikiCard は、トピック解説カード1枚分の内容です。
// ImagePrompt はそのまま画像生成プロバイダーへの入力になります。
type WikiCard struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	ImagePrompt string `json:"image_prompt"`
	Category    string `json:"category"`
}

// AI応答のトップレベルの外形です。スキーマ側の制約と対で使います。
type panelsResult struct {
	Panels []string `json:"panels"`
}

type segmentsResult struct {
	Segments []string `json:"segments"`
}

type cardsResult struct {
	Cards []WikiCard `json:"cards"`
}
