package prompts

// stringArraySchema は「field がちょうど n 要素の文字列配列」という制約です。
func stringArraySchema(field string, n int) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			field: map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": n,
				"maxItems": n,
			},
		},
		"required":             []string{field},
		"additionalProperties": false,
	}
}

// promptSchema は「prompt 必須・negative_prompt 任意」の単一オブジェクト制約です。
func promptSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt":          map[string]any{"type": "string"},
			"negative_prompt": map[string]any{"type": "string"},
		},
		"required":             []string{"prompt"},
		"additionalProperties": false,
	}
}

// cardArraySchema は「cards がちょうど n 要素で、各要素が4つの必須文字列
// フィールドを持つオブジェクト」という制約です。
func cardArraySchema(n int) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":        map[string]any{"type": "string"},
						"summary":      map[string]any{"type": "string"},
						"image_prompt": map[string]any{"type": "string"},
						"category":     map[string]any{"type": "string"},
					},
					"required":             []string{"title", "summary", "image_prompt", "category"},
					"additionalProperties": false,
				},
				"minItems": n,
				"maxItems": n,
			},
		},
		"required":             []string{"cards"},
		"additionalProperties": false,
	}
}
