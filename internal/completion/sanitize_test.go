package completion

import "testing"

func TestStripCodeFence(t *testing.T) {
	t.Run("jsonフェンスの中身だけを取り出せるのだ", func(t *testing.T) {
		got := StripCodeFence("```json\n{\"a\":1}\n```")
		if got != `{"a":1}` {
			t.Errorf("期待と違うのだ: %q", got)
		}
	})

	t.Run("閉じフェンスが無くても中身を取り出せるのだ", func(t *testing.T) {
		got := StripCodeFence("```json\n{\"a\":1}")
		if got != `{"a":1}` {
			t.Errorf("期待と違うのだ: %q", got)
		}
	})

	t.Run("言語指定なしのフェンスも扱えるのだ", func(t *testing.T) {
		got := StripCodeFence("```\nhello\nworld\n```")
		if got != "hello\nworld" {
			t.Errorf("期待と違うのだ: %q", got)
		}
	})

	t.Run("フェンスが無ければトリムだけして返すのだ", func(t *testing.T) {
		got := StripCodeFence("  {\"a\":1}  ")
		if got != `{"a":1}` {
			t.Errorf("期待と違うのだ: %q", got)
		}
	})

	t.Run("空白だけなら空文字なのだ", func(t *testing.T) {
		if got := StripCodeFence("   \n\t  "); got != "" {
			t.Errorf("空文字を期待したのだ: %q", got)
		}
	})

	t.Run("2回かけても結果が変わらないのだ", func(t *testing.T) {
		inputs := []string{
			"```json\n{\"a\":1}\n```",
			"```json\n{\"a\":1}",
			`{"a":1}`,
			"",
		}
		for _, in := range inputs {
			once := StripCodeFence(in)
			twice := StripCodeFence(once)
			if once != twice {
				t.Errorf("冪等ではないのだ: input=%q once=%q twice=%q", in, once, twice)
			}
		}
	})

	t.Run("フェンス後の余計なテキストは閉じフェンスまでで切るのだ", func(t *testing.T) {
		got := StripCodeFence("```json\n{\"a\":1}\n```\n以上なのだ")
		if got != `{"a":1}` {
			t.Errorf("期待と違うのだ: %q", got)
		}
	})
}
