package config

import (
	"errors"
	"strings"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	t.Run("候補キーを順に試して最初の値を返すのだ", func(t *testing.T) {
		t.Setenv("TEST_SECOND", "second-value")
		r := Resolver{}
		if got := r.Resolve("TEST_FIRST", "TEST_SECOND"); got != "second-value" {
			t.Errorf("期待と違うのだ: %q", got)
		}
	})

	t.Run("上書きマップが環境変数より優先なのだ", func(t *testing.T) {
		t.Setenv("TEST_KEY", "from-env")
		r := Resolver{Overrides: map[string]string{"TEST_KEY": "from-overrides"}}
		if got := r.Resolve("TEST_KEY"); got != "from-overrides" {
			t.Errorf("期待と違うのだ: %q", got)
		}
	})

	t.Run("値はトリムされ、空白だけの値は無いものとして扱うのだ", func(t *testing.T) {
		t.Setenv("TEST_BLANK", "   ")
		t.Setenv("TEST_PADDED", "  value  ")
		r := Resolver{}
		if got := r.Resolve("TEST_BLANK", "TEST_PADDED"); got != "value" {
			t.Errorf("期待と違うのだ: %q", got)
		}
	})

	t.Run("どこにも無ければ空文字なのだ", func(t *testing.T) {
		r := Resolver{}
		if got := r.Resolve("TEST_DEFINITELY_MISSING"); got != "" {
			t.Errorf("空文字を期待したのだ: %q", got)
		}
	})
}

func TestLoadWith(t *testing.T) {
	t.Run("ベースURLの末尾スラッシュは取り除かれるのだ", func(t *testing.T) {
		r := Resolver{Overrides: map[string]string{"OPENAI_BASE_URL": "https://api.example.com/v1/"}}
		cfg := LoadWith(r)
		if cfg.BaseURL != "https://api.example.com/v1" {
			t.Errorf("期待と違うのだ: %q", cfg.BaseURL)
		}
	})

	t.Run("モデル名が無ければ既定モデルに倒れるのだ", func(t *testing.T) {
		for _, key := range ModelKeys {
			t.Setenv(key, "")
		}
		cfg := LoadWith(Resolver{})
		if cfg.Model != DefaultModel {
			t.Errorf("既定モデルを期待したのだ: %q", cfg.Model)
		}
	})

	t.Run("エイリアスのどれでもモデル名を指定できるのだ", func(t *testing.T) {
		r := Resolver{Overrides: map[string]string{"OPENAI_MODEL": "gpt-4o"}}
		cfg := LoadWith(r)
		if cfg.Model != "gpt-4o" {
			t.Errorf("期待と違うのだ: %q", cfg.Model)
		}
	})
}

func TestSettings_EnsureConfigured(t *testing.T) {
	t.Run("ベースURLが無いと変数名入りの ConfigError なのだ", func(t *testing.T) {
		s := &Settings{APIKey: "key"}
		err := s.EnsureConfigured()

		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("ConfigError を期待したのだ: %v", err)
		}
		for _, key := range BaseURLKeys {
			if !strings.Contains(cfgErr.Error(), key) {
				t.Errorf("メッセージに %s が入っていないのだ: %v", key, cfgErr)
			}
		}
	})

	t.Run("APIキーが無いと変数名入りの ConfigError なのだ", func(t *testing.T) {
		s := &Settings{BaseURL: "https://api.example.com"}
		err := s.EnsureConfigured()

		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("ConfigError を期待したのだ: %v", err)
		}
		if !strings.Contains(cfgErr.Error(), "OPENAI_API_KEY") {
			t.Errorf("メッセージに変数名が入っていないのだ: %v", cfgErr)
		}
	})

	t.Run("モデル名が無くてもエラーにはならないのだ", func(t *testing.T) {
		s := &Settings{BaseURL: "https://api.example.com", APIKey: "key"}
		if err := s.EnsureConfigured(); err != nil {
			t.Errorf("成功を期待したのだ: %v", err)
		}
	})
}
