package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okzhangyubin/image-studio/internal/config"
)

// Client は、OpenAI互換のチャット補完エンドポイントへの呼び出し役です。
// リトライもバックオフも持たない1回限りの呼び出しで、失敗は即座に
// 型付きエラーとして呼び出し側へ返します。
type Client struct {
	settings   *config.Settings
	httpClient *http.Client
}

// NewClient は設定を注入してクライアントを生成します。
// 設定の検証は生成時ではなく呼び出し時に行います。
func NewClient(settings *config.Settings, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.DefaultHTTPTimeout}
	}
	return &Client{settings: settings, httpClient: httpClient}
}

// errorEnvelope は、プロバイダーの標準的なエラー応答の外形です。
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Create は1回のチャット補完を実行します。
// 設定不足は *config.ConfigError、HTTP・トランスポート障害は
// *ProviderError として返します。応答の内部形状はここでは検証しません
// （choices[0].message.content だけが安定した契約点で、外形は
// プロバイダーごとに揺れるため、検証はパーサー側へ委ねます）。
func (c *Client) Create(ctx context.Context, req Request) (Response, error) {
	if err := c.settings.EnsureConfigured(); err != nil {
		return Response{}, err
	}

	if req.Model == "" {
		req.Model = c.settings.Model
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, &ProviderError{
			Kind:    KindUnknown,
			Message: "リクエストの直列化に失敗しました",
			cause:   err,
		}
	}

	url := c.settings.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Response{}, &ProviderError{Kind: KindUnknown, Message: err.Error(), cause: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.settings.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// 応答が全く得られなかったケース（DNS・接続断・タイムアウト）
		return Response{}, &ProviderError{
			Kind:    KindUnknown,
			Message: fmt.Sprintf("呼び出し中に不明なエラーが発生しました: %v", err),
			cause:   err,
		}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return Response{}, c.statusError(httpResp)
	}

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return Response{}, &ProviderError{
			Kind:       KindCall,
			StatusCode: httpResp.StatusCode,
			Message:    "応答の読み取りに失敗しました",
			cause:      err,
		}
	}
	return resp, nil
}

// statusError は非2xx応答を型付きエラーへ変換します。
// まずエラーエンベロープの message を試し、だめなら本文をそのまま使います。
func (c *Client) statusError(httpResp *http.Response) *ProviderError {
	raw, _ := io.ReadAll(httpResp.Body)

	var envelope errorEnvelope
	message := ""
	if err := json.Unmarshal(raw, &envelope); err == nil {
		message = envelope.Error.Message
	}
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}

	kind := KindCall
	if httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden {
		kind = KindAuth
	}
	return &ProviderError{Kind: kind, StatusCode: httpResp.StatusCode, Message: message}
}
