package openrouter

import (
	"fmt"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/MJKeo/game-nerd-bot/pkg/provider"
	"github.com/MJKeo/game-nerd-bot/pkg/provider/openai"
)

// Config contains OpenRouter credential and runtime options.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	HTTPClient  *http.Client
	Temperature float64 // Default temperature
	Referer     string  // Optional: HTTP-Referer header required by OpenRouter when set in dashboard
	AppName     string  // Optional: X-Title header recommended by OpenRouter
}

const (
	defaultBaseURL   = "https://openrouter.ai/api/v1"
	defaultModel     = "openrouter/auto"
	refererHeaderKey = "HTTP-Referer"
	appNameHeaderKey = "X-Title"
)

// NewChatModel builds a chat completion provider for OpenRouter.
// OpenRouter speaks the OpenAI wire format, so the heavy lifting is
// delegated to the openai provider with a customized client.
func NewChatModel(cfg Config) (provider.ChatModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openrouter api key is required")
	}

	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = defaultBaseURL
	if strings.TrimSpace(cfg.BaseURL) != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	headers := map[string]string{}
	if strings.TrimSpace(cfg.Referer) != "" {
		headers[refererHeaderKey] = cfg.Referer
	}
	if strings.TrimSpace(cfg.AppName) != "" {
		headers[appNameHeaderKey] = cfg.AppName
	}
	if cfg.HTTPClient != nil || len(headers) > 0 {
		apiCfg.HTTPClient = withHeaders(cfg.HTTPClient, headers)
	}

	modelName := cfg.Model
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultModel
	}

	client := goopenai.NewClientWithConfig(apiCfg)
	return openai.NewWithClient("openrouter", client, modelName, cfg.Temperature), nil
}

// headerRoundTripper injects static headers into every outbound request.
type headerRoundTripper struct {
	headers map[string]string
	base    http.RoundTripper
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range h.headers {
		if strings.TrimSpace(v) == "" {
			continue
		}
		req.Header.Set(k, v)
	}
	return h.base.RoundTrip(req)
}

func withHeaders(client *http.Client, headers map[string]string) *http.Client {
	if client == nil {
		client = &http.Client{}
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *client
	wrapped.Transport = &headerRoundTripper{headers: headers, base: base}
	return &wrapped
}
