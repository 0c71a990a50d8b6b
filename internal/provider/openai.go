package provider

import (
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// NewClient returns an OpenAI client for the given credential. baseURL
// optionally points the client at an alternate endpoint (proxies, mocks);
// empty keeps the SDK default.
func NewClient(apiKey, baseURL string) openai.Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return openai.NewClient(opts...)
}
