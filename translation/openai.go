package translation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Gravitalia/forum/model"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

const openAIPrompt = "You are a professional translator. Translate the following text to %s. Maintain the original tone and context. Only return the translated text, no explanations."

// OpenAI translates with a chat completion
type OpenAI struct {
	Model  string
	client *openai.Client
}

// NewOpenAI returns a provider without client when key is empty
func NewOpenAI(key, baseURL, model string, httpClient *http.Client) *OpenAI {
	provider := &OpenAI{Model: model}
	if key == "" {
		return provider
	}

	config := openai.DefaultConfig(key)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if httpClient != nil {
		config.HTTPClient = httpClient
	}
	provider.client = openai.NewClientWithConfig(config)

	return provider
}

func (o *OpenAI) Name() string {
	return "openai"
}

func (o *OpenAI) Translate(ctx context.Context, req Request) (model.Translation, error) {
	if o.client == nil {
		return model.Translation{}, errors.New("OpenAI API key not configured")
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(openAIPrompt, req.TargetLang)},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		MaxTokens:   1000,
		Temperature: 0.3,
	})
	if err != nil {
		return model.Translation{}, errors.Wrap(err, "OpenAI translation failed")
	}
	if len(resp.Choices) == 0 {
		return model.Translation{}, errors.New("OpenAI translation failed: empty response")
	}

	return model.Translation{
		TranslatedText:   strings.TrimSpace(resp.Choices[0].Message.Content),
		Service:          o.Name(),
		DetectedLanguage: "unknown",
	}, nil
}
