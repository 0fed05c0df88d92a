package translation

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gravitalia/forum/helpers"
	"github.com/Gravitalia/forum/model"
)

// Services lists provider names in fallback order
var Services = []string{"openai", "azure", "google", "deepl", "local"}

// Request is a single text to translate
type Request struct {
	Text       string
	SourceLang string
	TargetLang string
}

// Source is the source language, empty when it should be detected
func (r Request) Source() string {
	if strings.EqualFold(r.SourceLang, "auto") {
		return ""
	}
	return r.SourceLang
}

// Provider translates text through one upstream service
type Provider interface {
	Name() string
	Translate(ctx context.Context, req Request) (model.Translation, error)
}

// NewProviders builds every provider from the configuration,
// in fallback order
func NewProviders(cfg helpers.ProviderConfig, client *http.Client) []Provider {
	if client == nil {
		client = http.DefaultClient
	}

	return []Provider{
		NewOpenAI(cfg.OpenAIKey, cfg.OpenAIBase, cfg.OpenAIModel, client),
		&Azure{Key: cfg.AzureKey, Region: cfg.AzureRegion, URL: cfg.AzureURL, Client: client},
		&Google{Key: cfg.GoogleKey, URL: cfg.GoogleURL, Client: client},
		&DeepL{Key: cfg.DeepLKey, URL: cfg.DeepLURL, Client: client},
		&Local{
			Type:      cfg.LocalModelType,
			Model:     cfg.LocalModelName,
			ServerURL: cfg.LocalServerURL,
			OllamaURL: cfg.OllamaURL,
			Client:    client,
		},
	}
}
