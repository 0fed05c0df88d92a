package translation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Gravitalia/forum/model"
	"github.com/pkg/errors"
)

const ollamaPrompt = "Translate the following text from %s to %s. Only return the translation, no explanations:\n\n%s"

// Local calls a self hosted model, the translation server
// when configured, otherwise an Ollama instance
type Local struct {
	// Type is "server" or "ollama"
	Type      string
	Model     string
	ServerURL string
	OllamaURL string
	Client    *http.Client
}

type localBody struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type localResult struct {
	TranslatedText   string `json:"translated_text"`
	DetectedLanguage string `json:"detected_language"`
}

type ollamaBody struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type ollamaResult struct {
	Response string `json:"response"`
}

func (l *Local) Name() string {
	return "local"
}

func (l *Local) Translate(ctx context.Context, req Request) (model.Translation, error) {
	if l.ServerURL == "" && l.Type == "ollama" {
		return l.ollama(ctx, req)
	}
	return l.server(ctx, req)
}

func (l *Local) server(ctx context.Context, req Request) (model.Translation, error) {
	if l.ServerURL == "" {
		return model.Translation{}, errors.New("Local model server not configured")
	}

	source := req.Source()
	if source == "" {
		source = "auto"
	}

	var result localResult
	if err := postJSON(ctx, l.Client, strings.TrimRight(l.ServerURL, "/")+"/translate", nil, localBody{
		Text:       req.Text,
		SourceLang: source,
		TargetLang: req.TargetLang,
	}, &result); err != nil {
		return model.Translation{}, errors.Wrap(err, "Local model translation failed")
	}

	return model.Translation{
		TranslatedText:   result.TranslatedText,
		Service:          "local_server",
		DetectedLanguage: orUnknown(result.DetectedLanguage),
	}, nil
}

func (l *Local) ollama(ctx context.Context, req Request) (model.Translation, error) {
	if l.OllamaURL == "" {
		return model.Translation{}, errors.New("Ollama server not configured")
	}

	source := req.Source()
	if source == "" {
		source = "the detected language"
	}

	var result ollamaResult
	if err := postJSON(ctx, l.Client, strings.TrimRight(l.OllamaURL, "/")+"/api/generate", nil, ollamaBody{
		Model:   l.Model,
		Prompt:  fmt.Sprintf(ollamaPrompt, source, req.TargetLang, req.Text),
		Stream:  false,
		Options: ollamaOptions{Temperature: 0.3, TopP: 0.9},
	}, &result); err != nil {
		return model.Translation{}, errors.Wrap(err, "Ollama translation failed")
	}

	return model.Translation{
		TranslatedText:   strings.TrimSpace(result.Response),
		Service:          "local_ollama",
		DetectedLanguage: orUnknown(req.Source()),
	}, nil
}
