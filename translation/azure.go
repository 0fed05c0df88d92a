package translation

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Gravitalia/forum/model"
	"github.com/pkg/errors"
)

// Azure calls the Azure Translator v3 API
type Azure struct {
	Key    string
	Region string
	URL    string
	Client *http.Client
}

type azureText struct {
	Text string `json:"text"`
}

type azureResult struct {
	DetectedLanguage struct {
		Language string `json:"language"`
	} `json:"detectedLanguage"`
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

func (a *Azure) Name() string {
	return "azure"
}

func (a *Azure) Translate(ctx context.Context, req Request) (model.Translation, error) {
	if a.Key == "" {
		return model.Translation{}, errors.New("Azure Translator key not configured")
	}

	query := url.Values{}
	query.Set("api-version", "3.0")
	query.Set("to", req.TargetLang)
	if source := req.Source(); source != "" {
		query.Set("from", source)
	}

	var results []azureResult
	if err := postJSON(ctx, a.Client, a.URL+"?"+query.Encode(), map[string]string{
		"Ocp-Apim-Subscription-Key":    a.Key,
		"Ocp-Apim-Subscription-Region": a.Region,
	}, []azureText{{Text: req.Text}}, &results); err != nil {
		return model.Translation{}, errors.Wrap(err, "Azure translation failed")
	}

	if len(results) == 0 || len(results[0].Translations) == 0 {
		return model.Translation{}, errors.New("Azure translation failed: empty response")
	}

	detected := results[0].DetectedLanguage.Language
	if detected == "" {
		detected = orUnknown(req.Source())
	}

	return model.Translation{
		TranslatedText:   results[0].Translations[0].Text,
		Service:          a.Name(),
		DetectedLanguage: detected,
	}, nil
}

// orUnknown is used when a provider does not detect the language
func orUnknown(language string) string {
	if language == "" {
		return "unknown"
	}
	return language
}
