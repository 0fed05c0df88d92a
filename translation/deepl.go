package translation

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gravitalia/forum/model"
	"github.com/pkg/errors"
)

// DeepL calls the DeepL v2 API
type DeepL struct {
	Key    string
	URL    string
	Client *http.Client
}

type deeplBody struct {
	Text       []string `json:"text"`
	TargetLang string   `json:"target_lang"`
	SourceLang string   `json:"source_lang,omitempty"`
}

type deeplResult struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

func (d *DeepL) Name() string {
	return "deepl"
}

func (d *DeepL) Translate(ctx context.Context, req Request) (model.Translation, error) {
	if d.Key == "" {
		return model.Translation{}, errors.New("DeepL API key not configured")
	}

	var result deeplResult
	if err := postJSON(ctx, d.Client, d.URL, map[string]string{
		"Authorization": "DeepL-Auth-Key " + d.Key,
	}, deeplBody{
		Text:       []string{req.Text},
		TargetLang: strings.ToUpper(req.TargetLang),
		SourceLang: strings.ToUpper(req.Source()),
	}, &result); err != nil {
		return model.Translation{}, errors.Wrap(err, "DeepL translation failed")
	}

	if len(result.Translations) == 0 {
		return model.Translation{}, errors.New("DeepL translation failed: empty response")
	}

	detected := strings.ToLower(result.Translations[0].DetectedSourceLanguage)
	if detected == "" {
		detected = orUnknown(req.Source())
	}

	return model.Translation{
		TranslatedText:   result.Translations[0].Text,
		Service:          d.Name(),
		DetectedLanguage: detected,
	}, nil
}
