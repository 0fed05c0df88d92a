package translation

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Gravitalia/forum/model"
	"github.com/pkg/errors"
)

// Google calls the Cloud Translation v2 API
type Google struct {
	Key    string
	URL    string
	Client *http.Client
}

type googleBody struct {
	Q      string `json:"q"`
	Target string `json:"target"`
	Source string `json:"source,omitempty"`
}

type googleResult struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

func (g *Google) Name() string {
	return "google"
}

func (g *Google) Translate(ctx context.Context, req Request) (model.Translation, error) {
	if g.Key == "" {
		return model.Translation{}, errors.New("Google Translate API key not configured")
	}

	var result googleResult
	if err := postJSON(ctx, g.Client, g.URL+"?key="+url.QueryEscape(g.Key), nil, googleBody{
		Q:      req.Text,
		Target: req.TargetLang,
		Source: req.Source(),
	}, &result); err != nil {
		return model.Translation{}, errors.Wrap(err, "Google translation failed")
	}

	if len(result.Data.Translations) == 0 {
		return model.Translation{}, errors.New("Google translation failed: empty response")
	}

	translation := result.Data.Translations[0]
	detected := translation.DetectedSourceLanguage
	if detected == "" {
		detected = orUnknown(req.Source())
	}

	return model.Translation{
		TranslatedText:   translation.TranslatedText,
		Service:          g.Name(),
		DetectedLanguage: detected,
	}, nil
}
