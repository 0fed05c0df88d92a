package model

// TranslationBody defines the body of the translate route
type TranslationBody struct {
	Text       string `json:"text"`
	TargetLang string `json:"targetLang"`
	SourceLang string `json:"sourceLang,omitempty"`
	Service    string `json:"service,omitempty"`
}

// Translation is the result returned by a provider
type Translation struct {
	TranslatedText   string `json:"translatedText"`
	Service          string `json:"service"`
	DetectedLanguage string `json:"detectedLanguage"`
}
