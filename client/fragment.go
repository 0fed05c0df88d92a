package client

import (
	"context"
	"strings"

	"github.com/Gravitalia/forum/model"
)

// FragmentService is the provider asked first for fragments
const FragmentService = "local"

// Translator is the part of Client a Fragment uses
type Translator interface {
	Translate(ctx context.Context, body model.TranslationBody) (model.Translation, error)
}

// Fragment is one displayed text, translated into the reader's
// language. Every fragment is translated on its own.
type Fragment struct {
	Content string
	Source  string
	Target  string

	translator   Translator
	translated   string
	showOriginal bool
	err          error
}

// NewFragment defaults the source to "auto" and the target to "en"
func NewFragment(translator Translator, content string, source string, target string) *Fragment {
	if source == "" {
		source = "auto"
	}
	if target == "" {
		target = "en"
	}

	return &Fragment{
		Content:    content,
		Source:     source,
		Target:     target,
		translator: translator,
	}
}

// NeedsTranslation is false for blank content or when the text is
// already in the target language
func (f *Fragment) NeedsTranslation() bool {
	return strings.TrimSpace(f.Content) != "" && f.Source != f.Target
}

// Load translates the content. On failure the original stays
// displayed and Err reports the cause.
func (f *Fragment) Load(ctx context.Context) {
	f.err = nil
	if !f.NeedsTranslation() {
		f.translated = f.Content
		return
	}

	result, err := f.translator.Translate(ctx, model.TranslationBody{
		Text:       f.Content,
		SourceLang: f.Source,
		TargetLang: f.Target,
		Service:    FragmentService,
	})
	if err != nil || result.TranslatedText == "" {
		f.translated = f.Content
		f.err = err
		return
	}

	f.translated = result.TranslatedText
}

// Retry loads the translation again
func (f *Fragment) Retry(ctx context.Context) {
	f.Load(ctx)
}

// Toggle switches between original and translated text
func (f *Fragment) Toggle() {
	f.showOriginal = !f.showOriginal
}

// Text is what should be displayed
func (f *Fragment) Text() string {
	if f.showOriginal || f.translated == "" {
		return f.Content
	}
	return f.translated
}

// ShowingOriginal reports whether the original is displayed
func (f *Fragment) ShowingOriginal() bool {
	return f.showOriginal || f.Text() == f.Content
}

func (f *Fragment) Err() error {
	return f.err
}
