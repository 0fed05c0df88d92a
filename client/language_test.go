package client

import (
	"testing"

	"github.com/Gravitalia/forum/translation"
	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := map[string]string{
		"fr_FR.UTF-8": "fr",
		"ja_JP":       "ja",
		"zh_TW.UTF-8": "zh-TW",
		"zh_CN":       "zh",
		"en_US.UTF-8": "en",
		"sv_SE.UTF-8": "sv",
		"pl_PL":       "pl",
		"uk_UA":       "uk",
		"not a tag":   "en",
	}

	for locale, want := range tests {
		assert.Equal(t, want, Match(locale), locale)
	}
}

func TestMatchKnowsEveryLanguage(t *testing.T) {
	for code := range translation.Languages {
		assert.Equal(t, code, Match(code), code)
	}
}

func TestSystemLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "de_DE.UTF-8")
	assert.Equal(t, "de", SystemLanguage())

	t.Setenv("LANG", "")
	assert.Equal(t, "en", SystemLanguage())
}
