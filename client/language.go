package client

import (
	"os"
	"sort"
	"strings"

	"github.com/Gravitalia/forum/translation"
	"golang.org/x/text/language"
)

var (
	// codes are the forum language codes, English first so that
	// it is what the matcher falls back on
	codes     = languageCodes()
	supported = tags(codes)
	matcher   = language.NewMatcher(supported)
)

func languageCodes() []string {
	list := make([]string, 0, len(translation.Languages))
	for code := range translation.Languages {
		if code != "en" {
			list = append(list, code)
		}
	}
	sort.Strings(list)

	return append([]string{"en"}, list...)
}

func tags(codes []string) []language.Tag {
	list := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		list = append(list, language.Make(code))
	}
	return list
}

// SystemLanguage guesses the reader's language from the
// environment, "en" when nothing matches
func SystemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := os.Getenv(key); value != "" {
			return Match(value)
		}
	}
	return "en"
}

// Match returns the forum language code closest to a locale
// such as "fr_FR.UTF-8"
func Match(locale string) string {
	locale = strings.SplitN(locale, ".", 2)[0]
	locale = strings.ReplaceAll(locale, "_", "-")

	tag, err := language.Parse(locale)
	if err != nil {
		return "en"
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return "en"
	}

	return codes[index]
}
