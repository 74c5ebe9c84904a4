// Package locale negotiates the site language for a request.
package locale

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/judgmentfleet/site/domain"
)

var supported = []language.Tag{language.Italian, language.English}

var matcher = language.NewMatcher(supported)

// Resolve picks the locale from an explicit query value first, then the
// Accept-Language header, then fallback.
func Resolve(query, acceptLanguage string, fallback domain.Locale) domain.Locale {
	if !fallback.Valid() {
		fallback = domain.DefaultLocale
	}
	if l := domain.Locale(strings.ToLower(strings.TrimSpace(query))); l.Valid() {
		return l
	}
	if strings.TrimSpace(acceptLanguage) == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	if supported[index] == language.English {
		return domain.LocaleEN
	}
	return domain.LocaleIT
}
