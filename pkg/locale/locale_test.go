package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/judgmentfleet/site/domain"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		header string
		want   domain.Locale
	}{
		{"query wins", "en", "it-IT,it;q=0.9", domain.LocaleEN},
		{"query is case insensitive", "IT", "en-US", domain.LocaleIT},
		{"english header", "", "en-GB,en;q=0.8", domain.LocaleEN},
		{"italian header", "", "it-CH", domain.LocaleIT},
		{"weighted header", "", "fr;q=0.9,en;q=0.8,it;q=0.5", domain.LocaleEN},
		{"unknown query falls to header", "de", "en", domain.LocaleEN},
		{"no hints", "", "", domain.LocaleIT},
		{"garbage header", "", ";;;", domain.LocaleIT},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.query, tc.header, domain.LocaleIT))
		})
	}
}

func TestResolveFallback(t *testing.T) {
	assert.Equal(t, domain.LocaleEN, Resolve("", "", domain.LocaleEN))
	assert.Equal(t, domain.DefaultLocale, Resolve("", "", domain.Locale("xx")))
}
