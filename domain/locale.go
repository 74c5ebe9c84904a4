package domain

// Locale is one of the two languages the site is published in.
type Locale string

const (
	LocaleIT Locale = "it"
	LocaleEN Locale = "en"
)

// DefaultLocale matches the site's primary audience.
const DefaultLocale = LocaleIT

func (l Locale) Valid() bool {
	return l == LocaleIT || l == LocaleEN
}

// Pick returns the text for the locale, falling back to the other language when empty.
func (l Locale) Pick(it, en string) string {
	if l == LocaleEN {
		if en != "" {
			return en
		}
		return it
	}
	if it != "" {
		return it
	}
	return en
}
