// Package locale provides the message catalog for every learner-facing
// string. Supported languages are English and Turkish; unknown tags fall
// back to English and unknown keys render as the key itself.
package locale

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Key names a catalog message.
type Key string

var supported = []language.Tag{language.English, language.Turkish}

var matcher = language.NewMatcher(supported)

var catalogs = map[language.Tag]map[Key]string{
	language.English: english,
	language.Turkish: turkish,
}

// Catalog renders messages in one language.
type Catalog struct {
	tag  language.Tag
	msgs map[Key]string
}

// New returns the catalog best matching lang ("tr", "tr-TR", "en-GB", ...).
func New(lang string) *Catalog {
	tag, _ := language.MatchStrings(matcher, lang)
	base, _ := tag.Base()
	for _, t := range supported {
		if b, _ := t.Base(); b == base {
			tag = t
			break
		}
	}
	msgs, ok := catalogs[tag]
	if !ok {
		tag, msgs = language.English, english
	}
	return &Catalog{tag: tag, msgs: msgs}
}

// T formats the message for key with args. Missing translations fall back
// to English, then to the key.
func (c *Catalog) T(key Key, args ...any) string {
	msg, ok := c.msgs[key]
	if !ok {
		if msg, ok = english[key]; !ok {
			return string(key)
		}
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Lang returns the BCP 47 tag of the catalog, e.g. "tr".
func (c *Catalog) Lang() string {
	return c.tag.String()
}

// SpeechLocale returns the region-qualified tag used by speech engines.
func (c *Catalog) SpeechLocale() string {
	if c.tag == language.Turkish {
		return "tr-TR"
	}
	return "en-US"
}

// LanguageName returns the English name of the language, for prompts.
func (c *Catalog) LanguageName() string {
	return display.English.Tags().Name(c.tag)
}

// Title applies language-aware title casing ("istanbul" → "İstanbul" in Turkish).
func (c *Catalog) Title(s string) string {
	return cases.Title(c.tag).String(s)
}
