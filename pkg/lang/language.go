package lang

import "strings"

// Language represents a commit message language
type Language string

const (
	English            Language = "en"
	ChineseSimplified  Language = "zh"
	ChineseTraditional Language = "zh-tw"
	Japanese           Language = "ja"
	Korean             Language = "ko"
	German             Language = "de"
	French             Language = "fr"
	Spanish            Language = "es"
)

// String returns the string representation of the language
func (l Language) String() string {
	return string(l)
}

// PromptName returns the English name used when instructing the model.
// Unknown codes are passed through so any language the model knows still works.
func (l Language) PromptName() string {
	switch l {
	case English:
		return "English"
	case ChineseSimplified:
		return "Simplified Chinese"
	case ChineseTraditional:
		return "Traditional Chinese"
	case Japanese:
		return "Japanese"
	case Korean:
		return "Korean"
	case German:
		return "German"
	case French:
		return "French"
	case Spanish:
		return "Spanish"
	default:
		return string(l)
	}
}

// DefaultLanguage returns the default language
func DefaultLanguage() Language {
	return English
}

// ParseLanguage normalizes a language code; empty input yields the default
func ParseLanguage(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLanguage()
	}
	return Language(s)
}
