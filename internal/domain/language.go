package domain

// Language is a supported target-language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
	LanguageSpanish Language = "es"
)

// DefaultLanguage is used whenever a code is missing or unknown.
const DefaultLanguage = LanguageEnglish

// LanguageInfo describes a target language and the native language of the
// learners practising it.
type LanguageInfo struct {
	Code         Language
	LearningName string
	NativeName   string
	DisplayName  string
	VoiceLocale  string
}

var languages = map[Language]LanguageInfo{
	LanguageEnglish: {Code: LanguageEnglish, LearningName: "English", NativeName: "French", DisplayName: "English", VoiceLocale: "en-US"},
	LanguageFrench:  {Code: LanguageFrench, LearningName: "French", NativeName: "English", DisplayName: "Français", VoiceLocale: "fr-FR"},
	LanguageSpanish: {Code: LanguageSpanish, LearningName: "Spanish", NativeName: "English", DisplayName: "Español", VoiceLocale: "es-ES"},
}

func (l Language) String() string { return string(l) }

func (l Language) IsValid() bool {
	_, ok := languages[l]
	return ok
}

// Info returns the language table entry, falling back to DefaultLanguage for unknown codes.
func (l Language) Info() LanguageInfo {
	if info, ok := languages[l]; ok {
		return info
	}
	return languages[DefaultLanguage]
}

// SupportedLanguages returns all supported codes in a stable order.
func SupportedLanguages() []Language {
	return []Language{LanguageEnglish, LanguageFrench, LanguageSpanish}
}
