package constants

const (
	LanguageEnglish   = "en"
	LanguageHindi     = "hi"
	LanguageUrdu      = "ur"
	LanguageTelugu    = "te"
	LanguageRomanUrdu = "ru"
)

// GetLanguages returns the selectable language codes, in display order.
func GetLanguages() []string {
	return []string{LanguageEnglish, LanguageHindi, LanguageUrdu, LanguageTelugu, LanguageRomanUrdu}
}

func IsSupportedLanguage(code string) bool {
	for _, language := range GetLanguages() {
		if language == code {
			return true
		}
	}
	return false
}
