package speech

import "strings"

// Locale tags an utterance: "hi" becomes "hi-HI", Roman Urdu becomes "en-US".
func Locale(languageCode string) string {
	if languageCode == "ru" {
		return romanUrduLocale
	}
	return languageCode + "-" + strings.ToUpper(languageCode)
}

// PickVoice prefers a voice of the target language, then any English voice,
// then the first one. It returns nil only when the platform exposes no voice.
func PickVoice(voices []Voice, languageCode string) *Voice {
	if len(voices) == 0 {
		return nil
	}

	prefix, found := voiceLanguages[languageCode]
	if !found {
		prefix = fallbackVoiceLanguage
	}

	if voice := findByPrefix(voices, prefix); voice != nil {
		return voice
	}
	if voice := findByPrefix(voices, fallbackVoiceLanguage); voice != nil {
		return voice
	}

	return &voices[0]
}

func findByPrefix(voices []Voice, prefix string) *Voice {
	for i := range voices {
		if strings.HasPrefix(strings.ToLower(voices[i].Language), prefix) {
			return &voices[i]
		}
	}
	return nil
}
