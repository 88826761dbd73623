package transcription

// languageVoices maps language codes to synthesis voice identifiers.
// Built once at init; never mutated.
var languageVoices = map[string]string{
	"en": "en-US-Wavenet-D",
	"es": "es-ES-Standard-A",
	"fr": "fr-FR-Standard-A",
	"de": "de-DE-Standard-A",
	"it": "it-IT-Standard-A",
	"pt": "pt-PT-Standard-A",
	"ru": "ru-RU-Standard-A",
	"zh": "cmn-CN-Standard-A",
	"ja": "ja-JP-Standard-A",
	"ko": "ko-KR-Standard-A",
	"hi": "hi-IN-Standard-A",
	"ar": "ar-XA-Standard-A",
}

// VoiceForLanguage resolves the synthesis voice for a language code.
// Unknown codes fall back to the English default.
func VoiceForLanguage(language string) string {
	if voice, ok := languageVoices[language]; ok {
		return voice
	}
	return languageVoices[DefaultLanguage]
}
