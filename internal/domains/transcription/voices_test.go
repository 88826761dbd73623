package transcription

import "testing"

func TestVoiceForLanguage(t *testing.T) {
	if v := VoiceForLanguage("en"); v != "en-US-Wavenet-D" {
		t.Errorf("Expected en-US-Wavenet-D for en, got %s", v)
	}

	if v := VoiceForLanguage("es"); v != "es-ES-Standard-A" {
		t.Errorf("Expected es-ES-Standard-A for es, got %s", v)
	}

	if v := VoiceForLanguage("zh"); v != "cmn-CN-Standard-A" {
		t.Errorf("Expected cmn-CN-Standard-A for zh, got %s", v)
	}
}

func TestVoiceForLanguageFallback(t *testing.T) {
	// Unknown languages fall back to the English voice.
	if v := VoiceForLanguage("xx"); v != "en-US-Wavenet-D" {
		t.Errorf("Expected fallback voice for unknown language, got %s", v)
	}

	if v := VoiceForLanguage(""); v != "en-US-Wavenet-D" {
		t.Errorf("Expected fallback voice for empty language, got %s", v)
	}
}

func TestEverySupportedLanguageHasVoice(t *testing.T) {
	fallback := VoiceForLanguage("xx")
	for _, lang := range SupportedLanguages() {
		if lang == "en" {
			continue
		}
		if v := VoiceForLanguage(lang); v == fallback {
			t.Errorf("Language %s resolves to the fallback voice, expected a dedicated one", lang)
		}
	}
}
