package transcription

import "testing"

func TestFailureMetadataMerges(t *testing.T) {
	base := map[string]any{
		"model":    "tts-1",
		"language": "es",
	}

	merged := failureMetadata(base, "provider down", "goroutine 1 [running]:")

	if merged["error"] != "provider down" {
		t.Errorf("Expected error annotation, got %v", merged["error"])
	}
	if merged["trace"] != "goroutine 1 [running]:" {
		t.Errorf("Expected trace annotation, got %v", merged["trace"])
	}
	if merged["model"] != "tts-1" || merged["language"] != "es" {
		t.Errorf("Unrelated keys must survive, got %v", merged)
	}
	if base["error"] != nil {
		t.Error("Input map must not be mutated")
	}
}

func TestFailureMetadataEmptyTraceKeepsPrevious(t *testing.T) {
	// The attempt's failure path already recorded a real trace; a later
	// annotation without one must not erase it.
	base := map[string]any{
		"error": "attempt error",
		"trace": "goroutine 1 [running]: last attempt stack",
		"model": "tts-1",
	}

	merged := failureMetadata(base, "failed after 3 attempts: attempt error", "")

	if merged["error"] != "failed after 3 attempts: attempt error" {
		t.Errorf("Expected updated error message, got %v", merged["error"])
	}
	if merged["trace"] != "goroutine 1 [running]: last attempt stack" {
		t.Errorf("Expected previous trace preserved, got %v", merged["trace"])
	}
	if merged["model"] != "tts-1" {
		t.Errorf("Unrelated keys must survive, got %v", merged)
	}
}

func TestFailureMetadataReplacesStaleAnnotation(t *testing.T) {
	base := map[string]any{
		"error": "old error",
		"trace": "old trace",
	}

	merged := failureMetadata(base, "new error", "new trace")

	if merged["error"] != "new error" || merged["trace"] != "new trace" {
		t.Errorf("Expected fresh annotation to win, got %v", merged)
	}
}
