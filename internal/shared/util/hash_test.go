package util

import "testing"

func TestHashText(t *testing.T) {
	text := "I think social media is bad for students."
	got := HashText(text)
	if got != HashText(text) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	if got == HashText(text+" ") {
		t.Fatalf("expected different hash for different text")
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}
