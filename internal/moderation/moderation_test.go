package moderation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilterBanned(t *testing.T) {
	f := Default()

	for _, tc := range []struct {
		name string
		text string
		want bool
	}{
		{"CleanText", "A perfectly polite comment", false},
		{"Empty", "", false},
		{"ExactWord", "scoundrel", true},
		{"WordInSentence", "Some text, scoundrel, more text", true},
		{"SecondWord", "what a rascal you are", true},
		{"Uppercase", "You SCOUNDREL!", true},
		{"MixedCase", "RaScAl", true},
		{"Substring", "rascally behaviour", true},
		{"NearMiss", "rascca", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.Banned(tc.text); got != tc.want {
				t.Errorf("Banned(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestFilterEveryDefaultWord(t *testing.T) {
	f := Default()
	for _, w := range DefaultBadWords {
		if !f.Banned("some text, " + w + ", more text") {
			t.Errorf("expected %q to be banned", w)
		}
	}
}

func TestNewNormalizesWords(t *testing.T) {
	f := New(" Villain ", "", "KNAVE")
	if got := len(f.Words()); got != 2 {
		t.Fatalf("expected 2 words, got %d: %v", got, f.Words())
	}
	if !f.Banned("that villain again") || !f.Banned("you knave") {
		t.Fatal("expected normalized words to match")
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.toml")
	if err := os.WriteFile(path, []byte("bad_words = [\"grumble\", \"Fiddlesticks\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := FromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Banned("oh, fiddlesticks") {
		t.Fatal("expected loaded word to be banned")
	}
	if f.Banned("scoundrel") {
		t.Fatal("file list should replace the default list")
	}
}

func TestFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.toml")
	if err := os.WriteFile(path, []byte("bad_words = []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(path); err == nil {
		t.Fatal("expected error for empty word list")
	}
}

func TestFromFileMissing(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
