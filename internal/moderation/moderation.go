// Package moderation screens comment text against a banned-word list.
package moderation

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Warning is the field error returned for a comment containing a banned word.
const Warning = "Mind your language!"

// DefaultBadWords is the built-in banned-word list. Matching is by substring
// containment, case-insensitive; deployments can replace the list with a
// TOML file (see FromFile).
var DefaultBadWords = []string{"scoundrel", "rascal"}

// Filter rejects text containing any of its banned words.
type Filter struct {
	words []string
}

// New returns a filter over the given words. Words are lowercased once at
// construction.
func New(words ...string) *Filter {
	lowered := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			lowered = append(lowered, w)
		}
	}
	return &Filter{words: lowered}
}

// Default returns a filter over DefaultBadWords.
func Default() *Filter {
	return New(DefaultBadWords...)
}

// fileFormat is the TOML layout of a word-list override file.
type fileFormat struct {
	BadWords []string `toml:"bad_words"`
}

// FromFile loads a banned-word list from a TOML file with a single
// `bad_words` array.
func FromFile(path string) (*Filter, error) {
	var f fileFormat
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("load word list %s: %w", path, err)
	}
	if len(f.BadWords) == 0 {
		return nil, fmt.Errorf("word list %s: bad_words is empty", path)
	}
	return New(f.BadWords...), nil
}

// Banned reports whether text contains any banned word as a substring.
func (f *Filter) Banned(text string) bool {
	lowered := strings.ToLower(text)
	for _, w := range f.words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

// Words returns a copy of the active word list.
func (f *Filter) Words() []string {
	out := make([]string, len(f.words))
	copy(out, f.words)
	return out
}
