package stem

import (
	"errors"
	"testing"

	pkgerrors "github.com/fishbeet/pke/pkg/errors"
)

func TestSnowballEnglish(t *testing.T) {
	stemmer, err := New("porter", "english")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cases := map[string]string{
		"running":  "run",
		"cats":     "cat",
		"learning": "learn",
	}
	for word, want := range cases {
		if got := stemmer.Stem(word); got != want {
			t.Errorf("Stem(%q) = %q, want %q", word, got, want)
		}
	}
}

func TestIdentityStemmer(t *testing.T) {
	stemmer, err := New("none", "english")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := stemmer.Stem("Learning"); got != "learning" {
		t.Errorf("Stem(%q) = %q, want lowercased identity", "Learning", got)
	}
}

func TestUnknownStemmer(t *testing.T) {
	_, err := New("lancaster", "english")
	if !errors.Is(err, pkgerrors.ErrConfiguration) {
		t.Fatalf("got %v, want configuration error", err)
	}
}

func TestUnknownLanguage(t *testing.T) {
	_, err := New("porter", "klingon")
	if !errors.Is(err, pkgerrors.ErrConfiguration) {
		t.Fatalf("got %v, want configuration error", err)
	}
}

func TestFuncAdapter(t *testing.T) {
	f := Func(func(w string) string { return w + "!" })
	if got := f.Stem("x"); got != "x!" {
		t.Errorf("Func adapter broken: %q", got)
	}
}
