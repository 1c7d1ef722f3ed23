package caseclass

import (
	"errors"
	"testing"
)

func TestClassifyChar(t *testing.T) {
	tests := []struct {
		r    rune
		want CharCase
	}{
		{'a', CharLower},
		{'z', CharLower},
		{'A', CharUpper},
		{'É', CharUpper},
		{'é', CharLower},
		{'ß', CharLower},
		{'7', CharDC},
		{'-', CharDC},
		{' ', CharDC},
		{'中', CharDC},
		{'Ǆ', CharUpper},
		{'ǅ', CharDC}, // titlecase Lt, not Lu or Ll
	}
	for _, tt := range tests {
		if got := ClassifyChar(tt.r); got != tt.want {
			t.Errorf("ClassifyChar(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestApplyChar(t *testing.T) {
	tests := []struct {
		r    rune
		cc   CharCase
		want string
	}{
		{'a', CharUpper, "A"},
		{'A', CharLower, "a"},
		{'a', CharDC, "a"},
		{'é', CharUpper, "É"},
		{'7', CharUpper, "7"},
		// Expansion under uppercasing.
		{'ß', CharUpper, "SS"},
	}
	for _, tt := range tests {
		got, err := ApplyChar(tt.r, tt.cc)
		if err != nil {
			t.Errorf("ApplyChar(%q, %v): %v", tt.r, tt.cc, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ApplyChar(%q, %v) = %q, want %q", tt.r, tt.cc, got, tt.want)
		}
	}
}

func TestApplyChar_UnknownDirective(t *testing.T) {
	_, err := ApplyChar('a', CharCase(9))
	if !errors.Is(err, ErrUnknownCharCase) {
		t.Errorf("err = %v, want ErrUnknownCharCase", err)
	}
}

func TestClassifyToken(t *testing.T) {
	tests := []struct {
		in   string
		want TokenCase
	}{
		{"cat", TokenLower},
		{"cat-dog", TokenLower},
		{"o'neill", TokenLower},
		{"CAT", TokenUpper},
		{"NASA", TokenUpper},
		{"Cat", TokenTitle},
		{"O'Neill", TokenTitle},
		{"Jean-Pierre", TokenTitle},
		// A lone capital satisfies both the title and upper conditions;
		// title wins.
		{"A", TokenTitle},
		{"I", TokenTitle},
		{"212", TokenDC},
		{"97000", TokenDC},
		{"...", TokenDC},
		{"", TokenDC},
		{"中文", TokenDC},
		{"SMiLE", TokenMixed},
		{"iFoo", TokenMixed},
		{"McDonald", TokenMixed},
		{"étude", TokenLower},
		{"Étude", TokenTitle},
	}
	for _, tt := range tests {
		got, pattern := ClassifyToken(tt.in)
		if got != tt.want {
			t.Errorf("ClassifyToken(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if (pattern != nil) != (got == TokenMixed) {
			t.Errorf("ClassifyToken(%q): pattern present = %v for label %v", tt.in, pattern != nil, got)
		}
	}
}

func TestClassifyToken_MixedPattern(t *testing.T) {
	tc, pattern := ClassifyToken("SMiLE")
	if tc != TokenMixed {
		t.Fatalf("ClassifyToken(SMiLE) = %v, want MIXED", tc)
	}
	want := Pattern{CharUpper, CharUpper, CharLower, CharUpper, CharUpper}
	if pattern.String() != want.String() {
		t.Errorf("pattern = %v, want %v", pattern, want)
	}
}

func TestApplyToken(t *testing.T) {
	tests := []struct {
		in      string
		tc      TokenCase
		pattern Pattern
		want    string
	}{
		{"212", TokenDC, nil, "212"},
		{"CAT", TokenLower, nil, "cat"},
		{"cat", TokenUpper, nil, "CAT"},
		{"cat", TokenTitle, nil, "Cat"},
		{"o'neill", TokenTitle, nil, "O'Neill"},
		{"jean-pierre", TokenTitle, nil, "Jean-Pierre"},
		{"étude", TokenTitle, nil, "Étude"},
		// MIXED without a pattern falls back to lowercase.
		{"IFOO", TokenMixed, nil, "ifoo"},
		{"smile", TokenMixed, Pattern{CharUpper, CharUpper, CharLower, CharUpper, CharUpper}, "SMiLE"},
	}
	for _, tt := range tests {
		got, err := ApplyToken(tt.in, tt.tc, tt.pattern)
		if err != nil {
			t.Errorf("ApplyToken(%q, %v): %v", tt.in, tt.tc, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ApplyToken(%q, %v) = %q, want %q", tt.in, tt.tc, got, tt.want)
		}
	}
}

func TestApplyToken_RoundTrip(t *testing.T) {
	tokens := []string{
		"cat", "Cat", "CAT", "SMiLE", "iFoo", "McDonald", "O'Neill",
		"Jean-Pierre", "étude", "Étude", "NASA", "A", "212", "...",
	}
	for _, tok := range tokens {
		tc, pattern := ClassifyToken(tok)
		got, err := ApplyToken(Fold(tok), tc, pattern)
		if err != nil {
			t.Errorf("round trip %q: %v", tok, err)
			continue
		}
		if got != tok {
			t.Errorf("round trip %q via %v = %q", tok, tc, got)
		}
	}
}

func TestApplyToken_PatternLengthMismatch(t *testing.T) {
	_, err := ApplyToken("smile", TokenMixed, Pattern{CharUpper, CharLower})
	if !errors.Is(err, ErrPatternLength) {
		t.Errorf("err = %v, want ErrPatternLength", err)
	}
}

func TestApplyToken_UnknownLabel(t *testing.T) {
	_, err := ApplyToken("cat", TokenCase(42), nil)
	if !errors.Is(err, ErrUnknownTokenCase) {
		t.Errorf("err = %v, want ErrUnknownTokenCase", err)
	}
}

func TestParseTokenCase(t *testing.T) {
	for tc := TokenDC; tc <= TokenMixed; tc++ {
		got, err := ParseTokenCase(tc.String())
		if err != nil {
			t.Errorf("ParseTokenCase(%v): %v", tc, err)
		}
		if got != tc {
			t.Errorf("ParseTokenCase(%v) = %v", tc, got)
		}
	}
	if _, err := ParseTokenCase("SHOUTY"); err == nil {
		t.Error("expected error for unknown label name")
	}
}
