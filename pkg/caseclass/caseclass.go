// Package caseclass implements the casing taxonomy used for case
// restoration: per-character case classes, per-token case classes, the
// classification procedure that infers a token's class from its original
// spelling, and the appliers that re-case a casefolded token from a class
// label (plus, for irregular tokens, an exact per-character pattern).
package caseclass

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// CharCase is the case class of a single character.
type CharCase uint8

const (
	// CharDC ("don't care") covers every character outside the cased
	// letter categories: digits, punctuation, symbols, caseless scripts.
	CharDC CharCase = iota
	// CharLower is Unicode general category Ll.
	CharLower
	// CharUpper is Unicode general category Lu.
	CharUpper
)

func (c CharCase) String() string {
	switch c {
	case CharDC:
		return "DC"
	case CharLower:
		return "LOWER"
	case CharUpper:
		return "UPPER"
	}
	return fmt.Sprintf("CharCase(%d)", uint8(c))
}

// TokenCase is the case class of a whole token.
type TokenCase uint8

const (
	TokenDC TokenCase = iota
	TokenLower
	TokenUpper
	TokenTitle
	TokenMixed
)

// NumTokenCases is the size of the label set, used to dimension classifiers.
const NumTokenCases = 5

func (t TokenCase) String() string {
	switch t {
	case TokenDC:
		return "DC"
	case TokenLower:
		return "LOWER"
	case TokenUpper:
		return "UPPER"
	case TokenTitle:
		return "TITLE"
	case TokenMixed:
		return "MIXED"
	}
	return fmt.Sprintf("TokenCase(%d)", uint8(t))
}

// ParseTokenCase is the inverse of TokenCase.String.
func ParseTokenCase(s string) (TokenCase, error) {
	switch s {
	case "DC":
		return TokenDC, nil
	case "LOWER":
		return TokenLower, nil
	case "UPPER":
		return TokenUpper, nil
	case "TITLE":
		return TokenTitle, nil
	case "MIXED":
		return TokenMixed, nil
	}
	return TokenDC, fmt.Errorf("%w: %q", ErrUnknownTokenCase, s)
}

// Pattern records the exact per-character casing of a MIXED token, one
// CharCase per rune of the token.
type Pattern []CharCase

func (p Pattern) String() string {
	var b strings.Builder
	for _, c := range p {
		switch c {
		case CharLower:
			b.WriteByte('l')
		case CharUpper:
			b.WriteByte('u')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

var (
	// ErrUnknownCharCase is returned by ApplyChar for a directive outside
	// the closed set. Callers never see it via ClassifyChar.
	ErrUnknownCharCase = errors.New("unrecognized case directive")
	// ErrUnknownTokenCase is returned by ApplyToken for a label outside
	// the closed set.
	ErrUnknownTokenCase = errors.New("unrecognized case label")
	// ErrPatternLength is returned when a MIXED pattern's length disagrees
	// with the token's character count, which indicates a corrupted or
	// mismatched pattern table.
	ErrPatternLength = errors.New("pattern length mismatch")
)

// Fold lowers a string for use as a lookup key or classifier feature. It is
// width-preserving in the sense that re-casing the folded form can recover
// the original (see ApplyToken).
func Fold(s string) string {
	return strings.ToLower(s)
}

// ClassifyChar computes the CharCase of a single character from its Unicode
// general category.
func ClassifyChar(r rune) CharCase {
	switch {
	case unicode.Is(unicode.Ll, r):
		return CharLower
	case unicode.Is(unicode.Lu, r):
		return CharUpper
	}
	return CharDC
}

// ApplyChar applies a CharCase to a single character. Unless the directive
// is CharDC, the result is insensitive to the input character's casing. The
// result is a string, not a rune: a few characters expand under case
// mapping (uppercasing ß yields SS).
func ApplyChar(r rune, cc CharCase) (string, error) {
	switch cc {
	case CharLower:
		return strings.ToLower(string(r)), nil
	case CharUpper:
		return strings.ToUpper(string(r)), nil
	case CharDC:
		return string(r), nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownCharCase, cc)
}

// isCased reports whether r belongs to a category with a case distinction.
func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

// isLower reports whether the token has at least one cased character and
// every cased character is lowercase.
func isLower(rs []rune) bool {
	hasCased := false
	for _, r := range rs {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			hasCased = true
		}
	}
	return hasCased
}

// isUpper reports whether the token has at least one cased character and
// every cased character is uppercase.
func isUpper(rs []rune) bool {
	hasCased := false
	for _, r := range rs {
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

// isTitle reports whether every maximal run of cased characters begins with
// an uppercase or titlecase character followed only by lowercase characters,
// with at least one cased character overall.
func isTitle(rs []rune) bool {
	hasCased := false
	prevCased := false
	for _, r := range rs {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased = true
			hasCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			hasCased = true
		default:
			prevCased = false
		}
	}
	return hasCased
}

// ClassifyToken computes the TokenCase of a token from its original
// spelling. The returned Pattern is non-nil exactly when the TokenCase is
// TokenMixed, and then has one CharCase per rune of the token.
//
// The checks are ordered: when a token satisfies both the title and upper
// conditions, as a lone capital like "A" does, TITLE wins. In running text
// a lone capital is almost always sentence-initial titlecasing rather than
// true all-caps.
func ClassifyToken(s string) (TokenCase, Pattern) {
	rs := []rune(s)
	if isLower(rs) {
		return TokenLower, nil
	}
	if isTitle(rs) {
		return TokenTitle, nil
	}
	if isUpper(rs) {
		return TokenUpper, nil
	}
	pattern := make(Pattern, len(rs))
	allDC := true
	for i, r := range rs {
		pattern[i] = ClassifyChar(r)
		if pattern[i] != CharDC {
			allDC = false
		}
	}
	if allDC {
		return TokenDC, nil
	}
	return TokenMixed, pattern
}

// titlecase uppercases the first cased character of each maximal cased run
// and lowers the rest, matching the run definition used by ClassifyToken.
func titlecase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		if !isCased(r) {
			prevCased = false
			b.WriteRune(r)
			continue
		}
		if prevCased {
			b.WriteString(strings.ToLower(string(r)))
		} else {
			b.WriteRune(unicode.ToTitle(r))
		}
		prevCased = true
	}
	return b.String()
}

// ApplyToken applies a TokenCase to a token, typically a casefolded one.
// Unless the label is TokenDC the result is insensitive to the input's
// casing. For TokenMixed a nil pattern falls back to the all-lowercase
// rendering; the casing of a novel mixed-case token is simply lost. A
// non-nil pattern must have exactly one element per rune.
//
// Given the Pattern produced by ClassifyToken for the same original string,
// ApplyToken inverts Fold: ApplyToken(Fold(s), ClassifyToken(s)) == s,
// except for tokens whose characters expand under case mapping.
func ApplyToken(s string, tc TokenCase, pattern Pattern) (string, error) {
	switch tc {
	case TokenDC:
		return s, nil
	case TokenLower:
		return strings.ToLower(s), nil
	case TokenUpper:
		return strings.ToUpper(s), nil
	case TokenTitle:
		return titlecase(s), nil
	case TokenMixed:
		if pattern == nil {
			return strings.ToLower(s), nil
		}
		rs := []rune(s)
		if len(rs) != len(pattern) {
			return "", fmt.Errorf("%w: token %q has %d characters, pattern has %d",
				ErrPatternLength, s, len(rs), len(pattern))
		}
		var b strings.Builder
		b.Grow(len(s))
		for i, r := range rs {
			out, err := ApplyChar(r, pattern[i])
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		}
		return b.String(), nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownTokenCase, tc)
}
