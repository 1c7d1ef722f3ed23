package recaser

import (
	"strings"
	"unicode"

	"github.com/hazyhaar/recase/pkg/caseclass"
)

// Marker feature strings. These are scoped to the extractor; the classifier
// only ever sees them by string identity.
const (
	featBias       = "*bias*"
	featInitial    = "*initial*"
	featPeninitial = "*peninitial*"
	featHyphen     = "*hyphen*"
	featNumber     = "*number*"
)

// ExtractFeatures produces one emission feature vector per token. Tokens
// are casefolded before feature formatting, so callers may pass either the
// original or the folded sentence. Identical sentences always yield
// byte-identical feature strings in the same order; the classifier indexes
// features by string identity.
func ExtractFeatures(tokens []string) [][]string {
	folded := make([]string, len(tokens))
	for i, tok := range tokens {
		folded[i] = caseclass.Fold(tok)
	}

	vectors := make([][]string, len(folded))
	for i, tok := range folded {
		vector := []string{featBias, "w_i=" + tok}
		// Backward context.
		if i == 0 {
			vector = append(vector, featInitial)
		} else {
			vector = append(vector, "w_i-1="+folded[i-1])
			if i == 1 {
				vector = append(vector, featPeninitial)
			} else {
				vector = append(vector, "w_i-2="+folded[i-2])
			}
		}
		// Forward context.
		if i < len(folded)-1 {
			vector = append(vector, "w_i+1="+folded[i+1])
			if i < len(folded)-2 {
				vector = append(vector, "w_i+2="+folded[i+2])
			}
		}
		// Shape.
		if strings.ContainsRune(tok, '-') {
			vector = append(vector, featHyphen)
		}
		if strings.ContainsFunc(tok, unicode.IsDigit) {
			vector = append(vector, featNumber)
		}
		vectors[i] = vector
	}
	return vectors
}
