package caseclass

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// Table maps a casefolded token to the exact casing Pattern it was last
// seen with. It recovers irregular mixed-case spellings (brand names and the
// like) that a plain TokenCase label cannot encode. The table is built
// during training, travels as metadata alongside the trained classifier,
// and is read-only at inference time.
type Table map[string]Pattern

// Observe classifies token and, when it is MIXED, records its pattern under
// the casefolded form. A later observation of the same casefolded form
// overwrites an earlier one, so the table keeps the last spelling seen in
// corpus order. The computed label and pattern are returned so corpus
// readers can tag and record in one pass.
func (t Table) Observe(token string) (TokenCase, Pattern) {
	tc, pattern := ClassifyToken(token)
	if tc == TokenMixed {
		t[Fold(token)] = pattern
	}
	return tc, pattern
}

// Lookup returns the pattern stored for a casefolded token. A miss is not
// an error: it means the form was never seen as MIXED during training, and
// restoration falls back to the all-lowercase rendering.
func (t Table) Lookup(folded string) (Pattern, bool) {
	p, ok := t[folded]
	return p, ok
}

// The textual encoding is independent of the classifier's weight format: a
// header line, then one "token<TAB>pattern" line per entry, patterns in the
// compact l/u/- form produced by Pattern.String.

const tableMagic = "recase-mpt\t1"

// Encode serializes the table. Entries are written in sorted key order so
// identical tables encode identically.
func (t Table) Encode() []byte {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b bytes.Buffer
	b.WriteString(tableMagic)
	b.WriteByte('\n')
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('\t')
		b.WriteString(t[k].String())
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// DecodeTable parses an encoded table. Empty input yields an empty table,
// so a model serialized without one still loads.
func DecodeTable(data []byte) (Table, error) {
	t := make(Table)
	if len(data) == 0 {
		return t, nil
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	if !sc.Scan() || sc.Text() != tableMagic {
		return nil, fmt.Errorf("decode pattern table: bad header")
	}
	for lineno := 2; sc.Scan(); lineno++ {
		line := sc.Text()
		if line == "" {
			continue
		}
		key, enc, ok := strings.Cut(line, "\t")
		if !ok || key == "" {
			return nil, fmt.Errorf("decode pattern table: malformed line %d", lineno)
		}
		pattern := make(Pattern, 0, len(enc))
		for _, c := range enc {
			switch c {
			case 'l':
				pattern = append(pattern, CharLower)
			case 'u':
				pattern = append(pattern, CharUpper)
			case '-':
				pattern = append(pattern, CharDC)
			default:
				return nil, fmt.Errorf("decode pattern table: bad pattern char %q on line %d", c, lineno)
			}
		}
		t[key] = pattern
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("decode pattern table: %w", err)
	}
	return t, nil
}
