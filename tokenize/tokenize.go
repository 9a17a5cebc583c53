// SPDX-License-Identifier: GPL-3.0-or-later
package tokenize

import (
	"strings"
	"unicode"

	"golang.org/x/net/publicsuffix"
)

const (
	// Tokens longer than this are noise (base64 blobs, tracking ids) and
	// are dropped.
	MaxTokenLength = 64

	// NumberToken replaces tokens that consist solely of digits. Individual
	// numbers carry no reusable signal, their presence does.
	NumberToken = "*num*"
)

// SuffixList normalizes host-like tokens to their registrable domain
// (eTLD+1) so that mail from mass-mailing subdomains folds into one feature.
type SuffixList interface {
	RegistrableDomain(host string) (string, bool)
}

// PublicSuffixList is the default SuffixList, backed by the compiled-in
// public suffix table of golang.org/x/net.
type PublicSuffixList struct{}

func (PublicSuffixList) RegistrableDomain(host string) (string, bool) {
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", false
	}
	return domain, true
}

// WordTokenizer splits text into lowercased word tokens. Runs of letters and
// digits form words; '.', '-' and '@' are kept inside a run so that
// hostnames and addresses survive as one raw token and can be normalized
// through the suffix list afterwards.
type WordTokenizer struct {
	runes []rune
	pos   int
	psl   SuffixList
}

func NewWordTokenizer(text string, psl SuffixList) *WordTokenizer {
	return &WordTokenizer{
		runes: []rune(text),
		pos:   0,
		psl:   psl,
	}
}

func (t *WordTokenizer) Next() (string, bool) {
	for t.pos < len(t.runes) {
		for t.pos < len(t.runes) && !isWordRune(t.runes[t.pos]) {
			t.pos++
		}
		start := t.pos
		for t.pos < len(t.runes) && isWordRune(t.runes[t.pos]) {
			t.pos++
		}
		if t.pos == start {
			continue
		}

		token := normalize(strings.ToLower(string(t.runes[start:t.pos])), t.psl)
		if token != "" {
			return token, true
		}
	}

	return "", false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '@'
}

// normalize turns a raw lowercased run into the token that is actually
// hashed: registrable domain for host-like runs, a class marker for pure
// numbers, the stripped word otherwise. Returns "" when nothing useful
// remains.
func normalize(raw string, psl SuffixList) string {
	raw = strings.Trim(raw, ".-@")
	if raw == "" || len(raw) > MaxTokenLength {
		return ""
	}

	if at := strings.LastIndexByte(raw, '@'); at >= 0 {
		// Address: the domain is the stable part.
		raw = raw[at+1:]
		if raw == "" {
			return ""
		}
	}

	if strings.ContainsRune(raw, '.') && psl != nil {
		if domain, ok := psl.RegistrableDomain(raw); ok {
			return domain
		}
	}

	raw = strings.Map(func(r rune) rune {
		if r == '.' || r == '-' || r == '@' {
			return -1
		}
		return r
	}, raw)
	if raw == "" {
		return ""
	}

	if isNumeric(raw) {
		return NumberToken
	}

	return raw
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
