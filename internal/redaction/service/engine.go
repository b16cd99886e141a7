// Package service implements PII redaction over plain text and structured payloads.
package service

import (
	"regexp"
	"sort"
	"strings"

	redactionDomain "github.com/allisson/securetransfer/internal/redaction/domain"
)

var (
	emailPattern = regexp.MustCompile(`[A-Z0-9a-z._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d{7,15}`)
	namePattern  = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
)

// pass replaces every match of re with sentinel, scanning right to left so earlier
// offsets stay valid.
type pass struct {
	re       *regexp.Regexp
	sentinel string
	skip     func(text string, start int) bool
}

func (p pass) apply(text string, found []string) (string, []string) {
	locs := p.re.FindAllStringIndex(text, -1)
	for i := len(locs) - 1; i >= 0; i-- {
		start, end := locs[i][0], locs[i][1]
		if p.skip != nil && p.skip(text, start) {
			continue
		}
		found = append(found, text[start:end])
		text = text[:start] + p.sentinel + text[end:]
	}
	return text, found
}

var (
	emailPass = pass{re: emailPattern, sentinel: redactionDomain.SentinelEmail}
	phonePass = pass{re: phonePattern, sentinel: redactionDomain.SentinelPhone}
	namePass  = pass{re: namePattern, sentinel: redactionDomain.SentinelName, skip: sentenceStart}
)

// sentenceStart reports whether the word at start opens the text or a sentence.
// Those words are capitalized by grammar and are not treated as names.
func sentenceStart(text string, start int) bool {
	prefix := strings.TrimRight(text[:start], " \t\r\n\"'(")
	if prefix == "" {
		return true
	}
	switch prefix[len(prefix)-1] {
	case '.', '!', '?', ':', '\n':
		return true
	}
	return false
}

// Engine runs the email, phone and name passes in that fixed order, each over the
// output of the previous one.
//
// The email and phone passes are idempotent. The name pass is a heuristic: any
// capitalized word that does not open a sentence is replaced, and running Redact
// twice over arbitrary text can still find new spans when the first run exposed a
// capitalized word at a new sentence boundary.
type Engine struct{}

// NewEngine creates a redaction Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Redact applies all three passes. It never fails.
func (e *Engine) Redact(text string) redactionDomain.Result {
	found := []string{}
	for _, p := range []pass{emailPass, phonePass, namePass} {
		text, found = p.apply(text, found)
	}
	return redactionDomain.Result{RedactedText: text, FoundSpans: found}
}

// RedactEmails applies only the email pass.
func (e *Engine) RedactEmails(text string) redactionDomain.Result {
	text, found := emailPass.apply(text, []string{})
	return redactionDomain.Result{RedactedText: text, FoundSpans: found}
}

// RedactPhones applies only the phone pass.
func (e *Engine) RedactPhones(text string) redactionDomain.Result {
	text, found := phonePass.apply(text, []string{})
	return redactionDomain.Result{RedactedText: text, FoundSpans: found}
}

// RedactFields redacts every string value of fields and unions the spans. Other
// values pass through unchanged. Keys are visited in sorted order so the span order
// is deterministic. The input map is not modified.
func (e *Engine) RedactFields(fields map[string]any) redactionDomain.FieldsResult {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(fields))
	found := []string{}
	for _, k := range keys {
		s, ok := fields[k].(string)
		if !ok {
			out[k] = fields[k]
			continue
		}
		r := e.Redact(s)
		out[k] = r.RedactedText
		found = append(found, r.FoundSpans...)
	}
	return redactionDomain.FieldsResult{Fields: out, FoundSpans: found}
}
