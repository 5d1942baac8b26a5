// Package textstyle provides lightweight text helpers that keep generated
// messages feeling human: no labels, casual phrasing, low repetition, clean
// punctuation.
package textstyle

import (
	"regexp"
	"strings"

	"github.com/talgya/conciergesim/internal/entropy"
)

// NaturalList joins items the way a person would: "A", "A and B",
// "A, B, and C". Empty items are skipped; an empty list yields "".
func NaturalList(items []string, conj string) string {
	var kept []string
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			kept = append(kept, s)
		}
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	case 2:
		return kept[0] + " " + conj + " " + kept[1]
	default:
		return strings.Join(kept[:len(kept)-1], ", ") + ", " + conj + " " + kept[len(kept)-1]
	}
}

// Pre-compiled regular expressions shared by the cleanup passes.
var (
	reLabelyBits = regexp.MustCompile(`(?i)\b(` +
		`keeping an eye on|watch[-\s]?outs|flags|risks?|` +
		`plan|next|summary|interpretation|options|` +
		`on labs/vitals|on symptoms` +
		`)\s*:\s*`)
	reMultiSpace      = regexp.MustCompile(`\s{2,}`)
	reMultiDots       = regexp.MustCompile(`\.{2,}`)
	reBangQDot        = regexp.MustCompile(`([?!])\s*\.`)
	reSpaceBeforePunc = regexp.MustCompile(`\s+([,.;!?])`)
	reMergePunc       = regexp.MustCompile(`([,;])([^\s])`)
	reTrailColonSemi  = regexp.MustCompile(`(?m)[:;]\s*$`)
	reCapFirst        = regexp.MustCompile(`^(\s*)([a-z])`)
	reLeadingI        = regexp.MustCompile(`(?i)^\s*i\s+`)
	reTrailPeriod     = regexp.MustCompile(`\s*\.\s*$`)
	reDupeEndPunc     = regexp.MustCompile(`[.?!…]+$`)
)

// ToSentence normalizes a fragment into a single clean sentence: outer
// whitespace and decorative quoting stripped, internal colon labels removed,
// exactly one terminal mark, and never a doubled terminal like "?.".
func ToSentence(s string) string {
	if s == "" {
		return ""
	}
	t := strings.Trim(strings.TrimSpace(s), "\"'“”‘’ ")
	t = reLabelyBits.ReplaceAllString(t, "$1 ")
	t = reMultiSpace.ReplaceAllString(t, " ")

	end := "."
	if strings.HasSuffix(t, "?") || strings.HasSuffix(t, "!") || strings.HasSuffix(t, ".") {
		end = t[len(t)-1:]
		t = strings.TrimRight(t[:len(t)-1], " ")
	}

	out := t + end
	out = strings.ReplaceAll(out, "?.", "?")
	out = strings.ReplaceAll(out, "!.", "!")
	out = reBangQDot.ReplaceAllString(out, "$1")
	return out
}

// MapActions turns action fragments into a single natural sentence without
// labels, e.g. "I blocked your workout slots and looped Sarah to confirm
// timings".
func MapActions(actions []string) string {
	var bits []string
	for _, a := range actions {
		s := strings.TrimSpace(a)
		if s == "" {
			continue
		}
		s = reLeadingI.ReplaceAllString(s, "")
		s = reTrailPeriod.ReplaceAllString(s, "")
		bits = append(bits, s)
	}
	if len(bits) == 0 {
		return "No actions from me right now"
	}
	return "I " + NaturalList(bits, "and")
}

// normalizeForDupe lowercases, trims, and strips terminal punctuation so
// near-identical lines collide.
func normalizeForDupe(line string) string {
	s := strings.ToLower(strings.TrimSpace(line))
	s = strings.TrimSpace(reDupeEndPunc.ReplaceAllString(s, ""))
	return reMultiSpace.ReplaceAllString(s, " ")
}

// DedupeLines removes lines that are identical after lowercasing and
// terminal-punctuation stripping. First occurrence wins; order is preserved.
func DedupeLines(lines []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ln := range lines {
		key := normalizeForDupe(ln)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ln)
	}
	return out
}

// CapFirstAlpha upper-cases the first alphabetic character of a line.
func CapFirstAlpha(line string) string {
	return reCapFirst.ReplaceAllStringFunc(line, strings.ToUpper)
}

// EnsureTerminal appends a period when a line has no terminal mark.
func EnsureTerminal(line string) string {
	if line == "" {
		return line
	}
	switch line[len(line)-1] {
	case '.', '?', '!':
		return line
	}
	return line + "."
}

// Tidy is the paragraph cleanup pass: it collapses whitespace runs, merges
// "?." / "!." sequences, converts a dangling trailing colon or semicolon to
// a period, capitalizes the first alphabetic character of each line, and
// de-duplicates lines. Running it twice is a no-op.
func Tidy(text string) string {
	if text == "" {
		return text
	}
	t := strings.TrimSpace(text)

	t = strings.ReplaceAll(t, "?.", "?")
	t = strings.ReplaceAll(t, "!.", "!")
	t = reBangQDot.ReplaceAllString(t, "$1")
	t = reMultiDots.ReplaceAllString(t, ".")
	t = reMultiSpace.ReplaceAllString(t, " ")
	t = reSpaceBeforePunc.ReplaceAllString(t, "$1")
	t = reMergePunc.ReplaceAllString(t, "$1 $2")
	t = reTrailColonSemi.ReplaceAllString(t, ".")

	var lines []string
	for _, ln := range strings.Split(t, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		lines = append(lines, CapFirstAlpha(ln))
	}
	lines = DedupeLines(lines)
	return strings.Join(lines, "\n")
}

// Finalize drops empty lines, de-duplicates, and tidies the result. Used by
// the deterministic templates before a body leaves the engine.
func Finalize(lines []string) string {
	var kept []string
	for _, ln := range lines {
		if strings.TrimSpace(ln) != "" {
			kept = append(kept, ln)
		}
	}
	kept = DedupeLines(kept)
	return Tidy(strings.Join(kept, "\n"))
}

// Report-line variation pools.
var (
	posTemplates = []string{
		"Good news—%s",
		"Quick positive—%s",
		"On the plus side—%s",
		"Nice win—%s",
	}
	flagTemplates = []string{
		"Still watching %s",
		"One thing to watch—%s",
		"Worth flagging—%s",
		"Still a risk—%s",
	}
	focusTemplates = []string{
		"This week let's focus on %s",
		"For this week, let's target %s",
		"Next week, keep attention on %s",
		"Let's prioritize %s",
	}
)

// mergeShortLines joins very short fragments so the chat doesn't feel
// bullet-y.
func mergeShortLines(parts []string) []string {
	var out, buf []string
	for _, p := range parts {
		if len(p) < 28 {
			buf = append(buf, p)
			continue
		}
		if len(buf) > 0 {
			out = append(out, strings.Join(buf, " "))
			buf = nil
		}
		out = append(out, p)
	}
	if len(buf) > 0 {
		out = append(out, strings.Join(buf, " "))
	}
	return out
}

// WeaveReport produces 2-3 compact, label-free sentences from wins, flags,
// and focus items. No headings, no colons, casual chat tone.
func WeaveReport(src *entropy.Source, wins, flags, focus []string) []string {
	var lines []string

	if len(wins) > 0 {
		w := NaturalList(wins, "and")
		lines = append(lines, ToSentence(sprintf1(entropy.Pick(src, posTemplates), w)))
	} else {
		lines = append(lines, ToSentence("No big wins this week"))
	}

	if len(flags) > 0 {
		f := NaturalList(flags, "and")
		lines = append(lines, ToSentence(sprintf1(entropy.Pick(src, flagTemplates), f)))
	}

	if len(focus) > 0 {
		fo := NaturalList(focus, "and")
		lines = append(lines, ToSentence(sprintf1(entropy.Pick(src, focusTemplates), fo)))
	}

	return mergeShortLines(lines)
}

func sprintf1(format, arg string) string {
	return strings.Replace(format, "%s", arg, 1)
}
