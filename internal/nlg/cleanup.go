// Post-processing for model output: strip header echoes and labels, vary
// repeated openers, dedupe, and polish punctuation. All passes preserve the
// concrete facts; they only change framing.
package nlg

import (
	"regexp"
	"strings"

	"github.com/talgya/conciergesim/internal/entropy"
	"github.com/talgya/conciergesim/internal/textstyle"
)

var (
	reHeaderEchoes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*weekly report\s*:?\s*`),
		regexp.MustCompile(`(?i)^\s*medical check-?in\s*:?\s*`),
		regexp.MustCompile(`(?i)^\s*nutrition update\s*:?\s*`),
		regexp.MustCompile(`(?i)^\s*exercise update\s*:?\s*`),
		regexp.MustCompile(`(?i)^\s*travel adaptation.*?:\s*`),
		regexp.MustCompile(`(?i)^\s*diagnostics results\s*:?\s*`),
		regexp.MustCompile(`(?i)^\s*ordering your diagnostic panel\s*:?\s*`),
		regexp.MustCompile(`(?i)^\s*wearable note\s*:?\s*`),
	}

	reRolePrefix = regexp.MustCompile(`(?i)^(ruby|dr\.?\s*warren|advik|carla|rachel|neel)\s*[:\-–]\s*`)
	reBullets    = regexp.MustCompile(`(?m)^\s*-\s*`)

	// Label fragments the model tends to re-introduce despite instructions.
	labelHeads = []string{
		`watch[-\s]?outs`, `flags`, `risks?`,
		`focus for next week`, `what we['’]ll prioritize`, `next[-\s]?week focus`,
		`actions?`, `observation`, `recommendation`,
		`symptoms?`, `review`, `plan(?: for (?:next|this) week)?`, `form cues?`,
		`hypothesis`, `next`, `summary`, `interpretation`, `options?`,
		`from your log`, `training update`, `my read`, `panel summary`,
		`on labs/vitals`, `on symptoms`,
		`on the plus side`, `i['’]m keeping an eye on`, `one thing to watch`, `worth flagging`,
		`latest numbers`,
	}
	reLabelHeads []*regexp.Regexp

	reLabsSymptoms  = regexp.MustCompile(`(?mi)^\s*on\s+(labs/vitals|symptoms)\s*[:,]\s*`)
	reMemberGreet   = regexp.MustCompile(`(?i)^\s*(hi|hello|hey)\s+rohan\s*[,–-]*\s*`)
	reBangQDot      = regexp.MustCompile(`([?!])\s*\.`)
	reMultiDots     = regexp.MustCompile(`\.\.+`)
	reMultiSpaces   = regexp.MustCompile(`\s{2,}`)
	reTrailColon    = regexp.MustCompile(`(?m)[:;]\s*$`)
	reTripleNewline = regexp.MustCompile(`\n{3,}`)

	reFusedStick = regexp.MustCompile(`(?i)let[’']s stick with (?:continue|stay the course)\b`)
	reFusedKeep  = regexp.MustCompile(`(?i)let[’']s go with keep\b`)
	reFusedAsk   = regexp.MustCompile(`(?i)let[’']s go with ask\b`)
	reAttention  = regexp.MustCompile(`(?i)put attention on\b`)

	reOpenLikely  = regexp.MustCompile(`(?i)^likely\s`)
	reOpenLetsDo  = regexp.MustCompile(`(?i)^let['’]s do\s`)
	reOpenNumbers = regexp.MustCompile(`(?i)^current numbers are\s`)
	reOpenResults = regexp.MustCompile(`(?i)^results are in\s?[—\-:]\s*`)
	reOpenNoting  = regexp.MustCompile(`(?i)^i['’]m noting\s`)
)

func init() {
	for _, lh := range labelHeads {
		reLabelHeads = append(reLabelHeads, regexp.MustCompile(`(?mi)^\s*`+lh+`\s*[:—\-]\s*`))
	}
}

// sanitize strips accidental header echoes, role prefixes, bullets, and
// label fragments from raw model output, then normalizes punctuation.
func sanitize(text, role string) string {
	s := strings.TrimSpace(text)

	for _, re := range reHeaderEchoes {
		s = re.ReplaceAllString(s, "")
	}
	s = reRolePrefix.ReplaceAllString(s, "")
	s = reBullets.ReplaceAllString(s, "")
	for _, re := range reLabelHeads {
		s = re.ReplaceAllString(s, "")
	}
	s = reLabsSymptoms.ReplaceAllString(s, "")

	// The member never greets themself.
	if isMemberRole(role) {
		s = reMemberGreet.ReplaceAllString(s, "")
	}

	s = strings.ReplaceAll(s, "?.", "?")
	s = strings.ReplaceAll(s, "!.", "!")
	s = reBangQDot.ReplaceAllString(s, "$1")
	s = reMultiDots.ReplaceAllString(s, ".")
	s = reMultiSpaces.ReplaceAllString(s, " ")
	s = reTrailColon.ReplaceAllString(s, ".")
	s = reTripleNewline.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// varyOpeners swaps a handful of recognized repetitive openings for synonym
// openers at a fixed substitution probability, so a long run does not read
// as a template being stamped out.
func (e *Engine) varyOpeners(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		s := strings.TrimSpace(ln)

		if reOpenLikely.MatchString(s) && e.src.Float64() < 0.6 {
			s = reOpenLikely.ReplaceAllString(s, entropy.Pick(e.src, []string{"Probably ", "My hunch is ", "Signals point to "}))
		}
		if reOpenLetsDo.MatchString(s) && e.src.Float64() < 0.6 {
			s = reOpenLetsDo.ReplaceAllString(s, entropy.Pick(e.src, []string{"Let’s try ", "Let’s go with "}))
		}
		if reOpenNumbers.MatchString(s) && e.src.Float64() < 0.6 {
			s = reOpenNumbers.ReplaceAllString(s, entropy.Pick(e.src, []string{"Latest numbers: ", "Right now: "}))
		}
		if reOpenResults.MatchString(s) && e.src.Float64() < 0.6 {
			s = reOpenResults.ReplaceAllString(s, entropy.Pick(e.src, []string{"Got the results — ", "Panel summary — "}))
		}
		if reOpenNoting.MatchString(s) && e.src.Float64() < 0.5 {
			s = reOpenNoting.ReplaceAllString(s, entropy.Pick(e.src, []string{"Noted ", "From your update, "}))
		}

		out = append(out, s)
	}
	return out
}

// finalizeMessage runs the full cleanup pipeline on model output: split,
// dedupe, vary openers, dedupe again (variation can create collisions),
// tidy, then fix fused phrases the paraphraser produces.
func (e *Engine) finalizeMessage(text string) string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 {
		return strings.TrimSpace(text)
	}

	lines = textstyle.DedupeLines(lines)
	lines = e.varyOpeners(lines)
	lines = textstyle.DedupeLines(lines)

	out := textstyle.Tidy(strings.Join(lines, "\n"))

	var ensured []string
	for _, ln := range strings.Split(out, "\n") {
		ensured = append(ensured, textstyle.EnsureTerminal(ln))
	}
	out = strings.Join(ensured, "\n")

	out = reFusedStick.ReplaceAllString(out, "Let’s stay the course")
	out = reFusedKeep.ReplaceAllString(out, "Let’s keep")
	out = reFusedAsk.ReplaceAllString(out, "Ask")
	out = reAttention.ReplaceAllString(out, "focus on")

	out = strings.ReplaceAll(out, "?.", "?")
	out = strings.ReplaceAll(out, "!.", "!")
	out = reBangQDot.ReplaceAllString(out, "$1")

	return out
}
