// Deterministic sentence templates. These are header-free and avoid labels
// and bullets; the enhancement delegate (when enabled) only paraphrases what
// they produce, so they must stand on their own.
package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/talgya/conciergesim/internal/entropy"
	"github.com/talgya/conciergesim/internal/textstyle"
)

// greetChance is the probability a team message opens with a greeting.
const greetChance = 0.18

var (
	acks   = []string{"Got it.", "Understood.", "Noted.", "Okay."}
	greets = []string{"Hi %s,", "Hey %s,", "Hello %s,"}

	confirms = []string{
		"okay to proceed?",
		"want me to lock that in?",
		"good to go?",
		"sound okay?",
		"shall I confirm?",
	}

	obsLeads = []string{
		"I noticed",
		"I'm seeing",
		"Looks like",
		"Your log shows",
		"Noticed",
		"From this week,",
	}

	tryLeads = []string{
		"Let's try",
		"How about we",
		"Plan for this week:",
		"Let's go with",
		"Next up,",
	}

	medSymptomLeads = []string{
		"I'm noting",
		"Noted",
		"From your update,",
		"On symptoms,",
	}

	medNumsLeads = []string{
		"Current numbers are",
		"Latest numbers:",
		"On labs/vitals:",
	}

	medPlanLeads = []string{
		"Let's stick with",
		"Plan:",
		"We'll continue with",
		"No changes —",
	}

	travelLeads = []string{
		"For %s, the plan is",
		"For %s, let's go with",
		"%s: plan is",
	}

	resultsLeads = []string{
		"Results are in —",
		"Got the results —",
		"Panel summary —",
	}

	interpretLeads = []string{
		"This means",
		"My read:",
		"In short,",
	}

	optionsLeads = []string{
		"Options include",
		"We can go a few ways:",
		"We could",
		"Paths:",
	}

	wearHypLeads = []string{
		"Likely",
		"Probably",
		"My hunch is",
		"Signals point to",
	}

	wearNextLeads = []string{
		"Let's do",
		"Plan:",
		"Next:",
		"Try",
	}
)

func maybeGreet(src *entropy.Source, name string) string {
	if src.Float64() < greetChance {
		return fmt.Sprintf(entropy.Pick(src, greets), name)
	}
	return ""
}

func weeklyReportText(src *entropy.Source, wins, flags, focus, actions []string, name string) string {
	var lines []string
	if g := maybeGreet(src, name); g != "" {
		lines = append(lines, g)
	}

	lines = append(lines, textstyle.WeaveReport(src, wins, flags, focus)...)

	if len(actions) > 0 {
		human := textstyle.MapActions(actions)
		confirm := entropy.Pick(src, confirms)
		lines = append(lines, textstyle.ToSentence(human+" — "+confirm))
	} else {
		lines = append(lines, "Nothing needed from you right now.")
	}

	return textstyle.Finalize(lines)
}

func exerciseUpdateText(src *entropy.Source, progress, planChange, cues, name string) string {
	var lines []string
	if g := maybeGreet(src, name); g != "" {
		lines = append(lines, g)
	}

	lines = append(lines,
		textstyle.ToSentence(progress),
		textstyle.ToSentence("For the next block, "+planChange),
		textstyle.ToSentence("Keep an eye on "+cues),
		entropy.Pick(src, []string{"Good to go?", "Sound okay?", "Comfortable with that?"}),
	)
	return textstyle.Finalize(lines)
}

func medicalCheckinText(src *entropy.Source, symptoms, review, plan, name string) string {
	var lines []string
	if g := maybeGreet(src, name); g != "" {
		lines = append(lines, g)
	}

	lines = append(lines,
		textstyle.ToSentence(entropy.Pick(src, medSymptomLeads)+" "+symptoms),
		textstyle.ToSentence(entropy.Pick(src, medNumsLeads)+" "+review),
		textstyle.ToSentence(entropy.Pick(src, medPlanLeads)+" "+plan),
	)
	return textstyle.Finalize(lines)
}

func nutritionUpdateText(src *entropy.Source, observation, recommendation, name string) string {
	var lines []string
	if g := maybeGreet(src, name); g != "" {
		lines = append(lines, g)
	}

	lines = append(lines,
		textstyle.ToSentence(entropy.Pick(src, obsLeads)+" "+observation),
		textstyle.ToSentence(entropy.Pick(src, tryLeads)+" "+recommendation),
	)
	return textstyle.Finalize(lines)
}

func travelAdaptationText(src *entropy.Source, dest, plan, name string) string {
	var lines []string
	if g := maybeGreet(src, name); g != "" {
		lines = append(lines, g)
	}

	lead := fmt.Sprintf(entropy.Pick(src, travelLeads), dest)
	lines = append(lines, textstyle.ToSentence(lead+" "+plan))
	return textstyle.Finalize(lines)
}

func diagnosticsScheduleText(src *entropy.Source, scope, name string) string {
	var lines []string
	if g := maybeGreet(src, name); g != "" {
		lines = append(lines, g)
	}

	lines = append(lines,
		textstyle.ToSentence("I’m booking this panel — "+scope),
		"Fasting instructions are in your inbox.",
	)
	return textstyle.Finalize(lines)
}

func diagnosticsResultsText(src *entropy.Source, summary, interpretation string, options []string, name string) string {
	var lines []string
	if g := maybeGreet(src, name); g != "" {
		lines = append(lines, g)
	}

	lines = append(lines,
		textstyle.ToSentence(entropy.Pick(src, resultsLeads)+" "+summary),
		textstyle.ToSentence(entropy.Pick(src, interpretLeads)+" "+interpretation),
	)
	if len(options) > 0 {
		lines = append(lines, textstyle.ToSentence(entropy.Pick(src, optionsLeads)+" "+textstyle.NaturalList(options, "or")))
	}
	return textstyle.Finalize(lines)
}

func wearableAnomalyText(src *entropy.Source, brief, hypothesis, nextStep, name string) string {
	var lines []string
	if g := maybeGreet(src, name); g != "" {
		lines = append(lines, g)
	}

	lines = append(lines,
		textstyle.ToSentence(brief),
		textstyle.ToSentence(entropy.Pick(src, wearHypLeads)+" "+hypothesis),
		textstyle.ToSentence(entropy.Pick(src, wearNextLeads)+" "+nextStep),
	)
	return textstyle.Finalize(lines)
}

var reTrailingDots = regexp.MustCompile(`\.{2,}$`)

func memberCuriosityText(src *entropy.Source, topic, ask string) string {
	variants := []string{
		fmt.Sprintf("Quick one: %s (%s).", ask, topic),
		fmt.Sprintf("Saw something on %s — %s.", topic, ask),
		fmt.Sprintf("%s — re %s.", ask, topic),
		fmt.Sprintf("Curious about %s. %s.", topic, ask),
		fmt.Sprintf("%s (%s).", ask, topic),
		fmt.Sprintf("Reading about %s. %s", topic, ask),
		fmt.Sprintf("Any quick context on %s? %s", topic, ask),
		fmt.Sprintf("%s on %s?", ask, topic),
	}
	line := strings.TrimSpace(entropy.Pick(src, variants))
	return reTrailingDots.ReplaceAllString(line, ".")
}

func ackText(src *entropy.Source) string {
	return entropy.Pick(src, acks)
}
