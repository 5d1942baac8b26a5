package content

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/talgya/conciergesim/internal/entropy"
	"github.com/talgya/conciergesim/internal/interventions"
	"github.com/talgya/conciergesim/internal/nlg"
	"github.com/talgya/conciergesim/internal/state"
	"github.com/talgya/conciergesim/internal/textstyle"
)

// Variation pools keep repeated event kinds from reading identically across
// a long run.
var (
	wearableBriefs = []string{
		"Night HRV dipped and RHR ticked up vs last week",
		"HRV was lower last night and resting HR ran higher",
		"Slight drop in HRV with a bump in resting heart rate",
		"Recovery looked a bit suppressed (lower HRV, higher RHR)",
	}
	wearableHypoTravel = []string{
		"late meal plus the time-zone shift",
		"body clock mismatch from travel",
		"sleep timing plus a heavier dinner on arrival",
	}
	wearableHypoHome = []string{
		"late caffeine with a stressful day",
		"under-recovery after back-to-back work days",
		"short sleep and evening coffee",
	}
	wearableNexts = []string{
		"earlier dinner, 10-min wind-down, and morning light tomorrow",
		"a morning walk in daylight and keep dinner earlier tonight",
		"10 minutes of breathing before bed and morning light exposure",
	}

	nutritionObsHome = []string{
		"coffee keeps drifting past 1 pm and dinners are running late",
		"caffeine window is sliding and dinners have been later than ideal",
		"afternoon coffee shows up, and dinner timing’s a bit late",
	}
	nutritionRecoHome = []string{
		"keep coffee to the morning, bring dinner earlier, and add two oily-fish meals this week",
		"tighten caffeine to mornings, eat dinner earlier, and include 2 fish meals",
		"morning-only coffee, earlier dinners, and hit two oily-fish meals this week",
	}
	nutritionObsTravel = []string{
		"restaurant meals look heavier on sodium and refined carbs",
		"hotel food has been saltier with more refined carbs",
	}
	nutritionRecoTravel = []string{
		"ask for low-sodium prep, choose grilled fish + steamed greens, and skip late desserts",
		"request lighter seasoning, pick grilled proteins with greens, and avoid late desserts",
	}

	focusCore = []string{
		"morning light and earlier caffeine cutoff",
		"Zone-2 plus mobility consistency",
	}
	focusExtras = []string{
		"earlier dinner on work-heavy days",
		"a 10-minute wind-down before bed",
		"hydration + electrolytes on travel days",
	}
	conciergeActions = []string{
		"blocked your workout slots",
		"sent the updated menu brief to your home cook",
		"looped Sarah to confirm timings",
		"nudged the gym to hold a squat rack slot",
	}

	cuesPool = []string{
		"neutral spine and controlled eccentrics",
		"brace before you move; slow eccentrics",
		"tall posture, ribs down, smooth tempo",
	}

	confirmVariants = []string{
		"okay to proceed?",
		"want me to lock that in?",
		"good to go?",
		"sound okay?",
	}

	paAckOptions = []string{
		"Calendar invites sent; lab location shared.",
		"Diagnostics confirmed; QR code is in your email.",
		"Travel holds added; workout times adjusted in your calendar.",
		"Reminder set and shared with Sarah.",
		"All set on my side. Shout if you need anything changed.",
	}

	curiosityTopics = []string{
		"ApoB vs LDL-C",
		"Creatine and cognition",
		"Jet lag meal timing",
		"Strength training and BP",
		"Fish oil purity standards",
		"Zone-2 heart-rate zones",
		"Mediterranean vs DASH diet",
	}
	curiosityAsks = []string{
		"Quick take?",
		"Worth trying?",
		"How does this apply to me?",
		"Any risk I should know?",
		"What’s the simplest version?",
	}
)

// GenerationContext holds evolving context across weeks for content realism.
// Owned exclusively by one Engine instance; there are no package-level
// globals.
type GenerationContext struct {
	LastWeekWin         bool
	CumulativePlanHours float64
	ExercisePhase       int // increments every 2 weeks

	// Most recent opener per role, used to bias variation away from
	// repeating the same opening.
	LastOpeners map[string]string
}

type recentKey struct {
	sender string
	kind   string
}

// Engine converts events plus state into natural messages and applies the
// weekly adherence effects.
type Engine struct {
	src     *entropy.Source
	nlg     *nlg.Engine // nil when enhancement is disabled
	catalog []interventions.Intervention
	ctx     GenerationContext

	memberName string

	// Last emission time per (sender, kind), for near-duplicate suppression.
	recent map[recentKey]time.Time
}

// NewEngine creates a content engine bound to the run's random source and
// an optional enhancement delegate.
func NewEngine(src *entropy.Source, enhancer *nlg.Engine, memberName string) *Engine {
	return &Engine{
		src:        src,
		nlg:        enhancer,
		catalog:    interventions.Catalog(),
		ctx:        GenerationContext{LastOpeners: make(map[string]string)},
		memberName: memberName,
		recent:     make(map[recentKey]time.Time),
	}
}

// Context exposes the engine's generation context for inspection.
func (e *Engine) Context() GenerationContext {
	return e.ctx
}

// ---- week lifecycle --------------------------------------------------------

// BeginWeek applies one weekly state transition: adherence sampling and
// intervention effects, the travel penalty when applicable, noise, clamping,
// and the win flag for next week's adherence bonus. Returns the
// per-intervention adherence outcomes.
func (e *Engine) BeginWeek(st *state.Biomarkers, travel, busy bool) map[string]bool {
	weeklyHours := interventions.TotalWeeklyHours(e.catalog)
	e.ctx.CumulativePlanHours += weeklyHours
	const paSupport = true
	adherence := make(map[string]bool, len(e.catalog))

	for _, iv := range e.catalog {
		p := interventions.Probability(iv.BaseAdherence, travel, paSupport, busy, e.ctx.LastWeekWin, weeklyHours)
		did := e.src.Bernoulli(p)
		adherence[iv.Name] = did
		st.ApplyEffects(iv.Effects, did)
	}

	if travel {
		st.ApplyTravelPenalty()
	}

	st.AddNoise(e.src)
	st.Clamp()

	winCount := 0
	if st.HRVMs > 40.0 {
		winCount++
	}
	if st.ApoB < 105.0 {
		winCount++
	}
	if st.SystolicBP < 134.0 {
		winCount++
	}
	e.ctx.LastWeekWin = winCount >= 2

	return adherence
}

// ---- helpers ---------------------------------------------------------------

var (
	reGreetLine   = regexp.MustCompile(`(?i)^(hi|hello|hey)\s+\w+[,\-–]?$`)
	reOpenerWords = regexp.MustCompile(`[A-Za-z0-9']+`)
)

// extractOpener returns the first 3-4 lowercased words of the first
// non-greeting line, used as the role's "recent opener" hint.
func extractOpener(text string) string {
	const maxWords = 4
	for _, raw := range strings.Split(text, "\n") {
		s := strings.TrimSpace(raw)
		if s == "" || reGreetLine.MatchString(s) {
			continue
		}
		s = strings.Trim(s, "“”\"' ")
		words := reOpenerWords.FindAllString(strings.ToLower(s), -1)
		if len(words) == 0 {
			continue
		}
		if len(words) > maxWords {
			words = words[:maxWords]
		}
		return strings.Join(words, " ")
	}
	return ""
}

func (e *Engine) rememberOpener(roleKey, text string) {
	if op := extractOpener(text); op != "" {
		e.ctx.LastOpeners[roleKey] = op
	}
}

// enhance sends a draft through the delegate when configured; the body text
// always comes back tidied, and the draft survives any delegate failure.
func (e *Engine) enhance(roleKey, event, header, baseBody string, facts map[string]string) string {
	if e.nlg == nil {
		return textstyle.Tidy(baseBody)
	}
	if facts == nil {
		facts = make(map[string]string)
	}
	if avoid := e.ctx.LastOpeners[roleKey]; avoid != "" {
		facts["avoid_opening_like"] = avoid
	}
	text := e.nlg.Enhance(RoleName(roleKey), event, header, baseBody, facts)
	return textstyle.Tidy(text)
}

func (e *Engine) voice(key string) string {
	return voices[key].Tag
}

func (e *Engine) member() string {
	return voices["member"].Tag
}

func (e *Engine) styleHint() string {
	return entropy.Pick(e.src, []string{
		"warm & brief",
		"to-the-point",
		"casual but clear",
		"executive and concise",
		"friendly and practical",
		"matter-of-fact",
	})
}

// emit applies near-duplicate suppression: a message of the same
// (sender, kind) inside the window is dropped, returning an empty slice.
func (e *Engine) emit(msg Message, kind string, window time.Duration) []Message {
	key := recentKey{sender: msg.Sender, kind: kind}
	if last, ok := e.recent[key]; ok && msg.Timestamp.Sub(last) < window {
		return nil
	}
	e.recent[key] = msg.Timestamp
	return []Message{msg}
}

// ---- message builders ------------------------------------------------------

// WeeklyReport is Ruby's weekly summary, with an occasional plan-hours
// mention so it avoids a robotic cadence.
func (e *Engine) WeeklyReport(when time.Time, st *state.Biomarkers) []Message {
	snap := st.Snapshot()

	var wins, flags []string
	if snap.ApoB < 100.0 {
		wins = append(wins, fmt.Sprintf("ApoB trending down (%.1f)", snap.ApoB))
	}
	if snap.HRV > 42 {
		wins = append(wins, fmt.Sprintf("HRV improved (%.1f ms)", snap.HRV))
	}
	if snap.Sleep >= 6.5 {
		wins = append(wins, fmt.Sprintf("Sleep avg %.2f h", snap.Sleep))
	}
	if snap.SBP >= 130 || snap.DBP >= 85 {
		flags = append(flags, fmt.Sprintf("BP still elevated (%.1f/%.1f)", snap.SBP, snap.DBP))
	}
	if snap.HsCRP >= 1.5 {
		flags = append(flags, fmt.Sprintf("hsCRP %.2f", snap.HsCRP))
	}

	// Focus and actions vary week to week.
	focus := append(append([]string{}, focusCore...), entropy.Sample(e.src, focusExtras, 1)...)
	actions := entropy.Sample(e.src, conciergeActions, 2)
	if e.src.Float64() < 0.35 {
		var remaining []string
		for _, a := range conciergeActions {
			if a != actions[0] && a != actions[1] {
				remaining = append(remaining, a)
			}
		}
		actions = append(actions, entropy.Pick(e.src, remaining))
	}

	hoursDone := st.SampleWeeklyHours(e.src)
	hoursTarget := st.WeeklyHoursCommitted

	baseBody := weeklyReportText(e.src, wins, flags, focus, actions, e.memberName)
	if e.src.Float64() < 0.35 {
		baseBody += fmt.Sprintf("\nYou logged ~%.1fh this week; target is %.1fh. Let’s aim for ≥%.1fh next week.",
			hoursDone, hoursTarget, hoursTarget)
	}

	facts := map[string]string{
		"wins":            strings.Join(wins, "; "),
		"flags":           strings.Join(flags, "; "),
		"focus":           strings.Join(focus, "; "),
		"actions":         strings.Join(actions, "; "),
		"ApoB":            fmt.Sprintf("%.1f", snap.ApoB),
		"BP":              fmt.Sprintf("%.1f/%.1f", snap.SBP, snap.DBP),
		"HRV":             fmt.Sprintf("%.1f", snap.HRV),
		"Sleep(h)":        fmt.Sprintf("%.2f", snap.Sleep),
		"hours_completed": fmt.Sprintf("%.1f", hoursDone),
		"hours_target":    fmt.Sprintf("%.1f", hoursTarget),
		"style_hint":      e.styleHint(),
	}
	body := e.enhance("ruby", "weekly_report", "Weekly report:", baseBody, facts)
	msg := Message{Timestamp: when, Sender: e.voice("ruby"), Text: body, Meta: map[string]any{"kind": "weekly_report"}}
	emitted := e.emit(msg, "weekly_report", 4*time.Hour)
	if len(emitted) > 0 {
		e.rememberOpener("ruby", body)
	}
	return emitted
}

// ExerciseUpdate advances the exercise phase every other week and either
// progresses or holds the plan.
func (e *Engine) ExerciseUpdate(when time.Time, st *state.Biomarkers) []Message {
	e.ctx.ExercisePhase++
	phase := e.ctx.ExercisePhase

	change := e.src.Bernoulli(0.5)
	var planChange string
	if change {
		planChange = fmt.Sprintf(
			"move to phase %d with +1 set on compound lifts; keep RPE 7–8 "+
				"and switch to suitcase carries during travel if your back tightens", phase)
	} else {
		planChange = "keep the current progression for two more weeks and reassess"
	}

	cues := entropy.Pick(e.src, cuesPool)

	prevPhase := phase - 1
	if prevPhase < 0 {
		prevPhase = 0
	}
	baseBody := exerciseUpdateText(e.src,
		fmt.Sprintf("Phase %d went smoothly; no acute pain", prevPhase),
		planChange, cues, e.memberName)

	facts := map[string]string{
		"phase":       fmt.Sprintf("%d", phase),
		"RPE":         "7–8",
		"plan_change": planChange,
		"cues":        cues,
		"style_hint":  e.styleHint(),
	}
	body := e.enhance("rachel", "exercise_update", "Exercise update:", baseBody, facts)
	msg := Message{Timestamp: when, Sender: e.voice("rachel"), Text: body, Meta: map[string]any{"kind": "exercise_update"}}
	emitted := e.emit(msg, "exercise_update", 10*time.Hour)
	if len(emitted) > 0 {
		e.rememberOpener("rachel", body)
		if change {
			emitted[0].Meta["plan_change"] = true
		}
	}
	return emitted
}

// MedicalCheckin is Dr. Warren's fortnightly review of symptoms and numbers.
func (e *Engine) MedicalCheckin(when time.Time, st *state.Biomarkers) []Message {
	plan := entropy.Pick(e.src, []string{
		"stay the course for now; review at the next panel; hydrate and keep sodium balanced",
		"continue the current plan; we’ll review at the next panel; keep hydration and sodium steady",
		"no medication changes yet; revisit at the next panel; maintain hydration and sodium balance",
	})
	review := fmt.Sprintf("BP %.0f/%.0f, ApoB %.0f, hsCRP %.2f",
		st.SystolicBP, st.DiastolicBP, st.ApoB, st.HsCRP)
	baseBody := medicalCheckinText(e.src,
		"occasional lightheadedness on long meetings; sleep latency a bit better",
		review, plan, e.memberName)

	facts := map[string]string{
		"symptoms":   "lightheadedness improving; better sleep latency",
		"review":     fmt.Sprintf("%.0f/%.0f, ApoB %.0f, hsCRP %.2f", st.SystolicBP, st.DiastolicBP, st.ApoB, st.HsCRP),
		"ApoB":       fmt.Sprintf("%.0f", st.ApoB),
		"hsCRP":      fmt.Sprintf("%.2f", st.HsCRP),
		"style_hint": e.styleHint(),
	}
	body := e.enhance("dr_warren", "medical_checkin", "Medical check-in:", baseBody, facts)
	msg := Message{Timestamp: when, Sender: e.voice("dr_warren"), Text: body, Meta: map[string]any{"kind": "medical_checkin"}}
	emitted := e.emit(msg, "medical_checkin", 8*time.Hour)
	if len(emitted) > 0 {
		e.rememberOpener("dr_warren", body)
	}
	return emitted
}

// NutritionUpdate is Carla's observation + recommendation pair, with travel
// variants when the member is on the road.
func (e *Engine) NutritionUpdate(when time.Time, traveling bool) []Message {
	var observation, recommendation string
	if traveling {
		observation = entropy.Pick(e.src, nutritionObsTravel)
		recommendation = entropy.Pick(e.src, nutritionRecoTravel)
	} else {
		observation = entropy.Pick(e.src, nutritionObsHome)
		recommendation = entropy.Pick(e.src, nutritionRecoHome)
	}

	baseBody := nutritionUpdateText(e.src, observation, recommendation, e.memberName)
	facts := map[string]string{
		"observation":    observation,
		"recommendation": recommendation,
		"traveling":      fmt.Sprintf("%t", traveling),
		"style_hint":     e.styleHint(),
	}
	body := e.enhance("carla", "nutrition_update", "Nutrition update:", baseBody, facts)
	msg := Message{Timestamp: when, Sender: e.voice("carla"), Text: body, Meta: map[string]any{"kind": "nutrition_update"}}
	emitted := e.emit(msg, "nutrition_update", 12*time.Hour)
	if len(emitted) > 0 {
		e.rememberOpener("carla", body)
	}
	return emitted
}

// TravelAdaptation is Ruby's pre-travel plan for a destination week.
func (e *Engine) TravelAdaptation(when time.Time, dest string) []Message {
	plan := "on flight day, shift meal timing; get 10–15 min of morning light on arrival; " +
		"use hotel-gym swaps (DB rows, goblet squats, carries); hydrate with electrolytes"
	confirm := entropy.Pick(e.src, confirmVariants)
	baseBody := travelAdaptationText(e.src, dest, plan, e.memberName)
	baseBody += "\n" + textstyle.CapFirstAlpha(confirm)

	facts := map[string]string{
		"destination": dest,
		"plan":        plan,
		"style_hint":  e.styleHint(),
	}
	body := e.enhance("ruby", "travel_adaptation", "Travel adaptation", baseBody, facts)
	msg := Message{Timestamp: when, Sender: e.voice("ruby"), Text: body, Meta: map[string]any{"kind": "travel_adaptation"}}
	emitted := e.emit(msg, "travel_adaptation", 10*time.Hour)
	if len(emitted) > 0 {
		e.rememberOpener("ruby", body)
	}
	return emitted
}

// DiagnosticsSchedule orders the quarterly panel.
func (e *Engine) DiagnosticsSchedule(when time.Time) []Message {
	scope := "OGTT+insulin, ApoB/ApoA, Lp(a), FBC, LFT/KFT, hsCRP/ESR, thyroid panel, hormones, " +
		"micronutrients (incl. Omega-3), urinalysis, ECG/Echo/CIMT as indicated, DEXA"
	baseBody := diagnosticsScheduleText(e.src, scope, e.memberName)
	facts := map[string]string{
		"scope":      scope,
		"style_hint": e.styleHint(),
	}
	body := e.enhance("ruby", "diagnostics_schedule", "Ordering your diagnostic panel", baseBody, facts)
	msg := Message{Timestamp: when, Sender: e.voice("ruby"), Text: body, Meta: map[string]any{"kind": "diagnostics_schedule"}}
	emitted := e.emit(msg, "diagnostics_schedule", 24*time.Hour)
	if len(emitted) > 0 {
		e.rememberOpener("ruby", body)
	}
	return emitted
}

// DiagnosticsResults shares and interprets the panel results.
func (e *Engine) DiagnosticsResults(when time.Time, st *state.Biomarkers) []Message {
	snap := st.Snapshot()
	summary := fmt.Sprintf("ApoB %.1f, LDL %.1f, BP %.1f/%.1f, hsCRP %.2f",
		snap.ApoB, snap.LDLC, snap.SBP, snap.DBP, snap.HsCRP)
	interpretation := "improving but still above targets for ApoB and BP; inflammation modestly better"
	options := []string{
		"continue lifestyle emphasis for 12 weeks",
		"discuss lipid-lowering therapy (pros/cons)",
		"tighten sodium and earlier caffeine cutoff",
	}
	baseBody := diagnosticsResultsText(e.src, summary, interpretation, options, e.memberName)
	facts := map[string]string{
		"summary":        summary,
		"interpretation": interpretation,
		"options":        strings.Join(options, "; "),
		"ApoB":           fmt.Sprintf("%.1f", snap.ApoB),
		"LDL":            fmt.Sprintf("%.1f", snap.LDLC),
		"BP":             fmt.Sprintf("%.1f/%.1f", snap.SBP, snap.DBP),
		"hsCRP":          fmt.Sprintf("%.2f", snap.HsCRP),
		"style_hint":     e.styleHint(),
	}
	body := e.enhance("dr_warren", "diagnostics_results", "Diagnostics results", baseBody, facts)
	msg := Message{Timestamp: when, Sender: e.voice("dr_warren"), Text: body, Meta: map[string]any{"kind": "diagnostics_results"}}
	emitted := e.emit(msg, "diagnostics_results", 24*time.Hour)
	if len(emitted) > 0 {
		e.rememberOpener("dr_warren", body)
	}
	return emitted
}

// WearableAnomaly is Advik's brief + hypothesis + next step for a recovery
// dip.
func (e *Engine) WearableAnomaly(when time.Time, st *state.Biomarkers, travel bool) []Message {
	brief := entropy.Pick(e.src, wearableBriefs)
	var hypothesis string
	if travel {
		hypothesis = entropy.Pick(e.src, wearableHypoTravel)
	} else {
		hypothesis = entropy.Pick(e.src, wearableHypoHome)
	}
	nextStep := entropy.Pick(e.src, wearableNexts)
	baseBody := wearableAnomalyText(e.src, brief, hypothesis, nextStep, e.memberName)

	facts := map[string]string{
		"brief":      brief,
		"hypothesis": hypothesis,
		"next":       nextStep,
		"HRV":        fmt.Sprintf("%.1f", st.HRVMs),
		"RHR":        fmt.Sprintf("%.1f", st.RHRBpm),
		"travel":     fmt.Sprintf("%t", travel),
		"style_hint": e.styleHint(),
	}
	body := e.enhance("advik", "wearable_anomaly", "Wearable note", baseBody, facts)
	msg := Message{Timestamp: when, Sender: e.voice("advik"), Text: body, Meta: map[string]any{"kind": "wearable_anomaly"}}
	emitted := e.emit(msg, "wearable_anomaly", 10*time.Hour)
	if len(emitted) > 0 {
		e.rememberOpener("advik", body)
	}
	return emitted
}

// MemberCuriosity is a member-initiated question about something they read.
func (e *Engine) MemberCuriosity(when time.Time) []Message {
	text := memberCuriosityText(e.src, entropy.Pick(e.src, curiosityTopics), entropy.Pick(e.src, curiosityAsks))
	text = textstyle.Tidy(text)
	msg := Message{
		Timestamp:         when,
		Sender:            e.member(),
		Text:              text,
		InitiatedByMember: true,
		Meta:              map[string]any{"kind": "member_curiosity"},
	}
	return e.emit(msg, "member_curiosity", 4*time.Hour)
}

// PASchedulingAck is a short confirmation from the assistant role for
// scheduling and logistics.
func (e *Engine) PASchedulingAck(when time.Time) []Message {
	text := entropy.Pick(e.src, paAckOptions)
	msg := Message{Timestamp: when, Sender: e.voice("pa"), Text: text, Meta: map[string]any{"kind": "pa_ack"}}
	return e.emit(msg, "pa_ack", 8*time.Hour)
}

// MemberAck is a short acknowledgement from the member after a specialist
// reply. Not member-initiated; it responds to something the team sent.
func (e *Engine) MemberAck(when time.Time) []Message {
	msg := Message{
		Timestamp: when,
		Sender:    e.member(),
		Text:      ackText(e.src),
		Meta:      map[string]any{"kind": "member_ack"},
	}
	return e.emit(msg, "member_ack", 2*time.Hour)
}
