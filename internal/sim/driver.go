// Package sim is the run driver: it wires the clock, scheduler, state, and
// content engine together, processes the event timeline week by week, and
// exports the finished conversation.
package sim

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/talgya/conciergesim/internal/content"
	"github.com/talgya/conciergesim/internal/entropy"
	"github.com/talgya/conciergesim/internal/export"
	"github.com/talgya/conciergesim/internal/nlg"
	"github.com/talgya/conciergesim/internal/profile"
	"github.com/talgya/conciergesim/internal/scheduler"
	"github.com/talgya/conciergesim/internal/simclock"
	"github.com/talgya/conciergesim/internal/state"
	"github.com/talgya/conciergesim/internal/validate"
)

// firstName trims a full name to its leading token for greetings.
func firstName(full string) string {
	for i := 0; i < len(full); i++ {
		if full[i] == ' ' {
			return full[:i]
		}
	}
	return full
}

// Config is a fully resolved run configuration.
type Config struct {
	Seed        int64
	Start       time.Time
	Weeks       int
	OutputDir   string
	ArchivePath string // empty disables the SQLite archive
	NLG         nlg.Config
}

// Result summarizes a finished run.
type Result struct {
	Messages  []content.Message
	JSONLPath string
	TextPath  string
}

// Run executes a complete simulation: builds the timeline, walks it while
// applying weekly state updates, composes messages, validates the
// conversation, and writes the exports.
func Run(cfg Config) (*Result, error) {
	if cfg.Weeks <= 0 {
		return nil, fmt.Errorf("weeks must be positive, got %d", cfg.Weeks)
	}

	src := entropy.NewSource(cfg.Seed)
	clock := simclock.Clock{Start: cfg.Start, Loc: cfg.Start.Location()}
	travel := simclock.BuildTravelPlan(cfg.Weeks)

	enhancer := nlg.New(cfg.NLG, src)
	if enhancer.Enabled() {
		slog.Info("nlg enhancement active", "provider", cfg.NLG.Provider, "mode", cfg.NLG.Mode, "model", cfg.NLG.Model)
		enhancer.Warmup()
	}

	member := profile.Member()
	engine := content.NewEngine(src, enhancer, firstName(member.PreferredName))
	st := state.New()
	events := scheduler.BuildEvents(clock, travel, cfg.Weeks, src)

	slog.Info("run starting",
		"seed", cfg.Seed,
		"start", cfg.Start.Format("2006-01-02"),
		"weeks", cfg.Weeks,
		"events", len(events),
	)

	var messages []content.Message
	weekStarted := make(map[int]bool)
	startWeekday := cfg.Start.Weekday()

	for _, ev := range events {
		// The weekly state update fires exactly once per week, on the
		// first event landing on the week's first weekday between 08:00
		// and 12:59 local. A week with no event in that window never
		// updates.
		inWindow := ev.When.Weekday() == startWeekday && ev.When.Hour() >= 8 && ev.When.Hour() <= 12
		if inWindow && !weekStarted[ev.Week] {
			weekStarted[ev.Week] = true
			travelWeek := travel.IsTravelWeek(ev.Week)
			// Roughly every sixth week is a board-prep crunch.
			busy := ev.Week%6 == 0
			st.WeekIndex = ev.Week
			adherence := engine.BeginWeek(st, travelWeek, busy)
			adhered := 0
			for _, ok := range adherence {
				if ok {
					adhered++
				}
			}
			slog.Debug("week state updated",
				"week", ev.Week,
				"travel", travelWeek,
				"busy", busy,
				"adhered", adhered,
				"of", len(adherence),
			)
		}

		messages = append(messages, routeEvent(engine, st, travel, src, ev)...)
	}

	// Messages keep generation order. Follow-ups (expert replies, PA acks)
	// sit directly after the message that caused them, the way a chat reads,
	// even when a later event carries an earlier timestamp.

	if err := validate.Conversation(messages, cfg.Weeks); err != nil {
		return nil, err
	}

	res := &Result{Messages: messages}
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
		res.JSONLPath = filepath.Join(cfg.OutputDir, "conversation.jsonl")
		res.TextPath = filepath.Join(cfg.OutputDir, "conversation.txt")
		if err := export.WriteJSONL(res.JSONLPath, messages); err != nil {
			return nil, err
		}
		if err := export.WriteText(res.TextPath, messages); err != nil {
			return nil, err
		}
	}

	if cfg.ArchivePath != "" {
		if err := archiveRun(cfg, messages); err != nil {
			return nil, err
		}
	}

	slog.Info("run complete", "messages", len(messages))
	return res, nil
}

func archiveRun(cfg Config, messages []content.Message) error {
	arc, err := export.OpenArchive(cfg.ArchivePath)
	if err != nil {
		return err
	}
	defer arc.Close()

	if err := arc.SaveMessages(messages); err != nil {
		return fmt.Errorf("archive messages: %w", err)
	}
	if err := arc.SaveMeta("seed", fmt.Sprintf("%d", cfg.Seed)); err != nil {
		return fmt.Errorf("archive meta: %w", err)
	}
	if err := arc.SaveMeta("weeks", fmt.Sprintf("%d", cfg.Weeks)); err != nil {
		return fmt.Errorf("archive meta: %w", err)
	}
	if err := arc.SaveMeta("start", cfg.Start.Format("2006-01-02")); err != nil {
		return fmt.Errorf("archive meta: %w", err)
	}
	slog.Info("conversation archived", "path", cfg.ArchivePath, "messages", len(messages))
	return nil
}

// routeEvent dispatches one scheduled event to its message builder, plus any
// follow-up messages (PA confirmations, expert replies to member questions).
func routeEvent(engine *content.Engine, st *state.Biomarkers, travel simclock.TravelPlan, src *entropy.Source, ev scheduler.Event) []content.Message {
	traveling := travel.IsTravelWeek(ev.Week)

	switch ev.Kind {
	case scheduler.KindWeeklyReport:
		return engine.WeeklyReport(ev.When, st)

	case scheduler.KindExerciseUpdate:
		return engine.ExerciseUpdate(ev.When, st)

	case scheduler.KindMedicalCheckin:
		return engine.MedicalCheckin(ev.When, st)

	case scheduler.KindNutritionUpdate:
		return engine.NutritionUpdate(ev.When, traveling)

	case scheduler.KindTravelAdaptation:
		return engine.TravelAdaptation(ev.When, ev.Meta["dest"])

	case scheduler.KindDiagnosticsSchedule:
		msgs := engine.DiagnosticsSchedule(ev.When)
		if len(msgs) > 0 {
			msgs = append(msgs, engine.PASchedulingAck(ev.When.Add(20*time.Minute))...)
		}
		return msgs

	case scheduler.KindDiagnosticsResults:
		return engine.DiagnosticsResults(ev.When, st)

	case scheduler.KindWearableAnomaly:
		return engine.WearableAnomaly(ev.When, st, traveling)

	case scheduler.KindMemberCuriosity:
		msgs := engine.MemberCuriosity(ev.When)
		if len(msgs) > 0 {
			reply := curiosityReply(engine, st, src, ev.When.Add(15*time.Minute), traveling)
			msgs = append(msgs, reply...)
			if len(reply) > 0 && src.Bernoulli(0.3) {
				msgs = append(msgs, engine.MemberAck(ev.When.Add(25*time.Minute))...)
			}
		}
		return msgs
	}

	slog.Warn("unhandled event kind", "kind", ev.Kind, "week", ev.Week)
	return nil
}

// curiosityReply answers a member question with a short note from one of the
// specialists. All candidate replies are composed before one is chosen, so
// the stream of random draws stays identical regardless of which specialist
// answers.
func curiosityReply(engine *content.Engine, st *state.Biomarkers, src *entropy.Source, when time.Time, traveling bool) []content.Message {
	candidates := [][]content.Message{
		engine.NutritionUpdate(when, traveling),
		engine.MedicalCheckin(when, st),
		engine.WearableAnomaly(when, st, traveling),
	}
	return candidates[src.Between(0, len(candidates)-1)]
}
