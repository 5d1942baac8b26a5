// Package nlg provides the optional text-enhancement delegate: a local
// Ollama client that rewrites or composes message bodies in a chat tone.
// A nil Engine means enhancement is disabled; every failure path falls back
// to the caller's deterministic draft, so the content engine never sees an
// error from here.
package nlg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/talgya/conciergesim/internal/entropy"
)

// Modes.
const (
	ModeOff        = "off"
	ModeParaphrase = "paraphrase" // rewrite the deterministic draft
	ModeFull       = "full"       // compose the body from facts alone
)

// Config selects the enhancement behavior.
type Config struct {
	Provider    string // "none" | "ollama"
	Mode        string // off | paraphrase | full
	Model       string
	Host        string
	Timeout     time.Duration
	Temperature float64
	TopP        float64
	NumPredict  int
}

// DefaultConfig returns the enhancement defaults (disabled).
func DefaultConfig() Config {
	return Config{
		Provider:    "none",
		Mode:        ModeParaphrase,
		Model:       "llama3.1:8b",
		Host:        "http://localhost:11434",
		Timeout:     6 * time.Second,
		Temperature: 0.7,
		TopP:        0.95,
		NumPredict:  160,
	}
}

// Engine calls the local model and cleans up what comes back.
type Engine struct {
	cfg    Config
	client *http.Client
	src    *entropy.Source
}

// New creates an Engine, or nil when the configuration disables enhancement.
func New(cfg Config, src *entropy.Source) *Engine {
	if cfg.Provider == "none" || cfg.Provider == "" || cfg.Mode == ModeOff {
		return nil
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 6 * time.Second
	}
	return &Engine{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		src:    src,
	}
}

// Enabled reports whether enhancement is active.
func (e *Engine) Enabled() bool {
	return e != nil && e.cfg.Provider == "ollama" && e.cfg.Mode != ModeOff
}

// Warmup issues a trivial generation so the model is resident before the
// run starts. Failures are ignored.
func (e *Engine) Warmup() {
	if !e.Enabled() {
		return
	}
	if _, err := e.generate("Reply with OK."); err != nil {
		slog.Debug("nlg warmup failed", "error", err)
	}
}

// Enhance rewrites (or composes, in full mode) a message body for the given
// role and event. On any failure, timeout, or empty response the original
// draft comes back unchanged.
func (e *Engine) Enhance(role, event, header, baseBody string, facts map[string]string) string {
	if !e.Enabled() {
		return baseBody
	}

	var prompt string
	switch e.cfg.Mode {
	case ModeParaphrase:
		prompt = e.promptParaphrase(role, event, header, baseBody, facts)
	case ModeFull:
		prompt = e.promptFull(role, event, header, facts)
	default:
		return baseBody
	}

	text, err := e.generate(prompt)
	if err != nil {
		slog.Debug("nlg generate failed", "role", role, "event", event, "error", err)
		return baseBody
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return baseBody
	}

	text = sanitize(text, role)
	return e.finalizeMessage(text)
}

// roleTones steer the model's register per sender.
var roleTones = map[string]string{
	"Ruby":       "empathetic, proactive, logistics, confirmations; keeps friction low; hand-offs to specialists",
	"Dr. Warren": "authoritative, precise, plain-English clinical; short risks/benefits",
	"Advik":      "analytical, data trends, short hypothesis + next action",
	"Carla":      "practical nutrition, behavior change, short why",
	"Rachel":     "direct coaching, form-first cues, regress/progress options",
	"Neel":       "strategic, big-picture, ROI and milestones",
}

var styleHints = []string{
	"warm & brief",
	"to-the-point",
	"casual but clear",
	"executive and concise",
	"friendly and practical",
	"matter-of-fact",
}

var fewShot = []string{
	"- Morning HRV dipped a bit. Let’s keep dinner earlier and cut caffeine after lunch. I’ll check back Thursday.",
	"- I held your 7–7:30 gym slots and sent hotel swaps. Want me to lock those?",
	"- Numbers are moving the right way, not at target yet. If you’re okay, we stay the course two more weeks.",
	"- Travel week ahead—pushed heavier sessions to non-flight days and left mobility on travel days.",
	"- Appreciate the update. I’ll loop Carla in for the menu and confirm with Sarah on timing.",
}

func isMemberRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "rohan", "member", "client", "user":
		return true
	}
	return false
}

// factLines renders facts in sorted key order so the prompt is stable for a
// given seed.
func factLines(facts map[string]string) string {
	if len(facts) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(facts))
	for k := range facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %s", k, facts[k])
	}
	return b.String()
}

func (e *Engine) fewShotBlock() string {
	return strings.Join(entropy.Sample(e.src, fewShot, 3), "\n")
}

func (e *Engine) senderRule(role string) string {
	if isMemberRole(role) {
		return "- Sender is the MEMBER. Do NOT greet or address yourself by name. " +
			"Write 1-2 short sentences max. Keep it direct.\n"
	}
	return "- Sender is a CARE TEAM MEMBER. You may greet with the member's name ONLY if it feels " +
		"natural; don't greet every time. Prefer 0-1 sentence greeting, then content.\n"
}

func (e *Engine) promptParaphrase(role, event, header, baseBody string, facts map[string]string) string {
	tone, ok := roleTones[role]
	if !ok {
		tone = "concise and helpful"
	}
	styleHint := facts["style_hint"]
	if styleHint == "" {
		styleHint = entropy.Pick(e.src, styleHints)
	}
	avoidLine := ""
	if avoid := facts["avoid_opening_like"]; avoid != "" {
		avoidLine = fmt.Sprintf("- Do not start with: “%s”. Use a different opening.\n", avoid)
	}

	return fmt.Sprintf("You are '%s' writing a short chat message for event '%s'.\n", role, event) +
		fmt.Sprintf("Style: %s. Adopt this nuance: %s.\n", tone, styleHint) +
		e.senderRule(role) +
		avoidLine +
		"- Keep it human and brief (2-4 short sentences). Avoid bullet points and labels.\n" +
		"- Avoid colon-led or dash-led fragments (e.g., 'Watch-outs:', 'Focus:', 'Panel summary —'). Use plain sentences.\n" +
		"- Include hand-offs or confirmations only if natural.\n" +
		"- Preserve ALL concrete facts and numbers; do not invent anything.\n" +
		fmt.Sprintf("- DO NOT include the header line '%s'. Output BODY ONLY.\n", header) +
		"- Vary openings; don't always greet. If you greet, put it on its own line.\n" +
		"- Do not repeat the same opening across lines; avoid starting two lines with the same 1-2 words.\n" +
		"- If you find yourself repeating a point, drop the repeat.\n\n" +
		"Examples (style only, do not copy facts or exact wording):\n" +
		e.fewShotBlock() + "\n\n" +
		"Facts (source of truth):\n" +
		factLines(facts) + "\n\n" +
		"Original body to paraphrase:\n" +
		baseBody + "\n\n" +
		"Rewrite naturally now (BODY ONLY):"
}

func (e *Engine) promptFull(role, event, header string, facts map[string]string) string {
	tone, ok := roleTones[role]
	if !ok {
		tone = "concise and helpful"
	}
	styleHint := facts["style_hint"]
	if styleHint == "" {
		styleHint = entropy.Pick(e.src, styleHints)
	}
	avoidLine := ""
	if avoid := facts["avoid_opening_like"]; avoid != "" {
		avoidLine = fmt.Sprintf("- Do not start with: “%s”. Use a different opening.\n", avoid)
	}

	return fmt.Sprintf("You are '%s' writing a chat message for '%s'.\n", role, event) +
		fmt.Sprintf("Tone: %s. Adopt this nuance: %s.\n", tone, styleHint) +
		e.senderRule(role) +
		avoidLine +
		"- Output 2-4 short sentences. Use plain language; no bullet points, no labels.\n" +
		"- Mention logistics/confirmations briefly if implied by facts.\n" +
		"- Base the message ONLY on these facts. Do NOT invent or speculate.\n" +
		fmt.Sprintf("- DO NOT include the header '%s'. Output BODY ONLY.\n", header) +
		"- Do NOT repeat the same opening across lines; vary transitions.\n" +
		"- If a thought would repeat, omit the repeat.\n\n" +
		"Examples (style only, do not copy facts or exact wording):\n" +
		e.fewShotBlock() + "\n\n" +
		"Facts (strict source of truth):\n" +
		factLines(facts) + "\n\n" +
		"Compose the BODY ONLY now:"
}

// generateRequest is the Ollama /api/generate request body.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// generate calls the local model with jittered sampling options so repeated
// events do not produce carbon-copy phrasing.
func (e *Engine) generate(prompt string) (string, error) {
	temp := clampF(e.cfg.Temperature+e.jitter(-0.15, 0.15), 0.2, 1.2)
	topP := clampF(e.cfg.TopP+e.jitter(-0.03, 0.03), 0.5, 0.99)
	numPredict := clampI(e.cfg.NumPredict+e.src.Between(-16, 24), 96, 240)

	body, err := json.Marshal(generateRequest{
		Model:  e.cfg.Model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: temp,
			TopP:        topP,
			NumPredict:  numPredict,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	resp, err := e.client.Post(e.cfg.Host+"/api/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("generate call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate error %d: %s", resp.StatusCode, string(respBody))
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	return out.Response, nil
}

func (e *Engine) jitter(lo, hi float64) float64 {
	return lo + e.src.Float64()*(hi-lo)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
