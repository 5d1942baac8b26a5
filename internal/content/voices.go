package content

// Voice is a lightweight voice profile for a sender role.
type Voice struct {
	Tag  string // sender label, e.g. "Ruby (Concierge)"
	Tone string // human description, not used programmatically
}

// voices maps a role key to its voice profile.
var voices = map[string]Voice{
	"ruby": {
		Tag:  "Ruby (Concierge)",
		Tone: "Empathetic, organized, proactive",
	},
	"dr_warren": {
		Tag:  "Dr. Warren (Medical)",
		Tone: "Authoritative, precise, scientific",
	},
	"advik": {
		Tag:  "Advik (Performance Scientist)",
		Tone: "Analytical, hypothesis-driven",
	},
	"carla": {
		Tag:  "Carla (Nutrition)",
		Tone: "Practical, behavioral, educational",
	},
	"rachel": {
		Tag:  "Rachel (PT)",
		Tone: "Direct, encouraging, form & function",
	},
	"neel": {
		Tag:  "Neel (Concierge Lead)",
		Tone: "Strategic, reassuring, big-picture",
	},
	"pa": {
		Tag:  "Sarah Tan (PA)",
		Tone: "Efficient, scheduling-focused",
	},
	"member": {
		Tag:  "Rohan",
		Tone: "Analytical, concise",
	},
}

// RoleName extracts the bare name from a voice tag, e.g. "Ruby" from
// "Ruby (Concierge)".
func RoleName(key string) string {
	tag := voices[key].Tag
	for i := 0; i < len(tag); i++ {
		if tag[i] == ' ' && i+1 < len(tag) && tag[i+1] == '(' {
			return tag[:i]
		}
	}
	return tag
}
