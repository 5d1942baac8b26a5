// Package profile holds the fixed member and care-team roster used by the
// simulation. Constructed once, never mutated.
package profile

// Person is someone who can appear as a chat sender.
type Person struct {
	Name     string
	Role     string
	VoiceKey string // selects tone in the content engine
}

// MemberProfile is the member's immutable profile and preferences.
type MemberProfile struct {
	PreferredName      string
	DOB                string
	Age                int
	Gender             string
	PrimaryResidence   string
	FrequentTravel     []string
	Occupation         string
	PAName             string
	Goals              []string
	SuccessMetrics     []string
	CommPreference     string
	Language           string
	CulturalBackground string
}

// Member returns the fixed member profile for this simulation.
func Member() MemberProfile {
	return MemberProfile{
		PreferredName:    "Rohan Patel",
		DOB:              "1979-03-12",
		Age:              46,
		Gender:           "Male",
		PrimaryResidence: "Singapore",
		FrequentTravel:   []string{"United Kingdom", "United States", "South Korea", "Jakarta"},
		Occupation:       "Regional Head of Sales (FinTech)",
		PAName:           "Sarah Tan",
		Goals: []string{
			"Reduce CVD risk via cholesterol/BP control by Dec 2026",
			"Enhance cognitive function & focus by Jun 2026",
			"Annual full-body screening cadence starting Nov 2025",
		},
		SuccessMetrics: []string{
			"ApoB, LDL-C, BP, hsCRP",
			"Sleep quality (Garmin), HRV, RHR",
			"Cognitive assessment scores",
		},
		CommPreference: "Executive summaries with clear actions; granular data on request. " +
			"Scheduling via PA, responses within 24-48h.",
		Language:           "English",
		CulturalBackground: "Indian",
	}
}

// Team returns the fixed care team with roles and voice selectors.
func Team() []Person {
	return []Person{
		{Name: "Ruby", Role: "Concierge (Orchestrator)", VoiceKey: "ruby"},
		{Name: "Dr. Warren", Role: "Medical Strategist", VoiceKey: "dr_warren"},
		{Name: "Advik", Role: "Performance Scientist", VoiceKey: "advik"},
		{Name: "Carla", Role: "Nutritionist", VoiceKey: "carla"},
		{Name: "Rachel", Role: "Physiotherapist", VoiceKey: "rachel"},
		{Name: "Neel", Role: "Concierge Lead / Relationship Manager", VoiceKey: "neel"},
		{Name: "Sarah Tan", Role: "Personal Assistant (Member)", VoiceKey: "pa"},
		{Name: "Rohan Patel", Role: "Member", VoiceKey: "member"},
	}
}
