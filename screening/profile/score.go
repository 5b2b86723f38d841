package profile

// Score weights. Each field contributes independently; the total is 100.
const (
	scoreContact    = 20
	scoreSkillsMax  = 30
	scoreEducation  = 20
	scoreExperience = 15
	scoreLinks      = 15

	// Skill count that earns the full skills weight; fewer scale linearly.
	// Kept low: a couple of recognized skills is already a strong signal,
	// and long skill lists should not dominate the other fields.
	skillsForFullScore = 2
)

// CalculateScore is a pure function of the extracted fields. It never
// re-parses text, so it stays in lockstep with the extractors that produced
// its input.
func CalculateScore(ex Extraction) int {
	score := 0

	if ex.Contact.IsComplete() {
		score += scoreContact
	}

	if n := len(ex.Skills); n > 0 {
		if n > skillsForFullScore {
			n = skillsForFullScore
		}
		score += n * scoreSkillsMax / skillsForFullScore
	}

	if ex.Education.IsResolved() {
		score += scoreEducation
	}

	if ex.Level != LevelEntry {
		score += scoreExperience
	}

	if len(ex.Contact.Links) > 0 {
		score += scoreLinks
	}

	return score
}
