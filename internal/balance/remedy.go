package balance

import "github.com/zaibaitech/asrar-sub001/internal/domain"

// remedies is keyed by the deficit element, then by severity.
var remedies = map[domain.Element]map[domain.Severity]string{
	domain.Fire: {
		domain.SeveritySevere:   "Sit in direct sunlight or before a candle flame and recite Yā Nūr slowly, breathing warmth into the chest.",
		domain.SeverityModerate: "Take a brisk walk outdoors and recite Yā Qawī.",
		domain.SeverityMild:     "Drink something warm and recite Yā Nūr a few times.",
		domain.SeverityBalanced: "Fire is steady. Keep your usual morning routine.",
	},
	domain.Water: {
		domain.SeveritySevere:   "Make full ablution with cool water, then sit quietly and recite Yā Laṭīf while breathing slowly.",
		domain.SeverityModerate: "Rinse the face and wrists with cool water and recite Yā Raḥmān.",
		domain.SeverityMild:     "Drink a glass of water slowly and recite Yā Laṭīf.",
		domain.SeverityBalanced: "Water is steady. Stay hydrated and keep your usual practice.",
	},
	domain.Air: {
		domain.SeveritySevere:   "Step into open air, take long measured breaths and recite Yā Ḥayy with each exhale.",
		domain.SeverityModerate: "Open a window, stretch and recite Yā Subḥān.",
		domain.SeverityMild:     "Take a few deep breaths and recite Yā Ḥayy.",
		domain.SeverityBalanced: "Air is steady. Keep your breathing practice.",
	},
	domain.Earth: {
		domain.SeveritySevere:   "Sit or stand barefoot on the ground, keep still and recite Yā Ṣabūr until settled.",
		domain.SeverityModerate: "Tidy your surroundings, eat something simple and recite Yā Matīn.",
		domain.SeverityMild:     "Place your palms flat on a table for a moment and recite Yā Ṣabūr.",
		domain.SeverityBalanced: "Earth is steady. Keep your usual routine.",
	},
}

// RemedyText returns the remedy for restoring deficit at severity sev.
func RemedyText(deficit domain.Element, sev domain.Severity) string {
	return remedies[deficit][sev]
}
