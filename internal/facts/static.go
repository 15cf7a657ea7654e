package facts

import "context"

// StaticProvider serves canned facts from memory so the demo works with no
// network and no external command. Topics are matched exactly.
type StaticProvider struct {
	facts map[string]string
}

// NewStaticProvider creates a StaticProvider with the given topic→fact map.
// A nil map yields a provider that always returns ErrNoFact.
func NewStaticProvider(facts map[string]string) *StaticProvider {
	if facts == nil {
		facts = map[string]string{}
	}
	return &StaticProvider{facts: facts}
}

// DefaultFacts returns the built-in facts covering the default catalog.
func DefaultFacts() map[string]string {
	return map[string]string{
		"Mercury": "Mercury's day is longer than its year: one rotation takes 59 Earth days, one orbit just 88.",
		"Venus":   "Venus spins backwards, so its sun rises in the west and sets in the east.",
		"Earth":   "Earth is the only planet not named after a Greek or Roman deity.",
		"Mars":    "Mars hosts Olympus Mons, a volcano nearly three times the height of Mount Everest.",
		"Jupiter": "Jupiter's Great Red Spot is a storm wider than Earth that has raged for centuries.",
		"Saturn":  "Saturn is the least dense planet; it would float in a large enough bathtub.",
		"Uranus":  "Uranus rotates on its side, rolling around the Sun like a tipped-over top.",
		"Neptune": "Neptune's winds reach 2,000 km/h, the fastest measured in the solar system.",
	}
}

// RequestFact returns the canned fact for the topic.
func (p *StaticProvider) RequestFact(ctx context.Context, topic string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fact, ok := p.facts[topic]
	if !ok {
		return "", ErrNoFact
	}
	return fact, nil
}
