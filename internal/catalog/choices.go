package catalog

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"

	"github.com/drillq/drillq/internal/spacedrep"
)

// Choice is one option as presented to the user.
type Choice struct {
	Letter  string
	Option  Option
	Quality spacedrep.Quality
}

var letters = []string{"A", "B", "C"}

// Choices returns the three options in a stable order derived from the
// scenario id, lettered A to C.
func (s Scenario) Choices() []Choice {
	choices := []Choice{
		{Option: s.Best, Quality: spacedrep.QualityBest},
		{Option: s.OK, Quality: spacedrep.QualityOK},
		{Option: s.Bad, Quality: spacedrep.QualityBad},
	}

	h := fnv.New64a()
	h.Write([]byte(s.ID))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	for i := range choices {
		choices[i].Letter = letters[i]
	}
	return choices
}

// QualityForLetter maps a choice letter (case-insensitive) or "timeout" to
// its outcome quality.
func (s Scenario) QualityForLetter(letter string) (spacedrep.Quality, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "TIMEOUT" {
		return spacedrep.QualityTimeout, nil
	}
	for _, c := range s.Choices() {
		if c.Letter == letter {
			return c.Quality, nil
		}
	}
	return 0, fmt.Errorf("%w: choice %q", spacedrep.ErrInvalidQuality, letter)
}
