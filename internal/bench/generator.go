package bench

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/teamfit/internal/domain/model"
)

// Generation ranges.
const (
	maxSkillsPerCandidate = 3
	maxSkillLevel         = 5
	maxInterests          = 3
	maxBlocksPerDay       = 2
	earliestHour          = 7
	latestHour            = 23
	maxBlockHours         = 5
)

// Generator produces random candidate pools. It is not safe for concurrent
// use; give each goroutine its own.
type Generator struct {
	rng      *rand.Rand
	scenario Scenario
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(s Scenario, seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), scenario: s}
}

// Pool returns Scenario.Size candidates with unique IDs.
func (g *Generator) Pool() []model.Candidate {
	pool := make([]model.Candidate, g.scenario.Size)
	for i := range pool {
		pool[i] = g.candidate()
	}
	return pool
}

func (g *Generator) candidate() model.Candidate {
	c := model.Candidate{
		ID:           uuid.NewString(),
		Faculty:      pick(g.rng, g.scenario.Faculties),
		Availability: g.availability(),
		Experience:   model.MinExperience + g.rng.IntN(model.MaxExperience),
		WorkStyle: &model.WorkStyle{
			Communication: model.Communication(g.rng.IntN(4)),
			Pace:          model.Pace(g.rng.IntN(4)),
		},
	}
	if len(g.scenario.Skills) > 0 {
		for _, i := range g.rng.Perm(len(g.scenario.Skills))[:1+g.rng.IntN(min(maxSkillsPerCandidate, len(g.scenario.Skills)))] {
			c.Skills = append(c.Skills, model.Skill{ID: g.scenario.Skills[i], Level: 1 + g.rng.IntN(maxSkillLevel)})
		}
	}
	if len(g.scenario.Interests) > 0 {
		for _, i := range g.rng.Perm(len(g.scenario.Interests))[:g.rng.IntN(min(maxInterests, len(g.scenario.Interests))+1)] {
			c.Interests = append(c.Interests, g.scenario.Interests[i])
		}
	}
	if g.rng.IntN(2) == 0 {
		mf := g.rng.IntN(model.MaxMeetingFrequency + 1)
		c.WorkStyle.MeetingFrequency = &mf
	}
	return c
}

// availability marks up to two blocks of free hours on each day.
func (g *Generator) availability() model.Availability {
	var a model.Availability
	for d := 0; d < model.DaysPerWeek; d++ {
		for b := g.rng.IntN(maxBlocksPerDay + 1); b > 0; b-- {
			start := earliestHour + g.rng.IntN(latestHour-earliestHour)
			end := min(start+1+g.rng.IntN(maxBlockHours), model.HoursPerDay)
			for h := start; h < end; h++ {
				a[d][h] = true
			}
		}
	}
	return a
}

func pick(rng *rand.Rand, xs []string) string {
	if len(xs) == 0 {
		return ""
	}
	return xs[rng.IntN(len(xs))]
}
