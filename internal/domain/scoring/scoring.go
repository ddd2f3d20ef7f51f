// Package scoring computes the five team compatibility dimensions and
// combines them into one overall score.
//
// Every function is pure: inputs are read-only and every score is an
// integer in [0,100].
package scoring

import (
	"math"
	"strings"

	"github.com/okian/teamfit/internal/domain/availability"
	"github.com/okian/teamfit/internal/domain/model"
)

const (
	maxScore = 100

	// diversitySaturation is the distinct-faculty count past which a team
	// earns no further diversity credit.
	diversitySaturation = 5

	tagOverlapWeight      = 0.6
	experienceMatchWeight = 0.4
	// experienceSpread is the largest possible |experience - complexity|.
	experienceSpread = model.MaxExperience - model.MinExperience
)

// Schedule returns the share of the week in which every member is free.
// Teams of fewer than two are trivially compatible.
func Schedule(team []model.Candidate) int {
	if len(team) < 2 {
		return maxScore
	}
	grids := make([]model.Availability, len(team))
	for i := range team {
		grids[i] = team[i].Availability
	}
	shared := availability.FreeHours(availability.Common(grids))
	return percent(float64(shared) / model.WeekHours)
}

// SkillsCoverage returns the share of requirements met by the best member
// for each skill. No requirements means full coverage.
func SkillsCoverage(team []model.Candidate, reqs []model.Requirement) int {
	if len(reqs) == 0 {
		return maxScore
	}
	best := make(map[string]int)
	for i := range team {
		for _, s := range team[i].Skills {
			if lvl := s.EffectiveLevel(); lvl > best[s.ID] {
				best[s.ID] = lvl
			}
		}
	}
	met := 0
	for _, r := range reqs {
		if best[r.SkillID] >= r.EffectiveLevel() {
			met++
		}
	}
	return percent(float64(met) / float64(len(reqs)))
}

// FacultyDiversity rewards distinct backgrounds up to min(5, team size).
func FacultyDiversity(team []model.Candidate) int {
	denom := min(diversitySaturation, len(team))
	if denom == 0 {
		return maxScore
	}
	seen := make(map[string]struct{}, len(team))
	for i := range team {
		seen[normalize(team[i].Faculty)] = struct{}{}
	}
	return percent(math.Min(1, float64(len(seen))/float64(denom)))
}

// ProjectFit averages each member's interest overlap with the project tags
// and how close their experience is to the project complexity.
func ProjectFit(team []model.Candidate, project *model.ProjectContext) int {
	if len(team) == 0 {
		return maxScore
	}
	tags := uniqueTags(project.TopicTags())
	complexity := float64(project.EffectiveComplexity())

	total := 0.0
	for i := range team {
		overlap := 1.0
		if len(tags) > 0 {
			interests := make(map[string]struct{}, len(team[i].Interests))
			for _, t := range team[i].Interests {
				interests[normalize(t)] = struct{}{}
			}
			shared := 0
			for _, t := range tags {
				if _, ok := interests[t]; ok {
					shared++
				}
			}
			overlap = float64(shared) / float64(len(tags))
		}
		gap := math.Abs(float64(team[i].EffectiveExperience()) - complexity)
		expMatch := 1 - math.Min(1, gap/experienceSpread)
		total += tagOverlapWeight*overlap + experienceMatchWeight*expMatch
	}
	return percent(total / float64(len(team)))
}

// WorkStyle scores how tightly members agree on communication mode, pace
// and meeting frequency. Members without a stated meeting frequency use
// defaultMeeting (0..10). Teams of fewer than two are trivially compatible.
func WorkStyle(team []model.Candidate, defaultMeeting int) int {
	if len(team) < 2 {
		return maxScore
	}
	comm := make([]float64, len(team))
	pace := make([]float64, len(team))
	meet := make([]float64, len(team))
	for i := range team {
		ws := team[i].WorkStyle
		comm[i] = ws.CommunicationPosition()
		pace[i] = ws.PacePosition()
		meet[i] = ws.MeetingPosition(defaultMeeting)
	}
	avg := (variance(comm) + variance(pace) + variance(meet)) / 3
	return percent(1 - math.Min(1, avg))
}

// Evaluate computes every dimension for team plus the combined score.
func Evaluate(team []model.Candidate, project *model.ProjectContext, w model.Weights) (model.Dimensions, int) {
	d := model.Dimensions{
		Schedule:   Schedule(team),
		Skills:     SkillsCoverage(team, project.Requirements()),
		Diversity:  FacultyDiversity(team),
		ProjectFit: ProjectFit(team, project),
		WorkStyle:  WorkStyle(team, project.EffectiveMeetingFrequency()),
	}
	return d, Combine(d, w)
}

// variance is the population variance of xs; empty input has none.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	sum := 0.0
	for _, x := range xs {
		sum += (x - mean) * (x - mean)
	}
	return sum / float64(len(xs))
}

// percent maps a ratio on [0,1] to a rounded integer score on [0,100].
func percent(ratio float64) int {
	if math.IsNaN(ratio) {
		return 0
	}
	return clampScore(int(math.Round(ratio * maxScore)))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxScore {
		return maxScore
	}
	return v
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func uniqueTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		n := normalize(t)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
