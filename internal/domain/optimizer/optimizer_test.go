package optimizer_test

import (
	"fmt"
	"testing"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/optimizer"
	. "github.com/smartystreets/goconvey/convey"
)

var faculties = []string{"cs", "law", "med", "art", "bio", "eng"}

func pool(n int) []model.Candidate {
	out := make([]model.Candidate, n)
	for i := range out {
		c := model.Candidate{
			ID:         fmt.Sprintf("c%02d", i),
			Faculty:    faculties[i%len(faculties)],
			Experience: 1 + i%5,
			Interests:  []string{"ai"},
			Skills:     []model.Skill{{ID: fmt.Sprintf("s%d", i%4), Level: 1 + i%5}},
		}
		// staggered availability so schedule scores differ between subsets
		for d := 0; d < model.DaysPerWeek; d++ {
			for h := i % 6; h < model.HoursPerDay; h++ {
				c.Availability[d][h] = true
			}
		}
		out[i] = c
	}
	return out
}

func TestOptimize(t *testing.T) {
	Convey("Given a pool of 5 always-free candidates and team size 5", t, func() {
		cands := make([]model.Candidate, 5)
		for i := range cands {
			cands[i] = model.Candidate{
				ID:           fmt.Sprintf("p%d", i),
				Faculty:      faculties[i%3],
				Availability: model.FullAvailability(),
			}
		}
		res := optimizer.New().Optimize(optimizer.Input{Candidates: cands, TeamSize: 5})

		Convey("Then exactly one formation is returned", func() {
			So(len(res.Formations), ShouldEqual, 1)
			f := res.Formations[0]
			So(len(f.Team), ShouldEqual, 5)
			So(f.Dimensions.Schedule, ShouldEqual, 100)
			So(f.Dimensions.Skills, ShouldEqual, 100)
			So(f.Dimensions.Diversity, ShouldEqual, 60) // 3 distinct / min(5,5)
			So(f.Score, ShouldBeLessThanOrEqualTo, 100)
		})
	})

	Convey("Given a pool of 10 and a project whose skills nobody holds", t, func() {
		project := &model.ProjectContext{RequiredSkills: []model.Requirement{
			{SkillID: "rust", RequiredLevel: 1},
			{SkillID: "k8s", RequiredLevel: 2},
			{SkillID: "ml", RequiredLevel: 3},
		}}
		res := optimizer.New(optimizer.WithSeed(11)).Optimize(optimizer.Input{
			Candidates: pool(10),
			TeamSize:   4,
			Project:    project,
		})

		Convey("Then every proposal has zero skills coverage", func() {
			So(len(res.Formations), ShouldEqual, 3)
			for _, f := range res.Formations {
				So(f.Dimensions.Skills, ShouldEqual, 0)
				So(len(f.Team), ShouldEqual, 4)
			}
			So(res.Sampled, ShouldEqual, 120)
		})
	})

	Convey("Given a larger pool", t, func() {
		cands := pool(12)
		res := optimizer.New(optimizer.WithSeed(5)).Optimize(optimizer.Input{Candidates: cands, TeamSize: 3})

		Convey("Then at most three formations come back sorted by score", func() {
			So(len(res.Formations), ShouldBeLessThanOrEqualTo, 3)
			for i := 1; i < len(res.Formations); i++ {
				So(res.Formations[i-1].Score, ShouldBeGreaterThanOrEqualTo, res.Formations[i].Score)
			}
		})

		Convey("And members are distinct candidates from the pool", func() {
			ids := map[string]bool{}
			for _, c := range cands {
				ids[c.ID] = true
			}
			for _, f := range res.Formations {
				seen := map[string]bool{}
				for _, m := range f.Team {
					So(ids[m.ID], ShouldBeTrue)
					So(seen[m.ID], ShouldBeFalse)
					seen[m.ID] = true
				}
			}
		})
	})

	Convey("Given an undersized pool", t, func() {
		cands := pool(2)
		res := optimizer.New().Optimize(optimizer.Input{Candidates: cands})

		Convey("Then the whole pool is the only team", func() {
			So(len(res.Formations), ShouldEqual, 1)
			So(len(res.Formations[0].Team), ShouldEqual, 2)
		})
	})

	Convey("Given an empty pool", t, func() {
		res := optimizer.New().Optimize(optimizer.Input{})

		Convey("Then a single empty formation is returned", func() {
			So(len(res.Formations), ShouldEqual, 1)
			So(len(res.Formations[0].Team), ShouldEqual, 0)
		})
	})

	Convey("Given candidates that all score the same", t, func() {
		cands := make([]model.Candidate, 6)
		for i := range cands {
			// reverse ID order relative to pool order
			cands[i] = model.Candidate{ID: fmt.Sprintf("z%d", 9-i), Faculty: "cs", Availability: model.FullAvailability()}
		}
		a := optimizer.New().Optimize(optimizer.Input{Candidates: cands, TeamSize: 2})
		b := optimizer.New().Optimize(optimizer.Input{Candidates: cands, TeamSize: 2})

		Convey("Then ties break by member IDs regardless of sampling order", func() {
			So(len(a.Formations), ShouldEqual, 3)
			So(a.Formations[0].MemberIDs(), ShouldResemble, []string{"z5", "z4"})
			for i := range a.Formations {
				So(a.Formations[i].MemberIDs(), ShouldResemble, b.Formations[i].MemberIDs())
			}
		})
	})

	Convey("Given per-call weights", t, func() {
		cands := pool(6)
		opt := optimizer.New(optimizer.WithSeed(9))
		onlySkills := model.Weights{Skills: 1}
		res := opt.Optimize(optimizer.Input{Candidates: cands, TeamSize: 2, Weights: &onlySkills})

		Convey("Then the score equals the weighted dimension", func() {
			for _, f := range res.Formations {
				So(f.Score, ShouldEqual, f.Dimensions.Skills)
			}
		})
	})

	Convey("Given a top-N option", t, func() {
		res := optimizer.New(optimizer.WithTopN(1)).Optimize(optimizer.Input{Candidates: pool(8), TeamSize: 2})
		So(len(res.Formations), ShouldEqual, 1)

		Convey("When top-N exceeds the contract it is ignored", func() {
			res := optimizer.New(optimizer.WithTopN(10)).Optimize(optimizer.Input{Candidates: pool(8), TeamSize: 2})
			So(len(res.Formations), ShouldEqual, 3)
		})
	})
}
