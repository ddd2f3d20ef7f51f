package scoring_test

import (
	"testing"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int { return &v }

func member(id, faculty string) model.Candidate {
	return model.Candidate{ID: id, Faculty: faculty, Availability: model.FullAvailability()}
}

func withStyle(c model.Candidate, comm model.Communication, pace model.Pace, meeting *int) model.Candidate {
	c.WorkStyle = &model.WorkStyle{Communication: comm, Pace: pace, MeetingFrequency: meeting}
	return c
}

func TestSchedule(t *testing.T) {
	Convey("Given the schedule scorer", t, func() {
		Convey("When the team has zero or one member", func() {
			Convey("Then the score is 100", func() {
				So(scoring.Schedule(nil), ShouldEqual, 100)
				lonely := model.Candidate{ID: "a"} // free nowhere
				So(scoring.Schedule([]model.Candidate{lonely}), ShouldEqual, 100)
			})
		})

		Convey("When every member is always free", func() {
			team := []model.Candidate{member("a", "x"), member("b", "y"), member("c", "z")}
			So(scoring.Schedule(team), ShouldEqual, 100)
		})

		Convey("When one member is never free", func() {
			team := []model.Candidate{member("a", "x"), {ID: "b"}}
			So(scoring.Schedule(team), ShouldEqual, 0)
		})

		Convey("When members share exactly one day", func() {
			a := model.Candidate{ID: "a"}
			b := model.Candidate{ID: "b"}
			for h := 0; h < model.HoursPerDay; h++ {
				a.Availability[2][h] = true
				b.Availability[2][h] = true
			}
			b.Availability[3][5] = true // b alone; does not count

			Convey("Then the score is 24/168 rounded", func() {
				So(scoring.Schedule([]model.Candidate{a, b}), ShouldEqual, 14)
			})
		})
	})
}

func TestSkillsCoverage(t *testing.T) {
	Convey("Given the skills coverage scorer", t, func() {
		team := []model.Candidate{
			{ID: "a", Skills: []model.Skill{{ID: "go", Level: 4}, {ID: "sql", Level: 2}}},
			{ID: "b", Skills: []model.Skill{{ID: "sql", Level: 5}, {ID: "ux", Level: 1}}},
		}

		Convey("When the project has no requirements", func() {
			So(scoring.SkillsCoverage(team, nil), ShouldEqual, 100)
			So(scoring.SkillsCoverage(nil, []model.Requirement{}), ShouldEqual, 100)
		})

		Convey("When the best member meets every requirement", func() {
			reqs := []model.Requirement{{SkillID: "go", RequiredLevel: 4}, {SkillID: "sql", RequiredLevel: 5}}
			So(scoring.SkillsCoverage(team, reqs), ShouldEqual, 100)
		})

		Convey("When some requirements are unmet", func() {
			reqs := []model.Requirement{
				{SkillID: "go", RequiredLevel: 5},
				{SkillID: "sql", RequiredLevel: 3},
				{SkillID: "ml", RequiredLevel: 1},
			}
			Convey("Then the score is the met share", func() {
				So(scoring.SkillsCoverage(team, reqs), ShouldEqual, 33)
			})
		})

		Convey("When a requirement carries no level", func() {
			reqs := []model.Requirement{{SkillID: "ux"}}
			So(scoring.SkillsCoverage(team, reqs), ShouldEqual, 100)
		})

		Convey("When a held skill carries no level it counts as level 1", func() {
			novices := []model.Candidate{{ID: "c", Skills: []model.Skill{{ID: "ml"}}}}
			So(scoring.SkillsCoverage(novices, []model.Requirement{{SkillID: "ml", RequiredLevel: 1}}), ShouldEqual, 100)
			So(scoring.SkillsCoverage(novices, []model.Requirement{{SkillID: "ml", RequiredLevel: 2}}), ShouldEqual, 0)
		})
	})
}

func TestFacultyDiversity(t *testing.T) {
	Convey("Given the faculty diversity scorer", t, func() {
		Convey("When the team is empty", func() {
			So(scoring.FacultyDiversity(nil), ShouldEqual, 100)
		})

		Convey("When distinct faculties grow for a fixed team size", func() {
			faculties := [][]string{
				{"cs", "cs", "cs", "cs", "cs", "cs"},
				{"cs", "cs", "cs", "cs", "cs", "law"},
				{"cs", "cs", "cs", "cs", "art", "law"},
				{"cs", "cs", "cs", "bio", "art", "law"},
				{"cs", "cs", "med", "bio", "art", "law"},
				{"cs", "eng", "med", "bio", "art", "law"},
			}
			var scores []int
			for _, set := range faculties {
				team := make([]model.Candidate, len(set))
				for i, f := range set {
					team[i] = member(string(rune('a'+i)), f)
				}
				scores = append(scores, scoring.FacultyDiversity(team))
			}

			Convey("Then the score never decreases", func() {
				for i := 1; i < len(scores); i++ {
					So(scores[i], ShouldBeGreaterThanOrEqualTo, scores[i-1])
				}
			})

			Convey("And it saturates at five distinct faculties", func() {
				So(scores[0], ShouldEqual, 20)
				So(scores[4], ShouldEqual, 100)
				So(scores[5], ShouldEqual, 100)
			})
		})

		Convey("When a small team is fully distinct", func() {
			team := []model.Candidate{member("a", "cs"), member("b", "law")}
			So(scoring.FacultyDiversity(team), ShouldEqual, 100)
		})

		Convey("When faculties differ only by case and spacing", func() {
			team := []model.Candidate{member("a", "CS"), member("b", " cs ")}
			So(scoring.FacultyDiversity(team), ShouldEqual, 50)
		})
	})
}

func TestProjectFit(t *testing.T) {
	Convey("Given the project fit scorer", t, func() {
		Convey("When there is no project", func() {
			team := []model.Candidate{{ID: "a", Experience: 3}, {ID: "b"}}

			Convey("Then tag overlap is full and complexity defaults to 3", func() {
				So(scoring.ProjectFit(team, nil), ShouldEqual, 100)
			})
		})

		Convey("When the project has no tags", func() {
			project := &model.ProjectContext{Complexity: 5}
			team := []model.Candidate{{ID: "a", Experience: 1}}

			Convey("Then only experience distance lowers the fit", func() {
				// 0.6*1 + 0.4*(1 - 4/4) = 0.6
				So(scoring.ProjectFit(team, project), ShouldEqual, 60)
			})
		})

		Convey("When members share some project tags", func() {
			project := &model.ProjectContext{Tags: []string{"ai", "health", "web", "AI"}, Complexity: 3}
			team := []model.Candidate{
				{ID: "a", Experience: 3, Interests: []string{"AI", "health"}},
				{ID: "b", Experience: 5, Interests: []string{"games"}},
			}

			Convey("Then the fit is the member average", func() {
				// a: 0.6*(2/3) + 0.4*1 = 0.8; b: 0.6*0 + 0.4*0.5 = 0.2; mean 0.5
				So(scoring.ProjectFit(team, project), ShouldEqual, 50)
			})
		})

		Convey("When experience is out of range it is clamped", func() {
			project := &model.ProjectContext{Complexity: 5}
			team := []model.Candidate{{ID: "a", Experience: 9}}
			So(scoring.ProjectFit(team, project), ShouldEqual, 100)
		})

		Convey("When the team is empty", func() {
			So(scoring.ProjectFit(nil, &model.ProjectContext{Tags: []string{"x"}}), ShouldEqual, 100)
		})
	})
}

func TestWorkStyle(t *testing.T) {
	Convey("Given the work-style scorer", t, func() {
		Convey("When the team has zero or one member", func() {
			So(scoring.WorkStyle(nil, 5), ShouldEqual, 100)
			one := withStyle(member("a", "x"), model.CommunicationSync, model.PaceIntense, intPtr(10))
			So(scoring.WorkStyle([]model.Candidate{one}, 5), ShouldEqual, 100)
		})

		Convey("When two members state identical styles", func() {
			a := withStyle(member("a", "x"), model.CommunicationHybrid, model.PaceChill, intPtr(7))
			b := withStyle(member("b", "y"), model.CommunicationHybrid, model.PaceChill, intPtr(7))
			So(scoring.WorkStyle([]model.Candidate{a, b}, 5), ShouldEqual, 100)
		})

		Convey("When members sit at opposite extremes", func() {
			a := withStyle(member("a", "x"), model.CommunicationAsync, model.PaceChill, intPtr(0))
			b := withStyle(member("b", "y"), model.CommunicationSync, model.PaceIntense, intPtr(10))

			Convey("Then each variance is 0.25 and the score is 75", func() {
				So(scoring.WorkStyle([]model.Candidate{a, b}, 5), ShouldEqual, 75)
			})
		})

		Convey("When members state no style at all", func() {
			team := []model.Candidate{member("a", "x"), member("b", "y"), member("c", "z")}
			So(scoring.WorkStyle(team, 5), ShouldEqual, 100)
		})

		Convey("When a member omits meeting frequency", func() {
			a := withStyle(member("a", "x"), model.CommunicationSync, model.PaceBalanced, nil)
			b := withStyle(member("b", "y"), model.CommunicationSync, model.PaceBalanced, intPtr(5))

			Convey("Then the project default fills in", func() {
				So(scoring.WorkStyle([]model.Candidate{a, b}, 5), ShouldEqual, 100)
				So(scoring.WorkStyle([]model.Candidate{a, b}, 9), ShouldBeLessThan, 100)
			})
		})
	})
}

func TestCombine(t *testing.T) {
	Convey("Given the score combiner", t, func() {
		dims := model.Dimensions{Schedule: 80, Skills: 60, Diversity: 40, ProjectFit: 90, WorkStyle: 70}

		Convey("When weights are rescaled uniformly", func() {
			ones := model.Weights{Schedule: 1, Skills: 1, Diversity: 1, ProjectFit: 1, WorkStyle: 1}
			twos := model.Weights{Schedule: 2, Skills: 2, Diversity: 2, ProjectFit: 2, WorkStyle: 2}

			Convey("Then the result is unchanged", func() {
				So(scoring.Combine(dims, ones), ShouldEqual, scoring.Combine(dims, twos))
				So(scoring.Combine(dims, ones), ShouldEqual, 68)
			})
		})

		Convey("When default weights are used", func() {
			// 80*.25 + 60*.25 + 40*.2 + 90*.15 + 70*.15 = 67
			So(scoring.Combine(dims, model.DefaultWeights()), ShouldEqual, 67)
		})

		Convey("When all weights are zero", func() {
			So(scoring.Combine(dims, model.Weights{}), ShouldEqual, 0)
		})

		Convey("When a single dimension carries all weight", func() {
			So(scoring.Combine(dims, model.Weights{Skills: 3}), ShouldEqual, 60)
		})

		Convey("When a weight is negative it is ignored", func() {
			So(scoring.Combine(dims, model.Weights{Skills: 1, Diversity: -5}), ShouldEqual, 60)
		})

		Convey("When every dimension is 100", func() {
			full := model.Dimensions{Schedule: 100, Skills: 100, Diversity: 100, ProjectFit: 100, WorkStyle: 100}
			So(scoring.Combine(full, model.Weights{Schedule: 0.3, Skills: 7, Diversity: 1e-3, ProjectFit: 2, WorkStyle: 9}), ShouldEqual, 100)
		})
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Given a team without a project", t, func() {
		team := []model.Candidate{member("a", "cs"), member("b", "law")}
		dims, score := scoring.Evaluate(team, nil, model.DefaultWeights())

		Convey("Then neutral defaults apply", func() {
			So(dims.Schedule, ShouldEqual, 100)
			So(dims.Skills, ShouldEqual, 100)
			So(dims.Diversity, ShouldEqual, 100)
			So(dims.ProjectFit, ShouldEqual, 100)
			So(dims.WorkStyle, ShouldEqual, 100)
			So(score, ShouldEqual, 100)
		})
	})
}
