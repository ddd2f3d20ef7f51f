package recommend_test

import (
	"testing"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/recommend"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRank(t *testing.T) {
	Convey("Given a target and a pool", t, func() {
		target := model.Candidate{ID: "me", Faculty: "cs", Availability: model.FullAvailability()}
		var busy model.Availability // never free
		pool := []model.Candidate{
			{ID: "me", Faculty: "cs", Availability: model.FullAvailability()},
			{ID: "b-law", Faculty: "law", Availability: model.FullAvailability()},
			{ID: "a-law", Faculty: "law", Availability: model.FullAvailability()},
			{ID: "c-cs", Faculty: "cs", Availability: model.FullAvailability()},
			{ID: "d-busy", Faculty: "art", Availability: busy},
		}
		q := recommend.Query{Target: target, Pool: pool, Weights: model.DefaultWeights(), MinScore: recommend.DefaultMinScore}

		Convey("When ranking", func() {
			got := recommend.Rank(q)

			Convey("Then the target is never recommended to itself", func() {
				for _, m := range got {
					So(m.Candidate.ID, ShouldNotEqual, "me")
				}
			})

			Convey("And results are sorted by score with ID tie-break", func() {
				So(len(got), ShouldEqual, 4)
				So(got[0].Candidate.ID, ShouldEqual, "a-law")
				So(got[1].Candidate.ID, ShouldEqual, "b-law")
				So(got[2].Candidate.ID, ShouldEqual, "c-cs")
				So(got[3].Candidate.ID, ShouldEqual, "d-busy")
				So(got[0].Score, ShouldEqual, 100)
				So(got[2].Score, ShouldEqual, 90) // diversity 50 at weight 0.2
				So(got[3].Score, ShouldEqual, 75) // schedule 0 at weight 0.25
			})

			Convey("And pairings below the minimum are dropped", func() {
				q.MinScore = 80
				got := recommend.Rank(q)
				for _, m := range got {
					So(m.Candidate.ID, ShouldNotEqual, "d-busy")
				}
			})
		})

		Convey("When excluding and limiting", func() {
			q.Exclude = []string{"a-law"}
			q.Limit = 1
			q.MinScore = 0
			got := recommend.Rank(q)
			So(len(got), ShouldEqual, 1)
			So(got[0].Candidate.ID, ShouldEqual, "b-law")
		})

		Convey("When the threshold is high only perfect pairings remain", func() {
			q.MinScore = 95
			got := recommend.Rank(q)
			So(len(got), ShouldEqual, 2)
			So(got[0].Score, ShouldEqual, 100)
		})
	})
}
