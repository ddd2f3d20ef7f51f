package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	service "github.com/okian/teamfit/internal/app"
	"github.com/okian/teamfit/internal/domain/availability"
	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/types"
	"github.com/okian/teamfit/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

var faculties = []string{"cs", "law", "art", "med", "biz", "eng"}

func makeCandidates(n int) []model.Candidate {
	out := make([]model.Candidate, n)
	for i := range out {
		out[i] = model.Candidate{
			ID:           fmt.Sprintf("c%03d", i),
			Faculty:      faculties[i%len(faculties)],
			Availability: model.FullAvailability(),
			Skills:       []model.Skill{{ID: "go", Level: 1 + i%5}},
			Interests:    []string{"ai", "web"}[i%2:],
			Experience:   1 + i%5,
		}
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should report sensible defaults", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeFalse)
			So(stats["defaultTeamSize"], ShouldEqual, 5)
			So(stats["sampleCap"], ShouldEqual, 120)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(8),
			service.WithTeamSizes(3, 6),
			service.WithSampling(50, 500),
		)

		Convey("Then the options are applied", func() {
			stats := svc.GetStats()
			So(stats["workerCount"], ShouldEqual, 2)
			So(stats["queueSize"], ShouldEqual, 8)
			So(stats["defaultTeamSize"], ShouldEqual, 3)
			So(stats["maxTeamSize"], ShouldEqual, 6)
			So(stats["sampleCap"], ShouldEqual, 50)
		})
	})
}

func TestService_Optimize(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithSeed(42), service.WithTeamSizes(3, 6))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When optimizing a valid pool", func() {
			res, err := svc.Optimize(ctx, types.OptimizeRequest{Candidates: makeCandidates(8)})

			Convey("Then up to three sorted formations of the default size come back", func() {
				So(err, ShouldBeNil)
				So(len(res.Formations), ShouldEqual, 3)
				for i, f := range res.Formations {
					So(len(f.Team), ShouldEqual, 3)
					So(f.Score, ShouldBeBetweenOrEqual, 0, 100)
					if i > 0 {
						So(f.Score, ShouldBeLessThanOrEqualTo, res.Formations[i-1].Score)
					}
				}
				So(res.Sampled, ShouldEqual, 56) // C(8,3)
				So(svc.GetStats()["optimizations"], ShouldEqual, int64(1))
			})
		})

		Convey("When the pool is empty", func() {
			res, err := svc.Optimize(ctx, types.OptimizeRequest{Candidates: []model.Candidate{}})

			Convey("Then a single empty formation is returned", func() {
				So(err, ShouldBeNil)
				So(len(res.Formations), ShouldEqual, 1)
				So(len(res.Formations[0].Team), ShouldEqual, 0)
			})
		})

		Convey("When the request is malformed", func() {
			dup := makeCandidates(3)
			dup[2].ID = dup[0].ID
			noID := makeCandidates(2)
			noID[1].ID = ""
			bad := model.Weights{Skills: -1}

			cases := []types.OptimizeRequest{
				{},
				{Candidates: dup},
				{Candidates: noID},
				{Candidates: makeCandidates(4), TeamSize: intPtr(0)},
				{Candidates: makeCandidates(4), TeamSize: intPtr(7)},
				{Candidates: makeCandidates(4), Weights: &bad},
			}

			Convey("Then each is rejected as invalid", func() {
				for _, req := range cases {
					_, err := svc.Optimize(ctx, req)
					So(errors.Is(err, service.ErrInvalidRequest), ShouldBeTrue)
				}
				So(svc.GetStats()["invalid"], ShouldEqual, int64(len(cases)))
			})
		})

		Convey("When the caller already gave up", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.Optimize(cctx, types.OptimizeRequest{Candidates: makeCandidates(4)})

			Convey("Then the call times out", func() {
				So(errors.Is(err, service.ErrTimeout), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service that is not started", t, func() {
		svc := service.New()
		_, err := svc.Optimize(context.Background(), types.OptimizeRequest{Candidates: makeCandidates(2)})
		So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
	})

	Convey("Given a service with a tiny queue and one worker", t, func() {
		svc := service.New(
			service.WithWorkerCount(1),
			service.WithQueueSize(1),
			service.WithTeamSizes(10, 10),
			service.WithSampling(2000, 20_000),
			service.WithRequestTimeout(30*time.Second),
		)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When many large requests arrive at once", func() {
			pool := makeCandidates(60)
			var wg sync.WaitGroup
			errs := make(chan error, 40)
			for i := 0; i < 40; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := svc.Optimize(ctx, types.OptimizeRequest{Candidates: pool})
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)

			Convey("Then the overflow is rejected with backpressure", func() {
				var ok, rejected int
				for err := range errs {
					switch {
					case err == nil:
						ok++
					case errors.Is(err, service.ErrBackpressure):
						rejected++
					default:
						So(err, ShouldBeNil)
					}
				}
				So(ok, ShouldBeGreaterThan, 0)
				So(rejected, ShouldBeGreaterThan, 0)
				So(svc.GetStats()["rejected"], ShouldEqual, int64(rejected))
			})
		})
	})
}

func TestService_Recommend(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New()
		ctx := context.Background()
		pool := makeCandidates(6)

		Convey("When asking for teammates of a pool member", func() {
			target := pool[0]
			matches, err := svc.Recommend(ctx, types.RecommendRequest{Target: &target, Candidates: pool, Limit: 3})

			Convey("Then the best other members come back sorted", func() {
				So(err, ShouldBeNil)
				So(len(matches), ShouldEqual, 3)
				for i, m := range matches {
					So(m.Candidate.ID, ShouldNotEqual, target.ID)
					So(m.Score, ShouldBeGreaterThanOrEqualTo, 60)
					if i > 0 {
						So(m.Score, ShouldBeLessThanOrEqualTo, matches[i-1].Score)
					}
				}
			})
		})

		Convey("When the minimum score is unreachable", func() {
			target := pool[0]
			matches, err := svc.Recommend(ctx, types.RecommendRequest{Target: &target, Candidates: pool, MinScore: intPtr(101)})
			So(err, ShouldBeNil)
			So(matches, ShouldBeEmpty)
		})

		Convey("When the target is missing", func() {
			_, err := svc.Recommend(ctx, types.RecommendRequest{Candidates: pool})
			So(errors.Is(err, service.ErrInvalidRequest), ShouldBeTrue)
		})

		Convey("When the limit is negative", func() {
			target := pool[0]
			_, err := svc.Recommend(ctx, types.RecommendRequest{Target: &target, Candidates: pool, Limit: -1})
			So(errors.Is(err, service.ErrInvalidRequest), ShouldBeTrue)
		})
	})
}

func TestService_Overlap(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("When slots overlap on Monday morning", func() {
			res, err := svc.Overlap(ctx, types.OverlapRequest{Slots: [][]availability.Slot{
				{{Day: 1, Start: "08:00", End: "12:00"}},
				{{Day: 1, Start: "10:00", End: "14:00"}},
			}})

			Convey("Then the shared window is reported", func() {
				So(err, ShouldBeNil)
				So(res.FreeHours, ShouldEqual, 2)
				So(res.Windows, ShouldResemble, []availability.Window{{Day: 1, Start: "10:00", End: "12:00"}})
				So(res.Matrix[1][10], ShouldBeTrue)
			})
		})

		Convey("When grids never overlap", func() {
			var a, b model.Availability
			a[0][0] = true
			b[0][1] = true
			res, err := svc.Overlap(ctx, types.OverlapRequest{Availability: []model.Availability{a, b}})
			So(err, ShouldBeNil)
			So(res.FreeHours, ShouldEqual, 0)
			So(res.Windows, ShouldNotBeNil)
			So(res.Windows, ShouldBeEmpty)
		})

		Convey("When a slot is malformed or nothing is given", func() {
			_, err := svc.Overlap(ctx, types.OverlapRequest{Slots: [][]availability.Slot{{{Day: 9, Start: "08:00", End: "09:00"}}}})
			So(errors.Is(err, service.ErrInvalidRequest), ShouldBeTrue)
			So(errors.Is(err, availability.ErrInvalidSlot), ShouldBeTrue)

			_, err = svc.Overlap(ctx, types.OverlapRequest{})
			So(errors.Is(err, service.ErrInvalidRequest), ShouldBeTrue)
		})
	})
}
