package loadgen

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/repository"
	service "github.com/okian/podium/internal/app"
)

func rankedEntry(rank int, id string, xp int) Entry {
	return Entry{Rank: rank, Standing: repository.Standing{ProfileID: id, XP: xp}}
}

func TestGenerateCareer(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("careers are internally consistent", prop.ForAll(
		func(seed uint64) bool {
			p := generateCareer(rand.New(rand.NewPCG(seed, seed)), "0123456789abcdef")
			if len(p.Tenures) == 0 {
				return false
			}
			clubs := map[string]bool{}
			for i, t := range p.Tenures {
				if t.StartYear < firstYear || t.StartYear > lastYear {
					return false
				}
				if (t.EndYear == nil) != t.Ongoing {
					return false
				}
				if t.EndYear != nil && *t.EndYear < t.StartYear {
					return false
				}
				if t.Ongoing && i != len(p.Tenures)-1 {
					return false
				}
				clubs[t.Club] = true
			}
			for _, a := range p.Achievements {
				if !clubs[a.Club] || a.Year < firstYear || a.Year > lastYear {
					return false
				}
				if (a.Award == "") == (a.Placement == "") {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestGenerateProfiles(t *testing.T) {
	convey.Convey("Given a seeded generator", t, func() {
		ctx := context.Background()
		cfg := &Config{Profiles: 20, Seed: 7}

		convey.Convey("Then it produces unique ids", func() {
			stats := &Stats{}
			profiles, err := generateProfiles(ctx, cfg, stats)
			convey.So(err, convey.ShouldBeNil)
			convey.So(profiles, convey.ShouldHaveLength, 20)
			convey.So(stats.ProfilesGenerated, convey.ShouldEqual, 20)

			seen := map[string]bool{}
			for _, p := range profiles {
				convey.So(seen[p.ID], convey.ShouldBeFalse)
				seen[p.ID] = true
			}
		})

		convey.Convey("Then a cancelled context stops generation", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := generateProfiles(cctx, cfg, &Stats{})
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
		})
	})
}

func TestVerifyLeaderboard(t *testing.T) {
	convey.Convey("Given leaderboard responses", t, func() {
		convey.Convey("A dense, ordered board passes", func() {
			board := []Entry{rankedEntry(1, "a", 90), rankedEntry(1, "b", 90), rankedEntry(2, "c", 40), rankedEntry(3, "d", 5)}
			convey.So(verifyLeaderboard(board), convey.ShouldBeNil)
		})

		convey.Convey("Increasing XP fails", func() {
			board := []Entry{rankedEntry(1, "a", 10), rankedEntry(2, "b", 20)}
			convey.So(errors.Is(verifyLeaderboard(board), ErrVerification), convey.ShouldBeTrue)
		})

		convey.Convey("Tied entries with different ranks fail", func() {
			board := []Entry{rankedEntry(1, "a", 10), rankedEntry(2, "b", 10)}
			convey.So(errors.Is(verifyLeaderboard(board), ErrVerification), convey.ShouldBeTrue)
		})

		convey.Convey("Ties out of id order fail", func() {
			board := []Entry{rankedEntry(1, "b", 10), rankedEntry(1, "a", 10)}
			convey.So(errors.Is(verifyLeaderboard(board), ErrVerification), convey.ShouldBeTrue)
		})

		convey.Convey("Gaps in ranks fail", func() {
			board := []Entry{rankedEntry(1, "a", 10), rankedEntry(3, "b", 5)}
			convey.So(errors.Is(verifyLeaderboard(board), ErrVerification), convey.ShouldBeTrue)
		})

		convey.Convey("An empty board fails", func() {
			convey.So(errors.Is(verifyLeaderboard(nil), ErrVerification), convey.ShouldBeTrue)
		})
	})
}

func TestVerifyRankings(t *testing.T) {
	convey.Convey("Given rankings and a leaderboard", t, func() {
		board := []Entry{rankedEntry(1, "a", 90), rankedEntry(2, "b", 40)}

		convey.Convey("Matching XP passes", func() {
			convey.So(verifyRankings(map[string]Entry{"a": rankedEntry(1, "a", 90)}, board), convey.ShouldBeNil)
		})

		convey.Convey("Disagreeing XP fails", func() {
			err := verifyRankings(map[string]Entry{"b": rankedEntry(2, "b", 41)}, board)
			convey.So(errors.Is(err, ErrVerification), convey.ShouldBeTrue)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a running podium service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc := service.New(service.WithWorkerCount(4), service.WithQueueSize(1000))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc, 100).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		out := filepath.Join(t.TempDir(), "careers.json")
		cfg := &Config{
			BaseURL:       srv.URL,
			Profiles:      40,
			TopN:          40,
			Samples:       10,
			Workers:       4,
			Timeout:       5 * time.Second,
			SettleTimeout: 10 * time.Second,
			Seed:          42,
			OutputFile:    out,
		}

		convey.Convey("When the load run completes", func() {
			stats, err := Run(ctx, cfg)

			convey.Convey("Then every career is accepted, ranked and verified", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stats.Accepted, convey.ShouldEqual, 40)
				convey.So(stats.Failed, convey.ShouldEqual, 0)
				convey.So(stats.Ranked, convey.ShouldEqual, 40)
				convey.So(stats.LeaderboardEntries, convey.ShouldEqual, 40)
				convey.So(stats.SamplesChecked, convey.ShouldEqual, 10)

				info, err := os.Stat(out)
				convey.So(err, convey.ShouldBeNil)
				convey.So(info.Size(), convey.ShouldBeGreaterThan, 0)
			})
		})
	})

	convey.Convey("Given no service", t, func() {
		cfg := &Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}

		convey.Convey("Then the health check fails", func() {
			_, err := Run(context.Background(), cfg)
			convey.So(errors.Is(err, ErrUnhealthy), convey.ShouldBeTrue)
		})
	})
}
