package timeline_test

import (
	"testing"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/timeline"
	. "github.com/smartystreets/goconvey/convey"
)

// kinds flattens entries to "kind:year:id" strings for readable assertions.
func kinds(entries []timeline.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		switch e.Kind {
		case timeline.KindYear:
			out = append(out, "year:"+itoa(e.Year))
		case timeline.KindTenure:
			out = append(out, "tenure:"+itoa(e.Year)+":"+e.Tenure.ID)
		case timeline.KindAchievement:
			out = append(out, "achievement:"+itoa(e.Year)+":"+e.Achievement.ID)
		}
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

func TestBuild(t *testing.T) {
	Convey("Given no records", t, func() {
		entries := timeline.Build(nil, nil, timeline.WithCurrentYear(2024))

		Convey("Then the timeline is empty", func() {
			So(entries, ShouldNotBeNil)
			So(entries, ShouldBeEmpty)
		})
	})

	Convey("Given two overlapping tenures and their achievements", t, func() {
		tenures := []model.Tenure{
			{ID: "t2", Club: "Praia Clube", StartYear: 2021, EndYear: model.Year(2022)},
			{ID: "t1", Club: "Minas", StartYear: 2020, EndYear: model.Year(2021)},
		}
		achievements := []model.Achievement{
			{ID: "a2", Competition: "Mineiro", Year: 2021, Club: "MINAS"},
			{ID: "a1", Competition: "Superliga", Year: 2021, Club: "minas"},
			{ID: "a3", Competition: "Copa Brasil", Year: 2022, Club: "praia clube"},
		}

		entries := timeline.Build(tenures, achievements, timeline.WithCurrentYear(2024))

		Convey("Then years are descending and tenures follow their start year", func() {
			So(kinds(entries), ShouldResemble, []string{
				"year:2022",
				"tenure:2022:t2",
				"achievement:2022:a3",
				"year:2021",
				"tenure:2021:t1",
				"achievement:2021:a1",
				"achievement:2021:a2",
				"tenure:2021:t2",
				"year:2020",
				"tenure:2020:t1",
			})
		})
	})

	Convey("Given tenures starting in the same year", t, func() {
		tenures := []model.Tenure{
			{ID: "b", Club: "Sesi", StartYear: 2019, EndYear: model.Year(2019)},
			{ID: "a", Club: "Osasco", StartYear: 2019, EndYear: model.Year(2019)},
		}

		Convey("Then ties are broken by identifier", func() {
			So(kinds(timeline.Build(tenures, nil, timeline.WithCurrentYear(2024))), ShouldResemble, []string{
				"year:2019", "tenure:2019:a", "tenure:2019:b",
			})
		})
	})

	Convey("Given an ongoing tenure", t, func() {
		tenures := []model.Tenure{{ID: "t1", Club: "Sesc", StartYear: 2022, Ongoing: true}}

		Convey("Then it covers every year up to the current year", func() {
			So(kinds(timeline.Build(tenures, nil, timeline.WithCurrentYear(2024))), ShouldResemble, []string{
				"year:2024", "tenure:2024:t1",
				"year:2023", "tenure:2023:t1",
				"year:2022", "tenure:2022:t1",
			})
		})
	})

	Convey("Given an achievement for a club with no tenure", t, func() {
		tenures := []model.Tenure{{ID: "t1", Club: "Minas", StartYear: 2020, EndYear: model.Year(2020)}}
		achievements := []model.Achievement{
			{ID: "a1", Competition: "Mineiro", Year: 2020, Club: "Minas"},
			{ID: "a2", Competition: "Paulista", Year: 2020, Club: "Osasco"},
			{ID: "a3", Competition: "Mineiro", Year: 2019, Club: "Minas"},
		}

		entries := timeline.Build(tenures, achievements, timeline.WithCurrentYear(2024))

		Convey("Then it is never emitted", func() {
			ids := []string{}
			for _, a := range timeline.Achievements(entries) {
				ids = append(ids, a.ID)
			}
			So(ids, ShouldResemble, []string{"a1"})
		})

		Convey("Then its year still gets a marker", func() {
			So(kinds(entries), ShouldContain, "year:2019")
		})
	})

	Convey("Given records the caller keeps mutating", t, func() {
		tenures := []model.Tenure{{ID: "t1", Club: "Minas", StartYear: 2020, EndYear: model.Year(2020)}}
		achievements := []model.Achievement{{ID: "a1", Year: 2020, Club: "Minas"}}

		entries := timeline.Build(tenures, achievements, timeline.WithCurrentYear(2024))
		tenures[0].Club = "Changed"
		*tenures[0].EndYear = 1999
		achievements[0].ID = "changed"

		Convey("Then the timeline does not alias the input", func() {
			So(entries[1].Tenure.Club, ShouldEqual, "Minas")
			So(*entries[1].Tenure.EndYear, ShouldEqual, 2020)
			So(entries[2].Achievement.ID, ShouldEqual, "a1")
		})
	})
}
