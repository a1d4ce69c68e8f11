package model_test

import (
	"testing"

	"github.com/okian/podium/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestTenureEffectiveEnd(t *testing.T) {
	convey.Convey("Given club tenures", t, func() {
		convey.Convey("When the tenure is flagged ongoing", func() {
			tenure := model.Tenure{ID: "t1", Club: "Minas", StartYear: 2018, EndYear: model.Year(2019), Ongoing: true}

			convey.Convey("Then the effective end is the current year", func() {
				convey.So(tenure.IsOngoing(), convey.ShouldBeTrue)
				convey.So(tenure.EffectiveEnd(2024), convey.ShouldEqual, 2024)
			})
		})

		convey.Convey("When the end year is absent", func() {
			tenure := model.Tenure{ID: "t1", Club: "Minas", StartYear: 2018}

			convey.Convey("Then it is treated as ongoing", func() {
				convey.So(tenure.IsOngoing(), convey.ShouldBeTrue)
				convey.So(tenure.EffectiveEnd(2021), convey.ShouldEqual, 2021)
			})
		})

		convey.Convey("When the end year is fixed", func() {
			tenure := model.Tenure{ID: "t1", Club: "Minas", StartYear: 2015, EndYear: model.Year(2017)}

			convey.Convey("Then the interval is inclusive", func() {
				convey.So(tenure.EffectiveEnd(2024), convey.ShouldEqual, 2017)
				convey.So(tenure.Covers(2015, 2024), convey.ShouldBeTrue)
				convey.So(tenure.Covers(2017, 2024), convey.ShouldBeTrue)
				convey.So(tenure.Covers(2018, 2024), convey.ShouldBeFalse)
				convey.So(tenure.Covers(2014, 2024), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the end year precedes the start year", func() {
			tenure := model.Tenure{ID: "t1", Club: "Minas", StartYear: 2020, EndYear: model.Year(2010)}

			convey.Convey("Then the interval collapses to the start year", func() {
				convey.So(tenure.EffectiveEnd(2024), convey.ShouldEqual, 2020)
			})
		})
	})
}

func TestParsePlacement(t *testing.T) {
	convey.Convey("Given placement labels", t, func() {
		cases := map[string]model.PlacementRank{
			model.PlacementFirst:       model.RankFirst,
			"1o lugar":                 model.RankFirst,
			"  1º  LUGAR ":             model.RankFirst,
			"Campeão":                  model.RankFirst,
			model.PlacementSecond:      model.RankSecond,
			"Vice-campeã":              model.RankSecond,
			model.PlacementThird:       model.RankThird,
			"3rd":                      model.RankThird,
			model.PlacementParticipant: model.RankParticipant,
			"":                         model.RankNone,
			"quarto lugar":             model.RankNone,
			"Campea\u0303o":            model.RankFirst,
			"CAMPEÃO":                  model.RankFirst,
			"Campeão Estadual":         model.RankFirst,
			"1ª colocação":             model.RankFirst,
			"Vice-campea\u0303":        model.RankSecond,
			"Medalha de Bronze":        model.RankThird,
			"11º Lugar":                model.RankNone,
			"21st":                     model.RankNone,
			"12 lugar":                 model.RankNone,
		}

		convey.Convey("Then each label maps to its rank", func() {
			for label, want := range cases {
				convey.So(model.ParsePlacement(label), convey.ShouldEqual, want)
			}
		})

		convey.Convey("Then podium ranks are first to third", func() {
			convey.So(model.RankFirst.IsPodium(), convey.ShouldBeTrue)
			convey.So(model.RankThird.IsPodium(), convey.ShouldBeTrue)
			convey.So(model.RankParticipant.IsPodium(), convey.ShouldBeFalse)
			convey.So(model.RankNone.IsPodium(), convey.ShouldBeFalse)
		})
	})
}

func TestProfileCopies(t *testing.T) {
	convey.Convey("Given a profile", t, func() {
		profile := &model.Profile{
			ID:           "p1",
			Tenures:      []model.Tenure{{ID: "t1", Club: "Sesi", StartYear: 2010, EndYear: model.Year(2012)}},
			Achievements: []model.Achievement{{ID: "a1", Competition: "Paulista", Year: 2011, Club: "Sesi"}},
		}

		convey.Convey("When cloning it", func() {
			clone := profile.Clone()
			*clone.Tenures[0].EndYear = 2030
			clone.Achievements[0].Club = "Other"

			convey.Convey("Then the original is untouched", func() {
				convey.So(*profile.Tenures[0].EndYear, convey.ShouldEqual, 2012)
				convey.So(profile.Achievements[0].Club, convey.ShouldEqual, "Sesi")
			})
		})

		convey.Convey("When the profile is nil", func() {
			var nilProfile *model.Profile

			convey.Convey("Then the lists are empty", func() {
				convey.So(nilProfile.TenureList(), convey.ShouldBeEmpty)
				convey.So(nilProfile.AchievementList(), convey.ShouldBeEmpty)
				convey.So(nilProfile.Clone(), convey.ShouldBeNil)
			})
		})
	})
}

func TestClubKey(t *testing.T) {
	convey.Convey("Given club names differing in case and padding", t, func() {
		convey.So(model.ClubKey("  Minas Tênis Clube "), convey.ShouldEqual, model.ClubKey("MINAS TÊNIS CLUBE"))
		convey.So(model.ClubKey("Sesi"), convey.ShouldNotEqual, model.ClubKey("Sesi SP"))
	})
}
