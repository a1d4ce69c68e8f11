package progression_test

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/progression"
)

func genAchievement() gopter.Gen {
	return gen.Struct(reflect.TypeOf(model.Achievement{}), map[string]gopter.Gen{
		"ID": gen.Identifier(),
		"Competition": gen.OneConstOf(
			"Campeonato Estadual", "Campeonato Brasileiro", "Copa CBS", "Seleção do Estado",
			"Seleção Brasileira", "Jogos Escolares", "",
		),
		"Kind":      gen.OneConstOf(model.KindCollective, model.KindIndividual),
		"Placement": gen.OneConstOf(model.PlacementFirst, model.PlacementSecond, model.PlacementThird, model.PlacementParticipant, ""),
		"Award":     gen.OneConstOf("", "MVP", "Melhor Levantadora", "Revelação"),
	})
}

func TestProgressionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("adding an achievement never lowers XP", prop.ForAll(
		func(base []model.Achievement, extra model.Achievement) bool {
			before := progression.Compute(&model.Profile{Achievements: base}).XP
			after := progression.Compute(&model.Profile{Achievements: append(append([]model.Achievement{}, base...), extra)}).XP
			return after >= before
		},
		gen.SliceOf(genAchievement()), genAchievement(),
	))

	properties.Property("adding a tenure never lowers XP", prop.ForAll(
		func(base []model.Achievement, tenures int) bool {
			p := &model.Profile{Achievements: base}
			for i := 0; i < tenures; i++ {
				p.Tenures = append(p.Tenures, model.Tenure{ID: "t", StartYear: 2000})
			}
			before := progression.Compute(p).XP
			p.Tenures = append(p.Tenures, model.Tenure{ID: "extra", StartYear: 2001})
			return progression.Compute(p).XP >= before
		},
		gen.SliceOf(genAchievement()), gen.IntRange(0, 5),
	))

	properties.Property("level bounds bracket the XP", prop.ForAll(
		func(xp int) bool {
			r := progression.LevelFor(xp)
			if r.CurrentLevelXP > xp {
				return false
			}
			if r.Level < len(progression.Levels()) && r.NextLevelXP <= xp {
				return false
			}
			return r.Progress >= 0 && r.Progress <= 100
		},
		gen.IntRange(0, 10000),
	))

	properties.TestingRun(t)
}
