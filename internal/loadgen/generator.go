package loadgen

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

// Career generation bounds.
const (
	firstYear       = 1995
	lastYear        = 2025
	maxTenures      = 5
	maxTenureYears  = 8
	maxAchievements = 14
	individualOdds  = 5 // one in N achievements is an individual award
)

var clubs = []string{
	"Minas Tênis Clube", "Sada Cruzeiro", "Sesi-SP", "Praia Clube",
	"Osasco", "Funvic Taubaté", "Pinheiros", "Fluminense",
}

type competition struct {
	name string
	kind string
}

var competitions = []competition{
	{"Campeonato Mineiro", "Estadual"},
	{"Campeonato Paulista", "Estadual"},
	{"Copa Regional", "Regional"},
	{"Superliga", "Nacional"},
	{"Copa Brasil", "Nacional"},
	{"Sul-Americano de Clubes", "Continental"},
	{"Mundial de Clubes", "Internacional"},
	{"Jogos Olímpicos", "Internacional"},
}

var placements = []string{
	model.PlacementFirst, model.PlacementSecond, model.PlacementThird,
	model.PlacementParticipant, "Campeão", "Vice-campeão",
}

var awards = []string{"MVP", "Melhor Levantador", "Melhor Oposto", "Revelação", "Seleção do Campeonato", "Destaque"}

var positions = []model.Position{
	model.PositionSetter, model.PositionOpposite, model.PositionOutside,
	model.PositionMiddle, model.PositionLibero,
}

// generateProfiles creates cfg.Profiles careers with unique ids.
func generateProfiles(ctx context.Context, cfg *Config, stats *Stats) ([]*Profile, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Get().Info(ctx, "generating careers",
		logger.Int("profiles", cfg.Profiles),
		logger.Int64("seed", int64(seed)),
	)

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	profiles := make([]*Profile, cfg.Profiles)
	for i := range profiles {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		profiles[i] = generateCareer(rng, uuid.NewString())
	}

	stats.ProfilesGenerated = len(profiles)
	return profiles, nil
}

// generateCareer builds one plausible career: consecutive tenures, the last
// possibly ongoing, and achievements won at those clubs.
func generateCareer(rng *rand.Rand, id string) *Profile {
	p := &Profile{
		ID:       id,
		Name:     "Atleta " + id[:8],
		Kind:     model.ProfileAthlete,
		Position: positions[rng.IntN(len(positions))],
	}
	if rng.IntN(2) == 0 {
		p.State, p.City, p.Bio = "MG", "Belo Horizonte", "Gerado para teste de carga."
	}

	year := firstYear + rng.IntN(lastYear-firstYear-5)
	n := 1 + rng.IntN(maxTenures)
	for t := 0; t < n && year <= lastYear; t++ {
		length := rng.IntN(maxTenureYears)
		tenure := model.Tenure{
			ID:        fmt.Sprintf("%s-t%d", id, t),
			Club:      clubs[rng.IntN(len(clubs))],
			Role:      p.Position,
			StartYear: year,
		}
		end := year + length
		if t == n-1 && rng.IntN(3) == 0 {
			tenure.Ongoing = true
		} else {
			tenure.EndYear = model.Year(min(end, lastYear))
		}
		p.Tenures = append(p.Tenures, tenure)
		year = end + 1
	}

	count := rng.IntN(maxAchievements + 1)
	for a := 0; a < count; a++ {
		tenure := p.Tenures[rng.IntN(len(p.Tenures))]
		endYear := lastYear
		if tenure.EndYear != nil {
			endYear = *tenure.EndYear
		}
		comp := competitions[rng.IntN(len(competitions))]
		ach := model.Achievement{
			ID:              fmt.Sprintf("%s-a%d", id, a),
			Competition:     comp.name,
			CompetitionType: comp.kind,
			Year:            tenure.StartYear + rng.IntN(endYear-tenure.StartYear+1),
			Club:            tenure.Club,
		}
		if rng.IntN(individualOdds) == 0 {
			ach.Kind = model.KindIndividual
			ach.Award = awards[rng.IntN(len(awards))]
		} else {
			ach.Kind = model.KindCollective
			ach.Placement = placements[rng.IntN(len(placements))]
		}
		p.Achievements = append(p.Achievements, ach)
	}
	return p
}
