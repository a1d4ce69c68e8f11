package badges

import (
	"strings"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/textnorm"
)

const (
	journeymanClubs     = 3
	veteranSpanYears    = 10
	loyalTenureYears    = 5
	titleCollectorWins  = 5
	individualStarCount = 3
)

var (
	internationalKeywords = []string{"internacional", "mundial", "sul-americano", "pan-americano"}
	nationalKeywords      = []string{"brasileiro", "cbs"}
)

// DefaultCatalog returns the badge catalog. Each call returns a fresh slice.
func DefaultCatalog() []Definition {
	return []Definition{
		{ID: "first_club", Name: "Primeiro Clube", Description: "Registrou a primeira passagem por um clube.", Group: GroupCareer, Tier: TierBronze, Predicate: hasTenure},
		{ID: "journeyman", Name: "Rodado", Description: "Jogou por pelo menos 3 clubes diferentes.", Group: GroupCareer, Tier: TierSilver, Predicate: distinctClubs(journeymanClubs)},
		{ID: "veteran", Name: "Veterano", Description: "Carreira de 10 anos ou mais.", Group: GroupCareer, Tier: TierGold, Predicate: careerSpan(veteranSpanYears)},
		{ID: "loyal", Name: "Fiel", Description: "Ficou 5 anos ou mais no mesmo clube.", Group: GroupCareer, Tier: TierSilver, Predicate: longTenure(loyalTenureYears)},
		{ID: "first_title", Name: "Primeiro Título", Description: "Conquistou o primeiro lugar em uma competição.", Group: GroupTitles, Tier: TierBronze, Predicate: rankCount(1, isFirst)},
		{ID: "podium", Name: "Pódio", Description: "Terminou uma competição entre os três primeiros.", Group: GroupTitles, Tier: TierBronze, Predicate: rankCount(1, isPodium)},
		{ID: "title_collector", Name: "Colecionador de Títulos", Description: "Conquistou 5 títulos.", Group: GroupTitles, Tier: TierGold, Predicate: rankCount(titleCollectorWins, isFirst)},
		{ID: "state_champion", Name: "Campeão Estadual", Description: "Venceu um campeonato estadual.", Group: GroupTitles, Tier: TierSilver, Predicate: firstIn("estadual")},
		{ID: "national_champion", Name: "Campeão Nacional", Description: "Venceu um campeonato brasileiro.", Group: GroupTitles, Tier: TierGold, Predicate: firstIn(nationalKeywords...)},
		{ID: "international", Name: "Internacional", Description: "Disputou uma competição internacional.", Group: GroupTitles, Tier: TierPlatinum, Predicate: playedIn(internationalKeywords...)},
		{ID: "mvp", Name: "MVP", Description: "Eleito o jogador mais valioso de uma competição.", Group: GroupIndividual, Tier: TierGold, Predicate: awardContains("mvp")},
		{ID: "individual_star", Name: "Estrela Individual", Description: "Recebeu 3 prêmios individuais.", Group: GroupIndividual, Tier: TierPlatinum, Predicate: individualAwards(individualStarCount)},
		{ID: "state_callup", Name: "Seleção Estadual", Description: "Convocado para a seleção do estado.", Group: GroupSelection, Tier: TierGold, Predicate: competitionContains("seleção do estado")},
		{ID: "national_callup", Name: "Seleção Brasileira", Description: "Convocado para a seleção brasileira.", Group: GroupSelection, Tier: TierPlatinum, Predicate: competitionContains("seleção brasileira")},
		{ID: "complete_profile", Name: "Perfil Completo", Description: "Preencheu nome, posição, cidade, estado e bio.", Group: GroupProfile, Tier: TierBronze, Predicate: completeProfile},
	}
}

func hasTenure(s Snapshot) bool {
	return len(s.Tenures) > 0
}

func distinctClubs(n int) Predicate {
	return func(s Snapshot) bool {
		seen := make(map[string]struct{}, len(s.Tenures))
		for _, t := range s.Tenures {
			if k := textnorm.Fold(t.Club); k != "" {
				seen[k] = struct{}{}
			}
		}
		return len(seen) >= n
	}
}

func careerSpan(years int) Predicate {
	return func(s Snapshot) bool {
		if len(s.Tenures) == 0 {
			return false
		}
		first, last := s.Tenures[0].StartYear, s.Tenures[0].EffectiveEnd(s.CurrentYear)
		for _, t := range s.Tenures[1:] {
			first = min(first, t.StartYear)
			last = max(last, t.EffectiveEnd(s.CurrentYear))
		}
		return last-first >= years
	}
}

func longTenure(years int) Predicate {
	return func(s Snapshot) bool {
		for _, t := range s.Tenures {
			if t.EffectiveEnd(s.CurrentYear)-t.StartYear+1 >= years {
				return true
			}
		}
		return false
	}
}

func isFirst(r model.PlacementRank) bool { return r == model.RankFirst }

func isPodium(r model.PlacementRank) bool { return r.IsPodium() }

func rankCount(n int, match func(model.PlacementRank) bool) Predicate {
	return func(s Snapshot) bool {
		count := 0
		for _, a := range s.Achievements {
			if match(a.Rank()) {
				count++
			}
		}
		return count >= n
	}
}

func firstIn(keywords ...string) Predicate {
	return func(s Snapshot) bool {
		for _, a := range s.Achievements {
			if a.Rank() == model.RankFirst && textnorm.ContainsAny(a.Competition, keywords...) {
				return true
			}
		}
		return false
	}
}

func playedIn(keywords ...string) Predicate {
	return func(s Snapshot) bool {
		for _, a := range s.Achievements {
			if textnorm.ContainsAny(textnorm.Join(a.Competition, a.CompetitionType), keywords...) {
				return true
			}
		}
		return false
	}
}

func awardContains(keyword string) Predicate {
	return func(s Snapshot) bool {
		for _, a := range s.Achievements {
			if textnorm.Contains(a.Award, keyword) {
				return true
			}
		}
		return false
	}
}

func individualAwards(n int) Predicate {
	return func(s Snapshot) bool {
		count := 0
		for _, a := range s.Achievements {
			if a.IsIndividual() && a.HasAward() {
				count++
			}
		}
		return count >= n
	}
}

func competitionContains(phrase string) Predicate {
	return func(s Snapshot) bool {
		for _, a := range s.Achievements {
			if textnorm.Contains(a.Competition, phrase) {
				return true
			}
		}
		return false
	}
}

func completeProfile(s Snapshot) bool {
	p := s.Profile
	if p == nil {
		return false
	}
	for _, f := range []string{p.Name, string(p.Position), p.City, p.State, p.Bio} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}
