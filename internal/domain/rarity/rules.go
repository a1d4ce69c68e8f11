package rarity

import (
	"strings"

	"github.com/okian/podium/internal/domain/model"
)

// rule is one row of an ordered decision table. Rows are evaluated top-down
// against folded text and the first match wins.
type rule[T any] struct {
	match  func(folded string) bool
	result T
}

func decide[T any](table []rule[T], folded string, fallback T) T {
	for _, r := range table {
		if r.match(folded) {
			return r.result
		}
	}
	return fallback
}

func anyOf(keywords ...string) func(string) bool {
	return func(s string) bool {
		for _, k := range keywords {
			if strings.Contains(s, k) {
				return true
			}
		}
		return false
	}
}

var tierRules = []rule[CompetitionTier]{
	{anyOf("internacional", "international", "mundial", "world", "sul-americano", "sulamericano", "pan-americano", "panamericano", "olimpi"), TierInternational},
	{anyOf("nacional", "national", "brasil", "cbs", "superliga"), TierNational},
	{anyOf("estadual", "estado", "state"), TierState},
}

var individualKeywords = anyOf("mvp", "melhor", "best", "destaque", "revelacao", "artilheira")

// collectiveSubTypes buckets placement ranks parsed by model.ParsePlacement.
// Unlisted ranks, participant included, fall into bronze.
var collectiveSubTypes = map[model.PlacementRank]SubType{
	model.RankFirst:  SubTypeGold,
	model.RankSecond: SubTypeSilver,
}

var individualRules = []rule[SubType]{
	{anyOf("mvp"), SubTypeMVP},
	{anyOf("melhor", "best"), SubTypeBestPosition},
	{anyOf("revelacao", "revelation"), SubTypeRevelation},
}

var rarityRules = []struct {
	min    int
	rarity Rarity
}{
	{24, RarityMythic},
	{19, RarityLegendary},
	{14, RarityEpic},
	{9, RarityRare},
}
