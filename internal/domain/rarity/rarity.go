// Package rarity classifies achievements into collectible cards with a
// score and a five-tier rarity.
package rarity

import (
	"fmt"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/textnorm"
)

// CompetitionTier is the reach of a competition.
type CompetitionTier string

// Competition tiers, widest first.
const (
	TierInternational CompetitionTier = "international"
	TierNational      CompetitionTier = "national"
	TierState         CompetitionTier = "state"
	TierRegional      CompetitionTier = "regional"
)

// SubType is the placement bucket of a collective card or the award bucket
// of an individual one.
type SubType string

// Collective and individual sub-types.
const (
	SubTypeGold         SubType = "gold"
	SubTypeSilver       SubType = "silver"
	SubTypeBronze       SubType = "bronze"
	SubTypeMVP          SubType = "mvp"
	SubTypeBestPosition SubType = "best_position"
	SubTypeHighlight    SubType = "highlight"
	SubTypeRevelation   SubType = "revelation"
)

// Rarity is the final card tier.
type Rarity string

// Rarities, lowest first.
const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// MaxDominanceBonus caps the repeat bonus.
const MaxDominanceBonus = 5

var tierScores = map[CompetitionTier]int{
	TierInternational: 15,
	TierNational:      10,
	TierState:         6,
	TierRegional:      3,
}

var subTypeScores = map[SubType]int{
	SubTypeGold:         6,
	SubTypeSilver:       4,
	SubTypeBronze:       2,
	SubTypeMVP:          10,
	SubTypeBestPosition: 7,
	SubTypeHighlight:    5,
	SubTypeRevelation:   3,
}

var dominanceLabels = map[int]string{
	2: "Bicampeão",
	3: "Tricampeão",
	4: "Tetracampeão",
	5: "Pentacampeão",
	6: "Hexacampeão",
	7: "Heptacampeão",
	8: "Octacampeão",
}

// Dominance describes how often the same competition repeats in a career.
type Dominance struct {
	Count    int    `json:"count"`
	Dominant bool   `json:"dominant"`
	Label    string `json:"label,omitempty"`
	Bonus    int    `json:"bonus"`
}

// Score is the points breakdown of a card.
type Score struct {
	Competition int `json:"competition"`
	Placement   int `json:"placement"`
	Dominance   int `json:"dominance"`
	Total       int `json:"total"`
}

// Card is a classified achievement.
type Card struct {
	AchievementID string                `json:"achievement_id"`
	Tier          CompetitionTier       `json:"tier"`
	Kind          model.AchievementKind `json:"kind"`
	SubType       SubType               `json:"sub_type"`
	Dominance     Dominance             `json:"dominance"`
	Score         Score                 `json:"score"`
	Rarity        Rarity                `json:"rarity"`
}

// Classify builds the card for a, using all for dominance.
func Classify(a model.Achievement, all []model.Achievement) Card {
	tier := TierOf(a)
	kind := KindOf(a)
	sub := SubTypeOf(a, kind)
	dom := DominanceOf(a, all)

	score := Score{
		Competition: tierScores[tier],
		Placement:   subTypeScores[sub],
		Dominance:   dom.Bonus,
	}
	score.Total = score.Competition + score.Placement + score.Dominance

	return Card{
		AchievementID: a.ID,
		Tier:          tier,
		Kind:          kind,
		SubType:       sub,
		Dominance:     dom,
		Score:         score,
		Rarity:        RarityFor(score.Total),
	}
}

// ClassifyAll returns one card per achievement, in input order.
func ClassifyAll(all []model.Achievement) []Card {
	out := make([]Card, 0, len(all))
	for _, a := range all {
		out = append(out, Classify(a, all))
	}
	return out
}

// TierOf classifies the competition reach from its type and name.
func TierOf(a model.Achievement) CompetitionTier {
	return decide(tierRules, textnorm.Join(a.CompetitionType, a.Competition), TierRegional)
}

// KindOf decides whether a card is individual, preferring keywords in the
// placement and award over the record's own kind field.
func KindOf(a model.Achievement) model.AchievementKind {
	if individualKeywords(textnorm.Join(a.Placement, a.Award)) || a.IsIndividual() {
		return model.KindIndividual
	}
	return model.KindCollective
}

// SubTypeOf buckets the placement or award. Participants fall into bronze.
func SubTypeOf(a model.Achievement, kind model.AchievementKind) SubType {
	if kind == model.KindIndividual {
		return decide(individualRules, textnorm.Join(a.Award, a.Placement), SubTypeHighlight)
	}
	if st, ok := collectiveSubTypes[a.Rank()]; ok {
		return st
	}
	return SubTypeBronze
}

// DominanceOf counts the achievements in all that share a's competition key.
// When all holds no record with a's ID, a itself is counted too.
func DominanceOf(a model.Achievement, all []model.Achievement) Dominance {
	key := dominanceKey(a)
	count := 0
	self := false
	for _, other := range all {
		if dominanceKey(other) == key {
			count++
		}
		if other.ID == a.ID {
			self = true
		}
	}
	if !self {
		count++
	}

	d := Dominance{Count: count}
	if count >= 2 {
		d.Dominant = true
		d.Label = DominanceLabel(count)
		d.Bonus = min(count, MaxDominanceBonus)
	}
	return d
}

// DominanceLabel names a repeat count. Counts under 2 have no label.
func DominanceLabel(count int) string {
	if count < 2 {
		return ""
	}
	if l, ok := dominanceLabels[count]; ok {
		return l
	}
	return fmt.Sprintf("%d× Campeão", count)
}

// RarityFor maps a total score onto the rarity ladder.
func RarityFor(total int) Rarity {
	for _, r := range rarityRules {
		if total >= r.min {
			return r.rarity
		}
	}
	return RarityCommon
}

type key struct {
	competition, competitionType, category, state string
}

func dominanceKey(a model.Achievement) key {
	return key{
		competition:     textnorm.Fold(a.Competition),
		competitionType: textnorm.Fold(a.CompetitionType),
		category:        textnorm.Fold(a.Category),
		state:           textnorm.Fold(a.State),
	}
}
