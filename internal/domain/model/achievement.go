package model

import (
	"slices"
	"strings"
	"unicode"

	"github.com/okian/podium/internal/domain/textnorm"
)

// AchievementKind distinguishes team results from individual awards.
type AchievementKind string

// Achievement kinds.
const (
	KindCollective AchievementKind = "collective"
	KindIndividual AchievementKind = "individual"
)

// Canonical placement labels as entered by profile owners.
const (
	PlacementFirst       = "1º Lugar"
	PlacementSecond      = "2º Lugar"
	PlacementThird       = "3º Lugar"
	PlacementParticipant = "Participante"
)

// PlacementRank is the ordered bucket of a collective placement.
type PlacementRank int

// Placement ranks, best first. RankNone means the label is empty or unknown.
const (
	RankNone PlacementRank = iota
	RankFirst
	RankSecond
	RankThird
	RankParticipant
)

// String returns a stable name for the rank.
func (r PlacementRank) String() string {
	switch r {
	case RankFirst:
		return "first"
	case RankSecond:
		return "second"
	case RankThird:
		return "third"
	case RankParticipant:
		return "participant"
	default:
		return "none"
	}
}

// IsPodium reports whether the rank is first, second or third.
func (r PlacementRank) IsPodium() bool {
	return r == RankFirst || r == RankSecond || r == RankThird
}

// Achievement is one recorded result, title or individual award.
type Achievement struct {
	ID              string          `json:"id"`
	Competition     string          `json:"competition"`
	CompetitionID   string          `json:"competition_id,omitempty"`
	CompetitionType string          `json:"competition_type,omitempty"`
	Category        string          `json:"category,omitempty"`
	State           string          `json:"state,omitempty"`
	City            string          `json:"city,omitempty"`
	Year            int             `json:"year"`
	Club            string          `json:"club"`
	Kind            AchievementKind `json:"kind"`
	Placement       string          `json:"placement,omitempty"`
	Award           string          `json:"award,omitempty"`
}

// IsIndividual reports whether the record is flagged as an individual award.
func (a Achievement) IsIndividual() bool {
	return AchievementKind(strings.ToLower(strings.TrimSpace(string(a.Kind)))) == KindIndividual
}

// HasAward reports whether an award label is present.
func (a Achievement) HasAward() bool {
	return strings.TrimSpace(a.Award) != ""
}

// Rank classifies the placement label into a PlacementRank.
func (a Achievement) Rank() PlacementRank {
	return ParsePlacement(a.Placement)
}

// placementRule is one row of the placement decision table. Ordinals are
// token sequences matched on word boundaries, so "11º" never reads as "1º".
// Words match anywhere in the folded label. A row is skipped when the label
// holds any of its unless words.
type placementRule struct {
	rank     PlacementRank
	ordinals [][]string
	words    []string
	unless   []string
}

// Rows are evaluated top-down and the first match wins.
var placementRules = []placementRule{
	{
		rank:     RankFirst,
		ordinals: [][]string{{"1o"}, {"1a"}, {"1st"}, {"1", "lugar"}},
		words:    []string{"primeiro", "primeira", "first", "campea", "champion", "ouro", "gold"},
		unless:   []string{"vice", "runner"},
	},
	{
		rank:     RankSecond,
		ordinals: [][]string{{"2o"}, {"2a"}, {"2nd"}, {"2", "lugar"}},
		words:    []string{"segundo", "segunda", "second", "vice", "runner", "prata", "silver"},
	},
	{
		rank:     RankThird,
		ordinals: [][]string{{"3o"}, {"3a"}, {"3rd"}, {"3", "lugar"}},
		words:    []string{"terceiro", "terceira", "third", "bronze"},
	},
	{
		rank:  RankParticipant,
		words: []string{"particip"},
	},
}

func (r placementRule) matches(folded string, tokens []string) bool {
	for _, w := range r.unless {
		if strings.Contains(folded, w) {
			return false
		}
	}
	for _, seq := range r.ordinals {
		if hasSequence(tokens, seq) {
			return true
		}
	}
	for _, w := range r.words {
		if strings.Contains(folded, w) {
			return true
		}
	}
	return false
}

func hasSequence(tokens, seq []string) bool {
	for i := 0; i+len(seq) <= len(tokens); i++ {
		if slices.Equal(tokens[i:i+len(seq)], seq) {
			return true
		}
	}
	return false
}

// ParsePlacement maps a free-text placement label to its rank. Labels are
// folded with textnorm, so "1º Lugar", "1o lugar", "1st" and a decomposed
// "Campeão" all agree.
func ParsePlacement(label string) PlacementRank {
	folded := textnorm.Fold(label)
	if folded == "" {
		return RankNone
	}
	tokens := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, row := range placementRules {
		if row.matches(folded, tokens) {
			return row.rank
		}
	}
	return RankNone
}
