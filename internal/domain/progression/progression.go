// Package progression turns a career record into experience points and a
// level on a fixed ladder.
package progression

import (
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/textnorm"
)

// Point values for each rule.
const (
	XPPerTenure         = 5
	XPFirstPlace        = 80
	XPSecondPlace       = 50
	XPThirdPlace        = 30
	XPParticipant       = 10
	XPIndividualAward   = 150
	XPStateTitle        = 120
	XPNationalTitle     = 200
	XPStateSelection    = 100
	XPNationalSelection = 250
	maxProgress         = 100
)

// Keywords matched against the folded competition name.
var (
	stateKeywords           = []string{"estadual"}
	nationalKeywords        = []string{"cbs", "brasileiro"}
	stateSelectionPhrase    = "seleção do estado"
	nationalSelectionPhrase = "seleção brasileira"
)

// Rule names reported in a Breakdown.
const (
	RuleTenure            = "tenure"
	RulePlacement         = "placement"
	RuleIndividualAward   = "individual_award"
	RuleStateTitle        = "state_title"
	RuleNationalTitle     = "national_title"
	RuleStateSelection    = "state_selection"
	RuleNationalSelection = "national_selection"
)

// Level is one rung of the ladder.
type Level struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	MinXP int    `json:"min_xp"`
}

// ladder is ordered by strictly increasing MinXP.
var ladder = [...]Level{
	{Level: 1, Title: "Iniciante", MinXP: 0},
	{Level: 2, Title: "Amador", MinXP: 200},
	{Level: 3, Title: "Competidor", MinXP: 450},
	{Level: 4, Title: "Destaque", MinXP: 800},
	{Level: 5, Title: "Profissional", MinXP: 1200},
	{Level: 6, Title: "Elite", MinXP: 1700},
	{Level: 7, Title: "Ídolo", MinXP: 2100},
	{Level: 8, Title: "Lenda", MinXP: 2600},
}

// Levels returns a copy of the level ladder.
func Levels() []Level {
	out := make([]Level, len(ladder))
	copy(out, ladder[:])
	return out
}

// Contribution is the XP a single rule added for one record.
type Contribution struct {
	Rule     string `json:"rule"`
	RecordID string `json:"record_id,omitempty"`
	Points   int    `json:"points"`
}

// Result is the progression bundle for a profile.
type Result struct {
	XP             int            `json:"xp"`
	Level          int            `json:"level"`
	Title          string         `json:"title"`
	CurrentLevelXP int            `json:"current_level_xp"`
	NextLevelXP    int            `json:"next_level_xp"`
	Progress       int            `json:"progress"`
	Breakdown      []Contribution `json:"breakdown"`
}

// Compute sums the point table over the profile and maps the total onto the
// ladder. A nil profile is level 1 with no progress.
func Compute(p *model.Profile) Result {
	breakdown := contributions(p)
	xp := 0
	for _, c := range breakdown {
		xp += c.Points
	}
	r := LevelFor(xp)
	r.Breakdown = breakdown
	return r
}

// LevelFor maps an XP total onto the ladder. Negative totals are treated as 0.
func LevelFor(xp int) Result {
	if xp < 0 {
		xp = 0
	}
	idx := 0
	for i, l := range ladder {
		if l.MinXP <= xp {
			idx = i
		}
	}
	current := ladder[idx]
	next := current
	if idx+1 < len(ladder) {
		next = ladder[idx+1]
	}

	progress := maxProgress
	if next.MinXP > current.MinXP {
		progress = (xp - current.MinXP) * maxProgress / (next.MinXP - current.MinXP)
	}
	progress = max(0, min(maxProgress, progress))

	return Result{
		XP:             xp,
		Level:          current.Level,
		Title:          current.Title,
		CurrentLevelXP: current.MinXP,
		NextLevelXP:    next.MinXP,
		Progress:       progress,
		Breakdown:      []Contribution{},
	}
}

// contributions lists every rule that fired, in record order.
func contributions(p *model.Profile) []Contribution {
	out := make([]Contribution, 0)
	if p == nil {
		return out
	}
	for _, t := range p.Tenures {
		out = append(out, Contribution{Rule: RuleTenure, RecordID: t.ID, Points: XPPerTenure})
	}

	var stateSelection, nationalSelection bool
	for _, a := range p.Achievements {
		rank := a.Rank()
		if pts := placementPoints(rank); pts > 0 {
			out = append(out, Contribution{Rule: RulePlacement, RecordID: a.ID, Points: pts})
		}
		if a.IsIndividual() && a.HasAward() {
			out = append(out, Contribution{Rule: RuleIndividualAward, RecordID: a.ID, Points: XPIndividualAward})
		}
		if rank == model.RankFirst && textnorm.ContainsAny(a.Competition, stateKeywords...) {
			out = append(out, Contribution{Rule: RuleStateTitle, RecordID: a.ID, Points: XPStateTitle})
		}
		if rank == model.RankFirst && textnorm.ContainsAny(a.Competition, nationalKeywords...) {
			out = append(out, Contribution{Rule: RuleNationalTitle, RecordID: a.ID, Points: XPNationalTitle})
		}
		if !stateSelection && textnorm.Contains(a.Competition, stateSelectionPhrase) {
			stateSelection = true
			out = append(out, Contribution{Rule: RuleStateSelection, RecordID: a.ID, Points: XPStateSelection})
		}
		if !nationalSelection && textnorm.Contains(a.Competition, nationalSelectionPhrase) {
			nationalSelection = true
			out = append(out, Contribution{Rule: RuleNationalSelection, RecordID: a.ID, Points: XPNationalSelection})
		}
	}
	return out
}

func placementPoints(rank model.PlacementRank) int {
	switch rank {
	case model.RankFirst:
		return XPFirstPlace
	case model.RankSecond:
		return XPSecondPlace
	case model.RankThird:
		return XPThirdPlace
	case model.RankParticipant:
		return XPParticipant
	default:
		return 0
	}
}
