// Package badges evaluates a fixed catalog of unlockable badges against a
// career snapshot.
package badges

import (
	"time"

	"github.com/okian/podium/internal/domain/model"
)

// Group buckets badges for display.
type Group string

// Badge groups.
const (
	GroupCareer     Group = "carreira"
	GroupTitles     Group = "titulos"
	GroupIndividual Group = "individual"
	GroupSelection  Group = "selecao"
	GroupProfile    Group = "perfil"
)

// Tier is the visual weight of a badge.
type Tier string

// Badge tiers, lightest first.
const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Predicate decides whether a badge is unlocked for the snapshot.
type Predicate func(Snapshot) bool

// Definition is one catalog entry.
type Definition struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Group       Group     `json:"group"`
	Tier        Tier      `json:"tier"`
	Predicate   Predicate `json:"-"`
}

// Status is a definition annotated with its unlock flag.
type Status struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       Group  `json:"group"`
	Tier        Tier   `json:"tier"`
	Unlocked    bool   `json:"unlocked"`
}

// Snapshot is the read-only view predicates run against.
type Snapshot struct {
	Profile      *model.Profile
	Tenures      []model.Tenure
	Achievements []model.Achievement
	CurrentYear  int
}

// NewSnapshot copies the profile's lists so predicates cannot alias the
// caller's data. A nil profile yields an empty snapshot. A non-positive
// currentYear falls back to the wall clock.
func NewSnapshot(p *model.Profile, currentYear int) Snapshot {
	if currentYear <= 0 {
		currentYear = time.Now().Year()
	}
	return Snapshot{
		Profile:      p.Clone(),
		Tenures:      p.TenureList(),
		Achievements: p.AchievementList(),
		CurrentYear:  currentYear,
	}
}

// Evaluate runs every predicate against snap and returns one status per
// definition in catalog order. A nil or panicking predicate leaves the badge
// locked.
func Evaluate(catalog []Definition, snap Snapshot) []Status {
	out := make([]Status, 0, len(catalog))
	for _, d := range catalog {
		out = append(out, Status{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Group:       d.Group,
			Tier:        d.Tier,
			Unlocked:    safeEval(d.Predicate, snap),
		})
	}
	return out
}

// CountUnlocked returns how many statuses are unlocked.
func CountUnlocked(statuses []Status) int {
	n := 0
	for _, s := range statuses {
		if s.Unlocked {
			n++
		}
	}
	return n
}

func safeEval(p Predicate, snap Snapshot) (unlocked bool) {
	if p == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			unlocked = false
		}
	}()
	return p(snap)
}
