// Package report runs the four analytics engines over one profile and bundles
// their outputs.
package report

import (
	"slices"
	"time"

	"github.com/okian/podium/internal/domain/badges"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/progression"
	"github.com/okian/podium/internal/domain/rarity"
	"github.com/okian/podium/internal/domain/timeline"
)

// Report is everything the presentation layer needs for a profile.
type Report struct {
	ProfileID      string             `json:"profile_id"`
	Timeline       []timeline.Entry   `json:"timeline"`
	Badges         []badges.Status    `json:"badges"`
	Progression    progression.Result `json:"progression"`
	Cards          []rarity.Card      `json:"cards"`
	UnlockedBadges int                `json:"unlocked_badges"`
}

// Option configures Build.
type Option func(*options)

type options struct {
	currentYear int
	catalog     []badges.Definition
}

// WithCurrentYear pins the year ongoing tenures run to. Zero uses the clock.
func WithCurrentYear(year int) Option {
	return func(o *options) {
		if year > 0 {
			o.currentYear = year
		}
	}
}

// WithCatalog replaces the default badge catalog.
func WithCatalog(catalog []badges.Definition) Option {
	return func(o *options) {
		if catalog != nil {
			o.catalog = catalog
		}
	}
}

// Build runs every engine over p. Each engine gets its own copy of the
// record lists; p is never modified.
func Build(p *model.Profile, opts ...Option) Report {
	o := options{currentYear: time.Now().Year()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.catalog == nil {
		o.catalog = badges.DefaultCatalog()
	}

	statuses := badges.Evaluate(o.catalog, badges.NewSnapshot(p, o.currentYear))
	r := Report{
		Timeline:       timeline.Build(p.TenureList(), p.AchievementList(), timeline.WithCurrentYear(o.currentYear)),
		Badges:         statuses,
		Progression:    progression.Compute(p.Clone()),
		Cards:          rarity.ClassifyAll(p.AchievementList()),
		UnlockedBadges: badges.CountUnlocked(statuses),
	}
	if p != nil {
		r.ProfileID = p.ID
	}
	return r
}

// Card returns the card for the achievement with the given id.
func (r Report) Card(achievementID string) (rarity.Card, bool) {
	for _, c := range r.Cards {
		if c.AchievementID == achievementID {
			return c, true
		}
	}
	return rarity.Card{}, false
}

// Clone returns a deep copy of r. Changes to the copy never reach r.
func (r Report) Clone() Report {
	c := r
	if r.Timeline != nil {
		c.Timeline = make([]timeline.Entry, len(r.Timeline))
		for i, e := range r.Timeline {
			c.Timeline[i] = e.Clone()
		}
	}
	c.Badges = slices.Clone(r.Badges)
	c.Cards = slices.Clone(r.Cards)
	c.Progression.Breakdown = slices.Clone(r.Progression.Breakdown)
	return c
}
