// Package timeline reconciles club tenures and achievements into a single
// chronological sequence, most recent year first.
package timeline

import (
	"sort"
	"time"

	"github.com/okian/podium/internal/domain/model"
)

// Kind tags a timeline entry.
type Kind string

// Entry kinds.
const (
	KindYear        Kind = "year"
	KindTenure      Kind = "tenure"
	KindAchievement Kind = "achievement"
)

// Entry is one row of the reconciled timeline. Tenure and Achievement point
// at copies owned by the result, never at the caller's records.
type Entry struct {
	Kind        Kind               `json:"kind"`
	Year        int                `json:"year"`
	Tenure      *model.Tenure      `json:"tenure,omitempty"`
	Achievement *model.Achievement `json:"achievement,omitempty"`
}

// Clone returns a copy of e with its own Tenure and Achievement.
func (e Entry) Clone() Entry {
	if e.Tenure != nil {
		t := e.Tenure.Clone()
		e.Tenure = &t
	}
	if e.Achievement != nil {
		a := *e.Achievement
		e.Achievement = &a
	}
	return e
}

// Option configures a Build call.
type Option func(*builder)

// WithCurrentYear pins the year used as the end of ongoing tenures.
func WithCurrentYear(year int) Option {
	return func(b *builder) {
		if year > 0 {
			b.currentYear = year
		}
	}
}

// WithClock sets the clock used to derive the current year.
func WithClock(now func() time.Time) Option {
	return func(b *builder) {
		if now != nil {
			b.currentYear = now().Year()
		}
	}
}

type builder struct {
	currentYear int
}

// achievementKey indexes achievements by year and case-insensitive club name.
type achievementKey struct {
	year int
	club string
}

// Build expands tenures and achievements into year markers, tenures and the
// achievements attributed to each tenure. Achievements whose club matches no
// tenure active in their year are left out. The output is deterministic for
// identical input.
func Build(tenures []model.Tenure, achievements []model.Achievement, opts ...Option) []Entry {
	b := &builder{currentYear: time.Now().Year()}
	for _, opt := range opts {
		opt(b)
	}

	ts := make([]model.Tenure, len(tenures))
	copy(ts, tenures)
	// Tenures are listed by their own start year, ties broken by id. Sorting
	// once keeps that order for every year they cover.
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].StartYear != ts[j].StartYear {
			return ts[i].StartYear < ts[j].StartYear
		}
		return ts[i].ID < ts[j].ID
	})

	years := make(map[int]struct{})
	for _, t := range ts {
		for y := t.StartYear; y <= t.EffectiveEnd(b.currentYear); y++ {
			years[y] = struct{}{}
		}
	}

	index := make(map[achievementKey][]model.Achievement)
	for _, a := range achievements {
		years[a.Year] = struct{}{}
		key := achievementKey{year: a.Year, club: model.ClubKey(a.Club)}
		index[key] = append(index[key], a)
	}
	for key := range index {
		group := index[key]
		sort.SliceStable(group, func(i, j int) bool { return group[i].ID < group[j].ID })
	}

	ordered := make([]int, 0, len(years))
	for y := range years {
		ordered = append(ordered, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))

	out := make([]Entry, 0, len(ordered)+len(ts)+len(achievements))
	for _, year := range ordered {
		out = append(out, Entry{Kind: KindYear, Year: year})
		for _, t := range ts {
			if !t.Covers(year, b.currentYear) {
				continue
			}
			tenure := t
			if t.EndYear != nil {
				tenure.EndYear = model.Year(*t.EndYear)
			}
			out = append(out, Entry{Kind: KindTenure, Year: year, Tenure: &tenure})
			for _, a := range index[achievementKey{year: year, club: model.ClubKey(t.Club)}] {
				achievement := a
				out = append(out, Entry{Kind: KindAchievement, Year: year, Achievement: &achievement})
			}
		}
	}
	return out
}

// Achievements returns the achievement entries of a timeline in order.
func Achievements(entries []Entry) []model.Achievement {
	out := make([]model.Achievement, 0)
	for _, e := range entries {
		if e.Kind == KindAchievement && e.Achievement != nil {
			out = append(out, *e.Achievement)
		}
	}
	return out
}
