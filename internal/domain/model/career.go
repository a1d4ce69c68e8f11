// Package model contains the career records shared by the analytics engines.
package model

import "strings"

// Position is the role a person held at a club.
type Position string

// Known positions. Unknown strings are kept as-is.
const (
	PositionSetter   Position = "levantador"
	PositionOpposite Position = "oposto"
	PositionOutside  Position = "ponteiro"
	PositionMiddle   Position = "central"
	PositionLibero   Position = "libero"
	PositionCoach    Position = "tecnico"
	PositionOther    Position = "outro"
)

// Tenure is one stint of a person at a club.
type Tenure struct {
	ID          string   `json:"id"`
	Club        string   `json:"club"`
	Role        Position `json:"role,omitempty"`
	StartYear   int      `json:"start_year"`
	EndYear     *int     `json:"end_year,omitempty"` // nil means ongoing
	Ongoing     bool     `json:"ongoing,omitempty"`
	Description string   `json:"description,omitempty"`
}

// IsOngoing reports whether the tenure has no fixed end.
func (t Tenure) IsOngoing() bool {
	return t.Ongoing || t.EndYear == nil
}

// EffectiveEnd returns the last year covered by the tenure. Ongoing tenures
// end at currentYear. An end before the start collapses to the start year.
func (t Tenure) EffectiveEnd(currentYear int) int {
	end := currentYear
	if !t.IsOngoing() {
		end = *t.EndYear
	}
	if end < t.StartYear {
		return t.StartYear
	}
	return end
}

// Covers reports whether year falls inside [StartYear, EffectiveEnd].
func (t Tenure) Covers(year, currentYear int) bool {
	return year >= t.StartYear && year <= t.EffectiveEnd(currentYear)
}

// ClubKey is the case-insensitive key used to match achievements to tenures.
func ClubKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Year returns a pointer to y, handy for Tenure.EndYear literals.
func Year(y int) *int {
	return &y
}
