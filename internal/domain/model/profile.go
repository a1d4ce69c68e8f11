package model

// ProfileKind distinguishes athletes from organizations.
type ProfileKind string

// Profile kinds.
const (
	ProfileAthlete      ProfileKind = "athlete"
	ProfileOrganization ProfileKind = "organization"
)

// Profile is a person's record snapshot as handed over by the persistence layer.
type Profile struct {
	ID           string        `json:"id"`
	Name         string        `json:"name,omitempty"`
	Kind         ProfileKind   `json:"kind,omitempty"`
	Position     Position      `json:"position,omitempty"`
	State        string        `json:"state,omitempty"`
	City         string        `json:"city,omitempty"`
	Bio          string        `json:"bio,omitempty"`
	Tenures      []Tenure      `json:"tenures"`
	Achievements []Achievement `json:"achievements"`
}

// TenureList returns a copy of the tenures; nil profiles yield an empty list.
func (p *Profile) TenureList() []Tenure {
	if p == nil {
		return []Tenure{}
	}
	out := make([]Tenure, len(p.Tenures))
	for i, t := range p.Tenures {
		out[i] = t.Clone()
	}
	return out
}

// AchievementList returns a copy of the achievements; nil profiles yield an empty list.
func (p *Profile) AchievementList() []Achievement {
	if p == nil {
		return []Achievement{}
	}
	out := make([]Achievement, len(p.Achievements))
	copy(out, p.Achievements)
	return out
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Tenures = p.TenureList()
	c.Achievements = p.AchievementList()
	return &c
}

// Clone copies the tenure including its EndYear pointer target.
func (t Tenure) Clone() Tenure {
	if t.EndYear != nil {
		t.EndYear = Year(*t.EndYear)
	}
	return t
}

// Submission is a profile queued for asynchronous leaderboard analysis.
type Submission struct {
	ID          string   // dedupe key: profile id + content fingerprint
	Fingerprint string   // content hash of the profile
	Profile     *Profile // private copy owned by the queue
}
