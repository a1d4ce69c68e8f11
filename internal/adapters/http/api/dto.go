package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/podium/internal/domain/model"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// tenureRequest mirrors the OpenAPI Tenure schema.
type tenureRequest struct {
	ID          string `json:"id"`
	Club        string `json:"club" validate:"max=200"`
	Role        string `json:"role,omitempty" validate:"omitempty,max=50"`
	StartYear   int    `json:"start_year" validate:"omitempty,min=1850,max=2200"`
	EndYear     *int   `json:"end_year,omitempty" validate:"omitempty,min=1850,max=2200"`
	Ongoing     bool   `json:"ongoing,omitempty"`
	Description string `json:"description,omitempty"`
}

// achievementRequest mirrors the OpenAPI Achievement schema.
type achievementRequest struct {
	ID              string `json:"id" validate:"required,max=200"`
	Competition     string `json:"competition" validate:"max=300"`
	CompetitionID   string `json:"competition_id,omitempty"`
	CompetitionType string `json:"competition_type,omitempty"`
	Category        string `json:"category,omitempty"`
	State           string `json:"state,omitempty"`
	City            string `json:"city,omitempty"`
	Year            int    `json:"year" validate:"omitempty,min=1850,max=2200"`
	Club            string `json:"club" validate:"max=200"`
	Kind            string `json:"kind,omitempty" validate:"omitempty,oneof=collective individual"`
	Placement       string `json:"placement,omitempty" validate:"max=100"`
	Award           string `json:"award,omitempty" validate:"max=200"`
}

// profileRequest mirrors the OpenAPI Profile schema.
type profileRequest struct {
	ID           string               `json:"id" validate:"required,max=200"`
	Name         string               `json:"name,omitempty"`
	Kind         string               `json:"kind,omitempty" validate:"omitempty,oneof=athlete organization"`
	Position     string               `json:"position,omitempty"`
	State        string               `json:"state,omitempty"`
	City         string               `json:"city,omitempty"`
	Bio          string               `json:"bio,omitempty"`
	Tenures      []tenureRequest      `json:"tenures" validate:"max=500,dive"`
	Achievements []achievementRequest `json:"achievements" validate:"max=2000,dive"`
}

// cardRequest is the body of POST /cards.
type cardRequest struct {
	Profile       *profileRequest `json:"profile" validate:"required"`
	AchievementID string          `json:"achievement_id" validate:"required"`
}

func (p profileRequest) toModel() *model.Profile {
	out := &model.Profile{
		ID:           strings.TrimSpace(p.ID),
		Name:         p.Name,
		Kind:         model.ProfileKind(p.Kind),
		Position:     model.Position(p.Position),
		State:        p.State,
		City:         p.City,
		Bio:          p.Bio,
		Tenures:      make([]model.Tenure, len(p.Tenures)),
		Achievements: make([]model.Achievement, len(p.Achievements)),
	}
	for i, t := range p.Tenures {
		out.Tenures[i] = model.Tenure{
			ID:          t.ID,
			Club:        t.Club,
			Role:        model.Position(t.Role),
			StartYear:   t.StartYear,
			Ongoing:     t.Ongoing,
			Description: t.Description,
		}
		if t.EndYear != nil {
			out.Tenures[i].EndYear = model.Year(*t.EndYear)
		}
	}
	for i, a := range p.Achievements {
		out.Achievements[i] = model.Achievement{
			ID:              a.ID,
			Competition:     a.Competition,
			CompetitionID:   a.CompetitionID,
			CompetitionType: a.CompetitionType,
			Category:        a.Category,
			State:           a.State,
			City:            a.City,
			Year:            a.Year,
			Club:            a.Club,
			Kind:            model.AchievementKind(a.Kind),
			Placement:       a.Placement,
			Award:           a.Award,
		}
	}
	return out
}

// validateRequest runs struct validation and flattens the result into one
// readable message.
func validateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
