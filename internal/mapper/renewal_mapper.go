package mapper

import (
	"time"

	"github.com/google/uuid"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/internal/model"
	"renewal-tracking-be/pkg/dateutil"
)

// RenewalMapper translates between the canonical record (wire-format string
// dates, string ids) and the persistence model (uuid ids, typed dates).
type RenewalMapper struct{}

func NewRenewalMapper() *RenewalMapper {
	return &RenewalMapper{}
}

func (m *RenewalMapper) ToEntity(r *model.Renewal) *entity.Renewal {
	if r == nil {
		return nil
	}
	rec := &entity.Renewal{
		Id:                 r.Id.String(),
		OwnerId:            r.UserId.String(),
		Name:               r.Name,
		Kind:               entity.RenewalKind(r.Kind),
		Provider:           r.Provider,
		StartDate:          wireDate(r.StartDate),
		EndDate:            wireDate(r.EndDate),
		Cost:               r.Cost,
		Status:             entity.RenewalStatus(r.Status),
		Notes:              r.Notes,
		ReminderDaysBefore: r.ReminderDaysBefore,
	}
	if r.ReminderChannel != nil {
		ch := entity.ReminderChannel(*r.ReminderChannel)
		rec.ReminderChannel = &ch
	}
	if len(r.Extra) > 0 {
		rec.Extra = map[string]any(r.Extra)
	}
	return rec
}

func (m *RenewalMapper) ToModel(rec *entity.Renewal) *model.Renewal {
	if rec == nil {
		return nil
	}
	mdl := &model.Renewal{
		Name:               rec.Name,
		Kind:               string(rec.Kind),
		Provider:           rec.Provider,
		StartDate:          modelDate(rec.StartDate),
		EndDate:            modelDate(rec.EndDate),
		Cost:               rec.Cost,
		Status:             string(rec.Status),
		Notes:              rec.Notes,
		ReminderDaysBefore: rec.ReminderDaysBefore,
	}
	if id, err := uuid.Parse(rec.Id); err == nil {
		mdl.Id = id
	}
	if owner, err := uuid.Parse(rec.OwnerId); err == nil {
		mdl.UserId = owner
	}
	if rec.ReminderChannel != nil {
		s := string(*rec.ReminderChannel)
		mdl.ReminderChannel = &s
	}
	if len(rec.Extra) > 0 {
		mdl.Extra = rec.Extra
	}
	return mdl
}

func (m *RenewalMapper) ToEntities(models []*model.Renewal) []*entity.Renewal {
	entities := make([]*entity.Renewal, len(models))
	for i, mdl := range models {
		entities[i] = m.ToEntity(mdl)
	}
	return entities
}

func wireDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func modelDate(s string) *time.Time {
	t, ok := dateutil.Parse(s)
	if !ok {
		return nil
	}
	d := dateutil.Midnight(t)
	return &d
}
