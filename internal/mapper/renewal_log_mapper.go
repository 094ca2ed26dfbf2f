package mapper

import (
	"encoding/json"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/internal/model"
)

type RenewalLogMapper struct{}

func NewRenewalLogMapper() *RenewalLogMapper {
	return &RenewalLogMapper{}
}

func (m *RenewalLogMapper) ToEntity(l *model.RenewalLog) *entity.RenewalLog {
	if l == nil {
		return nil
	}
	log := &entity.RenewalLog{
		Id:          l.Id,
		RenewalId:   l.RenewalId,
		ServiceName: l.ServiceName,
		Action:      entity.RenewalLogAction(l.Action),
		PerformedBy: l.PerformedBy,
		UserEmail:   l.UserEmail,
		Timestamp:   l.Timestamp,
		Notes:       l.Notes,
	}
	if len(l.Changes) > 0 {
		// Malformed rows degrade to no change list rather than failing a read.
		_ = json.Unmarshal(l.Changes, &log.Changes)
	}
	return log
}

func (m *RenewalLogMapper) ToModel(log *entity.RenewalLog) *model.RenewalLog {
	if log == nil {
		return nil
	}
	mdl := &model.RenewalLog{
		Id:          log.Id,
		RenewalId:   log.RenewalId,
		ServiceName: log.ServiceName,
		Action:      string(log.Action),
		PerformedBy: log.PerformedBy,
		UserEmail:   log.UserEmail,
		Timestamp:   log.Timestamp,
		Notes:       log.Notes,
	}
	if len(log.Changes) > 0 {
		if data, err := json.Marshal(log.Changes); err == nil {
			mdl.Changes = data
		}
	}
	return mdl
}

func (m *RenewalLogMapper) ToEntities(models []*model.RenewalLog) []*entity.RenewalLog {
	entities := make([]*entity.RenewalLog, len(models))
	for i, mdl := range models {
		entities[i] = m.ToEntity(mdl)
	}
	return entities
}
