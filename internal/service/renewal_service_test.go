package service

import (
	"testing"

	"renewal-tracking-be/internal/entity"
)

func validRecord() *entity.Renewal {
	return &entity.Renewal{
		Name:      "example.com",
		Kind:      entity.KindDomain,
		Provider:  "GoDaddy",
		StartDate: "2024-05-10",
		EndDate:   "2025-05-10",
		Cost:      12.99,
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*entity.Renewal)
		wantErr bool
	}{
		{name: "valid record", mutate: func(r *entity.Renewal) {}, wantErr: false},
		{name: "one-day term", mutate: func(r *entity.Renewal) {
			r.StartDate = "2025-05-10"
			r.EndDate = "2025-05-11"
		}, wantErr: false},
		{name: "missing name", mutate: func(r *entity.Renewal) { r.Name = "" }, wantErr: true},
		{name: "missing provider", mutate: func(r *entity.Renewal) { r.Provider = "" }, wantErr: true},
		{name: "unknown kind", mutate: func(r *entity.Renewal) { r.Kind = "appliance" }, wantErr: true},
		{name: "unknown status", mutate: func(r *entity.Renewal) { r.Status = "paused" }, wantErr: true},
		{name: "zero cost", mutate: func(r *entity.Renewal) { r.Cost = 0 }, wantErr: true},
		{name: "negative cost", mutate: func(r *entity.Renewal) { r.Cost = -1 }, wantErr: true},
		{name: "missing start date", mutate: func(r *entity.Renewal) { r.StartDate = "" }, wantErr: true},
		{name: "missing end date", mutate: func(r *entity.Renewal) { r.EndDate = "" }, wantErr: true},
		{name: "unparseable end date", mutate: func(r *entity.Renewal) { r.EndDate = "soon" }, wantErr: true},
		{name: "end equals start", mutate: func(r *entity.Renewal) {
			r.StartDate = "2025-05-10"
			r.EndDate = "2025-05-10"
		}, wantErr: true},
		{name: "end before start", mutate: func(r *entity.Renewal) {
			r.StartDate = "2025-05-10"
			r.EndDate = "2025-05-09"
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)

			err := validateRecord(rec)
			if tt.wantErr && err == nil {
				t.Error("validateRecord() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validateRecord() = %v, want nil", err)
			}
		})
	}
}
