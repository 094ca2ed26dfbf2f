package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"renewal-tracking-be/internal/dto"
	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/internal/repository/specification"
	"renewal-tracking-be/internal/repository/unitofwork"
	"renewal-tracking-be/pkg/dateutil"
	"renewal-tracking-be/pkg/events"
	pktNats "renewal-tracking-be/pkg/nats"
	"renewal-tracking-be/pkg/renewal"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type IRenewalService interface {
	List(ctx context.Context, userId uuid.UUID, req *dto.RenewalListRequest) ([]map[string]any, error)
	ListAll(ctx context.Context, req *dto.RenewalListRequest) ([]map[string]any, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID, shape renewal.Shape) (map[string]any, error)
	Create(ctx context.Context, userId uuid.UUID, userEmail string, payload map[string]any) (map[string]any, error)
	Update(ctx context.Context, userId uuid.UUID, userEmail string, id uuid.UUID, patch map[string]any) (map[string]any, error)
	Delete(ctx context.Context, userId uuid.UUID, userEmail string, id uuid.UUID) error
	UpdateStatus(ctx context.Context, userId uuid.UUID, userEmail string, id uuid.UUID, req *dto.UpdateStatusRequest) (map[string]any, error)
	Stats(ctx context.Context, userId uuid.UUID) (*dto.RenewalStatsResponse, error)
	AddLog(ctx context.Context, userId uuid.UUID, userEmail string, id uuid.UUID, req *dto.AddLogRequest) error
	Logs(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]*dto.RenewalLogResponse, error)
}

type renewalService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	statsCache       *cache.Cache
}

func NewRenewalService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IRenewalService {
	return &renewalService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		statsCache:       cache.New(1*time.Minute, 5*time.Minute),
	}
}

// ParseShape maps the shape query param to a wire shape, defaulting to the
// current convention.
func ParseShape(s string) renewal.Shape {
	if s == string(renewal.ShapeLegacy) {
		return renewal.ShapeLegacy
	}
	return renewal.ShapeCurrent
}

func (s *renewalService) List(ctx context.Context, userId uuid.UUID, req *dto.RenewalListRequest) ([]map[string]any, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.RenewalRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	return s.present(records, req), nil
}

// ListAll lists every user's renewals. Callers gate this behind the admin role.
func (s *renewalService) ListAll(ctx context.Context, req *dto.RenewalListRequest) ([]map[string]any, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.RenewalRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.present(records, req), nil
}

func (s *renewalService) present(records []*entity.Renewal, req *dto.RenewalListRequest) []map[string]any {
	filters := renewal.Filters{
		Kind:     req.Type,
		Status:   req.Status,
		Provider: req.Provider,
		Search:   req.Search,
	}
	if req.From != "" || req.To != "" {
		filters.Range = &renewal.DateRange{Start: req.From, End: req.To}
	}
	records = renewal.Filter(records, filters)

	if req.SortBy != "" {
		dir := renewal.SortAsc
		if req.SortDir == string(renewal.SortDesc) {
			dir = renewal.SortDesc
		}
		records = renewal.Sort(records, renewal.SortKey(req.SortBy), dir)
	}

	shape := ParseShape(req.Shape)
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, renewal.ToWire(rec, shape))
	}
	return out
}

func (s *renewalService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID, shape renewal.Shape) (map[string]any, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rec, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return renewal.ToWire(rec, shape), nil
}

func (s *renewalService) Create(ctx context.Context, userId uuid.UUID, userEmail string, payload map[string]any) (map[string]any, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rec := renewal.ToCanonical(payload)
	rec.Id = uuid.New().String()
	rec.OwnerId = userId.String()

	if err := validateRecord(rec); err != nil {
		return nil, err
	}

	// Explicit sticky statuses survive creation; everything else is derived.
	if !renewal.IsSticky(rec.Status) {
		rec.Status = renewal.DeriveStatusToday(rec.EndDate)
	}

	if err := uow.RenewalRepository().Create(ctx, rec); err != nil {
		return nil, err
	}

	s.invalidateStats(userId)
	s.audit(ctx, dto.RenewalAuditMessage{
		RenewalId:   rec.Id,
		ServiceName: rec.Name,
		Action:      string(entity.LogActionCreated),
		PerformedBy: userId.String(),
		UserEmail:   userEmail,
		OccurredAt:  time.Now(),
	})
	s.publishEvent(ctx, events.NewRenewalCreated(rec.Id, rec.Name, userId.String()))

	return renewal.ToWire(rec, renewal.ShapeCurrent), nil
}

func (s *renewalService) Update(ctx context.Context, userId uuid.UUID, userEmail string, id uuid.UUID, patch map[string]any) (map[string]any, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	normalized := renewal.NormalizeKeys(patch, renewal.ShapeCurrent)
	_, statusPatched := normalized["status"]

	merged := renewal.ToWire(existing, renewal.ShapeCurrent)
	for k, v := range normalized {
		merged[k] = v
	}

	updated := renewal.ToCanonical(merged)
	updated.Id = existing.Id
	updated.OwnerId = existing.OwnerId

	if err := validateRecord(updated); err != nil {
		return nil, err
	}

	if !statusPatched {
		if renewal.IsSticky(existing.Status) {
			updated.Status = existing.Status
		} else {
			updated.Status = renewal.DeriveStatusToday(updated.EndDate)
		}
	}

	if err := uow.RenewalRepository().Update(ctx, updated); err != nil {
		return nil, err
	}

	changes := diffRecords(existing, updated)

	s.invalidateStats(userId)
	s.audit(ctx, dto.RenewalAuditMessage{
		RenewalId:   updated.Id,
		ServiceName: updated.Name,
		Action:      string(entity.LogActionUpdated),
		PerformedBy: userId.String(),
		UserEmail:   userEmail,
		Changes:     changes,
		OccurredAt:  time.Now(),
	})
	s.publishEvent(ctx, events.NewRenewalUpdated(updated.Id, updated.Name, userId.String()))

	return renewal.ToWire(updated, renewal.ShapeCurrent), nil
}

func (s *renewalService) Delete(ctx context.Context, userId uuid.UUID, userEmail string, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("renewal not found")
	}

	if err := uow.RenewalRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateStats(userId)
	s.audit(ctx, dto.RenewalAuditMessage{
		RenewalId:   existing.Id,
		ServiceName: existing.Name,
		Action:      string(entity.LogActionDeleted),
		PerformedBy: userId.String(),
		UserEmail:   userEmail,
		OccurredAt:  time.Now(),
	})
	s.publishEvent(ctx, events.NewRenewalDeleted(existing.Id, existing.Name, userId.String()))

	return nil
}

func (s *renewalService) UpdateStatus(ctx context.Context, userId uuid.UUID, userEmail string, id uuid.UUID, req *dto.UpdateStatusRequest) (map[string]any, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	updated := existing.Clone()
	oldStatus := existing.Status

	action := entity.LogActionStatusChanged
	if req.Status == "renewed" {
		action = entity.LogActionRenewed
		applyRenewal(updated, req.StartDate, req.EndDate)
	} else {
		updated.Status = entity.RenewalStatus(req.Status)
		if req.StartDate != "" {
			updated.StartDate = dateutil.FormatForWire(req.StartDate)
		}
		if req.EndDate != "" {
			updated.EndDate = dateutil.FormatForWire(req.EndDate)
		}
	}

	if err := uow.RenewalRepository().Update(ctx, updated); err != nil {
		return nil, err
	}

	s.invalidateStats(userId)
	msg := dto.RenewalAuditMessage{
		RenewalId:   updated.Id,
		ServiceName: updated.Name,
		Action:      string(action),
		PerformedBy: userId.String(),
		UserEmail:   userEmail,
		Changes: []entity.FieldChange{
			{Field: "status", OldValue: string(oldStatus), NewValue: string(updated.Status)},
		},
		OccurredAt: time.Now(),
	}
	s.audit(ctx, msg)

	if action == entity.LogActionRenewed {
		s.publishEvent(ctx, events.NewRenewalRenewed(updated.Id, updated.Name, userId.String(), updated.EndDate))
	} else {
		s.publishEvent(ctx, events.NewRenewalStatusChanged(updated.Id, updated.Name, userId.String(), string(oldStatus), string(updated.Status)))
	}

	return renewal.ToWire(updated, renewal.ShapeCurrent), nil
}

// applyRenewal rolls the record over into its next term. Explicit dates win;
// otherwise the new term starts where the old one ended (or today when
// already expired) and keeps the previous term length, defaulting to a year.
func applyRenewal(rec *entity.Renewal, startDate, endDate string) {
	oldStart, okStart := dateutil.Parse(rec.StartDate)
	oldEnd, okEnd := dateutil.Parse(rec.EndDate)

	var newStart time.Time
	switch {
	case startDate != "":
		if t, ok := dateutil.Parse(startDate); ok {
			newStart = t
		}
	case okEnd && dateutil.DaysRemainingFromToday(rec.EndDate) > 0:
		newStart = oldEnd
	default:
		newStart = time.Now()
	}
	newStart = dateutil.Midnight(newStart)

	var newEnd time.Time
	if endDate != "" {
		if t, ok := dateutil.Parse(endDate); ok {
			newEnd = dateutil.Midnight(t)
		}
	}
	if newEnd.IsZero() {
		if okStart && okEnd && oldEnd.After(oldStart) {
			newEnd = newStart.Add(dateutil.Midnight(oldEnd).Sub(dateutil.Midnight(oldStart)))
		} else {
			newEnd = newStart.AddDate(1, 0, 0)
		}
	}

	rec.StartDate = newStart.Format("2006-01-02")
	rec.EndDate = newEnd.Format("2006-01-02")
	rec.Status = renewal.DeriveStatusToday(rec.EndDate)
}

func (s *renewalService) Stats(ctx context.Context, userId uuid.UUID) (*dto.RenewalStatsResponse, error) {
	if cached, found := s.statsCache.Get(userId.String()); found {
		stats := cached.(dto.RenewalStatsResponse)
		return &stats, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.RenewalRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	agg := renewal.Aggregate(records)
	stats := dto.RenewalStatsResponse{
		Active:       agg.Active,
		ExpiringSoon: agg.ExpiringSoon,
		Expired:      agg.Expired,
		Total:        agg.Total,
		TotalCost:    agg.TotalCost,
	}
	s.statsCache.Set(userId.String(), stats, cache.DefaultExpiration)
	return &stats, nil
}

func (s *renewalService) AddLog(ctx context.Context, userId uuid.UUID, userEmail string, id uuid.UUID, req *dto.AddLogRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("renewal not found")
	}

	entry := &entity.RenewalLog{
		Id:          uuid.New(),
		RenewalId:   id,
		ServiceName: existing.Name,
		Action:      entity.RenewalLogAction(req.Action),
		PerformedBy: userId,
		UserEmail:   userEmail,
		Timestamp:   time.Now(),
		Changes:     req.Changes,
		Notes:       req.Notes,
	}
	return uow.RenewalLogRepository().Create(ctx, entry)
}

func (s *renewalService) Logs(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]*dto.RenewalLogResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("renewal not found")
	}

	logs, err := uow.RenewalLogRepository().FindAll(ctx,
		specification.ByRenewalID{RenewalID: id},
		specification.OrderBy{Field: "timestamp", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.RenewalLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, &dto.RenewalLogResponse{
			Id:          l.Id,
			RenewalId:   l.RenewalId,
			ServiceName: l.ServiceName,
			Action:      string(l.Action),
			PerformedBy: l.PerformedBy,
			UserEmail:   l.UserEmail,
			Timestamp:   l.Timestamp,
			Changes:     l.Changes,
			Notes:       l.Notes,
		})
	}
	return out, nil
}

func (s *renewalService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Renewal, error) {
	return uow.RenewalRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
}

func validateRecord(rec *entity.Renewal) error {
	if rec.Name == "" {
		return errors.New("service name is required")
	}
	if rec.Kind != "" && !entity.ValidKind(rec.Kind) {
		return fmt.Errorf("unknown service type %q", rec.Kind)
	}
	if rec.Status != "" && !entity.ValidStatus(rec.Status) {
		return fmt.Errorf("unknown status %q", rec.Status)
	}
	if rec.Provider == "" {
		return errors.New("provider is required")
	}
	if rec.Cost <= 0 {
		return errors.New("cost must be a positive number")
	}
	start, okStart := dateutil.Parse(rec.StartDate)
	end, okEnd := dateutil.Parse(rec.EndDate)
	if !okStart {
		return errors.New("start date is required")
	}
	if !okEnd {
		return errors.New("end date is required")
	}
	if !end.After(start) {
		return errors.New("end date must be after start date")
	}
	return nil
}

// diffRecords reports the wire-visible field changes between two records.
func diffRecords(before, after *entity.Renewal) []entity.FieldChange {
	prev := renewal.ToWire(before, renewal.ShapeCurrent)
	next := renewal.ToWire(after, renewal.ShapeCurrent)

	var changes []entity.FieldChange
	seen := make(map[string]struct{})
	for k, ov := range prev {
		seen[k] = struct{}{}
		nv, ok := next[k]
		if !ok {
			changes = append(changes, entity.FieldChange{Field: k, OldValue: ov, NewValue: nil})
			continue
		}
		if fmt.Sprintf("%v", ov) != fmt.Sprintf("%v", nv) {
			changes = append(changes, entity.FieldChange{Field: k, OldValue: ov, NewValue: nv})
		}
	}
	for k, nv := range next {
		if _, ok := seen[k]; !ok {
			changes = append(changes, entity.FieldChange{Field: k, OldValue: nil, NewValue: nv})
		}
	}
	return changes
}

func (s *renewalService) invalidateStats(userId uuid.UUID) {
	s.statsCache.Delete(userId.String())
}

func (s *renewalService) audit(ctx context.Context, msg dto.RenewalAuditMessage) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		fmt.Printf("[WARN] Failed to publish audit message: %v\n", err)
	}
}

func (s *renewalService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	// Notification fan-out is auxiliary; never fail the request over it.
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.EventType(), err)
	}
}
