package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	attendanceerrors "karma-manager/internal/attendance/errors"
	"karma-manager/internal/directory"
	directoryerrors "karma-manager/internal/directory/errors"
	"karma-manager/internal/events"
	"karma-manager/internal/messaging/kafka"
	"karma-manager/internal/shared/contextutil"
	"karma-manager/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PersonDirectory resolves who may be punched in a company.
//
//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type PersonDirectory interface {
	GetByID(ctx context.Context, companyID, kind, id string) (directory.PersonResponse, error)
	GetOptions(ctx context.Context, companyID, kind string) ([]directory.PersonResponse, error)
}

type Service interface {
	Punch(ctx context.Context, companyID string, kind Kind, personID string) (PunchResponse, error)
	GetAll(ctx context.Context, companyID string, kind Kind, actorID string, canReadAll bool) ([]PunchRecordResponse, error)
	GetToday(ctx context.Context, companyID string, kind Kind, personID string) (PunchRecordResponse, error)
}

type service struct {
	ledgers   *Registry[Member]
	directory PersonDirectory
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(ledgers *Registry[Member], dir PersonDirectory, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(ledgers, dir, nil, logger...)
}

func NewServiceWithOutbox(
	ledgers *Registry[Member],
	dir PersonDirectory,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		ledgers:   ledgers,
		directory: dir,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Punch(ctx context.Context, companyID string, kind Kind, personID string) (PunchResponse, error) {
	tc, err := s.tenant(companyID, kind)
	if err != nil {
		return PunchResponse{}, err
	}
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return PunchResponse{}, attendanceerrors.ErrEmptyPersonID
	}

	log := contextutil.GetLogger(ctx, s.logger)

	person, err := s.directory.GetByID(ctx, companyID, string(kind), personID)
	if err != nil {
		if errors.Is(err, directoryerrors.ErrPersonNotFound) {
			return PunchResponse{}, attendanceerrors.ErrPersonNotFound
		}
		log.Error("resolve person failed",
			zap.String("company_id", companyID),
			zap.String("person_id", personID),
			zap.Error(err),
		)
		return PunchResponse{}, err
	}

	ledger := s.ledgers.Ledger(ctx, tc, kind)
	evt, err := ledger.Punch(ctx, Member{ID: person.ID, Name: person.Name, Kind: kind})
	if err != nil {
		return PunchResponse{}, err
	}

	s.enqueue(ctx, log, NewPunchRecordedEvent(evt, person.Name, contextutil.GetRequestID(ctx)))

	log.Info("punch recorded",
		zap.String("company_id", companyID),
		zap.String("kind", string(kind)),
		zap.String("person_id", person.ID),
		zap.String("direction", string(evt.Direction)),
	)

	return PunchResponse{
		Direction: evt.Direction,
		Record:    mapToResponse(evt.Record, person.Name),
	}, nil
}

// enqueue writes the punch to the outbox. The ledger has already applied the
// punch, so a failure here is logged and not returned.
func (s *service) enqueue(ctx context.Context, log *zap.Logger, event events.PunchRecordedEvent) {
	if s.outbox == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error("marshal punch event failed", zap.String("request_id", event.RequestID), zap.Error(err))
		return
	}
	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "attendance",
		AggregateID:   event.PersonID,
		EventType:     events.PunchRecordedEventType,
		Topic:         events.PunchRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		log.Error("create punch outbox failed",
			zap.String("request_id", event.RequestID),
			zap.String("person_id", event.PersonID),
			zap.Error(err),
		)
	}
}

func (s *service) GetAll(ctx context.Context, companyID string, kind Kind, actorID string, canReadAll bool) ([]PunchRecordResponse, error) {
	tc, err := s.tenant(companyID, kind)
	if err != nil {
		return nil, err
	}
	actorID = strings.TrimSpace(actorID)
	if !canReadAll && actorID == "" {
		return nil, attendanceerrors.ErrEmptyPersonID
	}

	records := s.ledgers.Ledger(ctx, tc, kind).ListRecords()
	names := s.names(ctx, companyID, kind)

	res := make([]PunchRecordResponse, 0, len(records))
	for _, r := range records {
		if !canReadAll && r.PersonID != actorID {
			continue
		}
		res = append(res, mapToResponse(r, names[r.PersonID]))
	}

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Date != res[j].Date {
			return res[i].Date > res[j].Date
		}
		if res[i].PersonName != res[j].PersonName {
			return res[i].PersonName < res[j].PersonName
		}
		return res[i].PersonID < res[j].PersonID
	})
	return res, nil
}

func (s *service) GetToday(ctx context.Context, companyID string, kind Kind, personID string) (PunchRecordResponse, error) {
	tc, err := s.tenant(companyID, kind)
	if err != nil {
		return PunchRecordResponse{}, err
	}
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return PunchRecordResponse{}, attendanceerrors.ErrEmptyPersonID
	}

	rec, ok := s.ledgers.Ledger(ctx, tc, kind).Today(personID)
	if !ok {
		return PunchRecordResponse{}, attendanceerrors.ErrRecordNotFound
	}
	return mapToResponse(rec, s.names(ctx, companyID, kind)[personID]), nil
}

func (s *service) tenant(companyID string, kind Kind) (tenant.Context, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return tenant.Context{}, attendanceerrors.ErrInvalidCompanyID
	}
	if _, ok := ParseKind(string(kind)); !ok {
		return tenant.Context{}, attendanceerrors.ErrInvalidKind
	}
	return tenant.New(companyID)
}

// names is best effort; records still list without them.
func (s *service) names(ctx context.Context, companyID string, kind Kind) map[string]string {
	people, err := s.directory.GetOptions(ctx, companyID, string(kind))
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("load person names failed",
			zap.String("company_id", companyID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return map[string]string{}
	}
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}
	return names
}

// NewPunchRecordedEvent converts an applied punch into its wire event.
func NewPunchRecordedEvent(evt PunchEvent, personName, requestID string) events.PunchRecordedEvent {
	return events.PunchRecordedEvent{
		EventType:  events.PunchRecordedEventType,
		RequestID:  requestID,
		CompanyID:  evt.CompanyID,
		Kind:       string(evt.Kind),
		PersonID:   evt.Record.PersonID,
		PersonName: personName,
		Direction:  string(evt.Direction),
		Date:       evt.Record.Date,
		InTime:     evt.Record.InTime,
		OutTime:    evt.Record.OutTime,
		OccurredAt: evt.At,
	}
}
