package directory

import (
	"context"
	"encoding/json"
	"time"

	directoryerrors "karma-manager/internal/directory/errors"
	"karma-manager/internal/shared/contextutil"
	"karma-manager/internal/tenant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const optionsCacheTTL = time.Hour

// OptionsKey is the redis key caching the people list of a company and kind.
func OptionsKey(companyID, kind string) string {
	return tenant.Context{CompanyID: companyID}.CacheKey("people", kind)
}

//go:generate mockgen -source=directory_service.go -destination=mock/directory_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, companyID, kind, id string) (PersonResponse, error)
	GetOptions(ctx context.Context, companyID, kind string) ([]PersonResponse, error)
	Invalidate(ctx context.Context, companyID, kind string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("directory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetByID(ctx context.Context, companyID, kind, id string) (PersonResponse, error) {
	if err := validKind(kind); err != nil {
		return PersonResponse{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return PersonResponse{}, directoryerrors.ErrInvalidPersonID
	}

	log := contextutil.GetLogger(ctx, s.logger)
	person, err := s.repo.FindByIDAndCompany(ctx, companyID, kind, id)
	if err != nil {
		log.Warn("get person by id failed",
			zap.String("company_id", companyID),
			zap.String("kind", kind),
			zap.String("person_id", id),
			zap.Error(err),
		)
		return PersonResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*person), nil
}

func (s *service) GetOptions(ctx context.Context, companyID, kind string) ([]PersonResponse, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	cacheKey := OptionsKey(companyID, kind)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []PersonResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// dashboards open the people picker in bursts; collapse them
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		people, err := s.repo.FindAllByCompany(ctx, companyID, kind)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]PersonResponse, len(people))
		for i, p := range people {
			resp[i] = mapToResponse(p)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache people options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get people options failed",
			zap.String("company_id", companyID),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return nil, err
	}

	return v.([]PersonResponse), nil
}

func (s *service) Invalidate(ctx context.Context, companyID, kind string) error {
	if s.rdb == nil {
		return nil
	}
	cacheKey := OptionsKey(companyID, kind)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate people options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
		return err
	}
	return nil
}

func validKind(kind string) error {
	switch kind {
	case KindStaff, KindStudent:
		return nil
	default:
		return directoryerrors.ErrInvalidKind
	}
}

func mapToResponse(p Person) PersonResponse {
	return PersonResponse{
		ID:        p.ID.String(),
		CompanyID: p.CompanyID.String(),
		Kind:      p.Kind,
		Name:      p.Name,
		Label:     p.Label,
	}
}
