package rbac

import (
	"sort"
	"strings"
	"sync"

	"karma-manager/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(role string) []domain.PermissionResponse
}

type service struct {
	enforcer *casbin.Enforcer
	policies []Policy
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewService loads policies into the enforcer. With no policies given the
// built-in role set is used.
func NewService(enforcer *casbin.Enforcer, policies ...Policy) (Service, error) {
	if len(policies) == 0 {
		policies = DefaultPolicies()
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p.Role, AllCompanies, p.Resource, p.Action); err != nil {
			return nil, err
		}
	}
	return &service{
		enforcer: enforcer,
		policies: policies,
		logger:   zap.L().Named("rbac.service"),
	}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	role := strings.ToUpper(strings.TrimSpace(req.Role))

	// casbin enforcers are not safe for concurrent policy reads and writes
	s.mu.Lock()
	allowed, err := s.enforcer.Enforce(role, req.CompanyID, req.Resource, req.Action)
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("company_id", req.CompanyID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("company_id", req.CompanyID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(role string) []domain.PermissionResponse {
	role = strings.ToUpper(strings.TrimSpace(role))
	out := make([]domain.PermissionResponse, 0)
	for _, p := range s.policies {
		if p.Role != role {
			continue
		}
		out = append(out, domain.PermissionResponse{Resource: p.Resource, Action: p.Action, Label: p.Label})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Resource != out[j].Resource {
			return out[i].Resource < out[j].Resource
		}
		return out[i].Action < out[j].Action
	})
	return out
}
