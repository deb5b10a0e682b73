package rbac

import (
	"sort"
	"strings"
	"sync"

	"go-leavedesk/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(role domain.Role) ([]Permission, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService loads the static role policies into the enforcer.
func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{enforcer: enforcer, logger: l}
	if err := s.loadPolicies(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicies() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	for _, pair := range inherits {
		if _, err := s.enforcer.AddGroupingPolicy(pair[0].String(), pair[1].String()); err != nil {
			return err
		}
	}

	total := 0
	for role, perms := range rolePermissions {
		for _, p := range perms {
			if _, err := s.enforcer.AddPolicy(role.String(), p.Resource, p.Action); err != nil {
				return err
			}
			total++
		}
	}

	s.logger.Info("rbac policies loaded",
		zap.Int("roles", len(rolePermissions)),
		zap.Int("permissions", total),
	)
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		s.logger.Warn("rbac enforce unknown role", zap.String("role", req.Role))
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(role.String(), req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role.String()),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role.String()),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Permissions returns the effective permissions of a role, inherited ones
// included, sorted by resource then action.
func (s *service) Permissions(role domain.Role) ([]Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, err := s.enforcer.GetImplicitPermissionsForUser(role.String())
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(rules))
	perms := make([]Permission, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		key := rule[1] + ":" + rule[2]
		if seen[key] {
			continue
		}
		seen[key] = true
		perms = append(perms, Permission{Resource: rule[1], Action: rule[2]})
	}

	sort.Slice(perms, func(i, j int) bool {
		if perms[i].Resource != perms[j].Resource {
			return perms[i].Resource < perms[j].Resource
		}
		return strings.Compare(perms[i].Action, perms[j].Action) < 0
	})
	return perms, nil
}
