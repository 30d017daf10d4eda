package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/repository"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

const (
	directoryUsersKey  = "directory:users"
	directoryGroupsKey = "directory:groups"
)

// DirectoryService serves the assignable user and group lists. Both lists
// change rarely and are read on every ticket detail load, so they are cached
// in Redis with a short TTL. A cache failure falls through to Postgres.
type DirectoryService struct {
	users    repository.UserRepository
	groups   repository.GroupRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// DirectoryDependencies bundles requirements for the directory service.
type DirectoryDependencies struct {
	UserRepo  repository.UserRepository
	GroupRepo repository.GroupRepository
	Cache     *redis.Client
	CacheTTL  time.Duration
	Logger    *zap.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		users:    deps.UserRepo,
		groups:   deps.GroupRepo,
		cache:    deps.Cache,
		cacheTTL: deps.CacheTTL,
		logger:   deps.Logger,
	}
}

// ListUsers returns all operators, password hashes stripped.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	var cached []domain.User
	if s.readCache(ctx, directoryUsersKey, &cached) {
		return cached, nil
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	s.writeCache(ctx, directoryUsersKey, users)
	return users, nil
}

// ListGroups returns all assignment groups.
func (s *DirectoryService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	var cached []domain.Group
	if s.readCache(ctx, directoryGroupsKey, &cached) {
		return cached, nil
	}

	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.writeCache(ctx, directoryGroupsKey, groups)
	return groups, nil
}

// Invalidate drops both cached lists. Called after user or group writes.
func (s *DirectoryService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, directoryUsersKey, directoryGroupsKey).Err(); err != nil {
		s.logger.Warn("directory cache invalidation failed", zap.Error(err))
	}
}

func (s *DirectoryService) readCache(ctx context.Context, key string, out any) bool {
	if s.cache == nil || s.cacheTTL <= 0 {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("directory cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("directory cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *DirectoryService) writeCache(ctx context.Context, key string, value any) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("directory cache write failed", zap.String("key", key), zap.Error(err))
	}
}
