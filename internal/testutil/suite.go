// Package testutil provides the shared scaffolding for service and client
// tests: a base suite with context, logger, config and an in-memory cache,
// plus a fake billing backend.
package testutil

import (
	"context"

	"github.com/flexprice/billing-console/internal/cache"
	"github.com/flexprice/billing-console/internal/config"
	"github.com/flexprice/billing-console/internal/logger"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/stretchr/testify/suite"
)

// BaseServiceTestSuite provides the common dependencies every service test
// needs.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	log   *logger.Logger
	cfg   *config.Configuration
	cache cache.Cache
}

// SetupTest initializes fresh dependencies before each test.
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.cfg = config.GetDefaultConfig()
	s.log, _ = logger.NewLogger(s.cfg)
	s.cache = cache.NewInMemoryCache()
}

// TearDownTest drops all cached state after each test.
func (s *BaseServiceTestSuite) TearDownTest() {
	if s.cache != nil {
		s.cache.Flush(s.ctx)
	}
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.log
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// SetupContext returns a context stamped with the default test identity.
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetTenantID(ctx, types.DefaultTenantID)
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	ctx = types.SetRequestID(ctx, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST))
	return ctx
}
