package services

import (
	"context"
	"errors"
	"testing"

	"sheetmart/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type TenantResolverTestSuite struct {
	suite.Suite
	repo     *MockTenantRepository
	resolver TenantResolver
	ctx      context.Context
}

func (suite *TenantResolverTestSuite) SetupTest() {
	suite.repo = new(MockTenantRepository)
	suite.resolver = NewTenantResolver(suite.repo, "default-sheet", zap.NewNop())
	suite.ctx = context.Background()
}

func (suite *TenantResolverTestSuite) TearDownTest() {
	suite.repo.AssertExpectations(suite.T())
}

func TestTenantResolverTestSuite(t *testing.T) {
	suite.Run(t, new(TenantResolverTestSuite))
}

func (suite *TenantResolverTestSuite) TestParamOverridesCookie() {
	suite.repo.On("FindByID", suite.ctx, "client_a").Return(&models.Tenant{ID: "client_a", SheetID: "sheet-a"}, nil).Once()

	res := suite.resolver.Resolve(suite.ctx, RequestContext{
		TenantID:        "client_a",
		CookieTenantID:  "client_b",
		RawCookieHeader: "clientId=client_c",
	})
	assert.Equal(suite.T(), Resolution{TenantID: "client_a", SheetID: "sheet-a", Source: SourceParam}, res)
}

func (suite *TenantResolverTestSuite) TestCookieOverridesDefault() {
	suite.repo.On("FindByID", suite.ctx, "client_b").Return(&models.Tenant{ID: "client_b", SheetID: "sheet-b"}, nil).Once()

	sheetID := suite.resolver.ResolveSheetID(suite.ctx, RequestContext{CookieTenantID: "client_b"})
	assert.Equal(suite.T(), "sheet-b", sheetID)
}

func (suite *TenantResolverTestSuite) TestRawCookieHeaderFallback() {
	suite.repo.On("FindByID", suite.ctx, "client_c").Return(&models.Tenant{ID: "client_c", SheetID: "sheet-c"}, nil).Once()

	res := suite.resolver.Resolve(suite.ctx, RequestContext{RawCookieHeader: "theme=dark; clientId=client_c; lang=en"})
	assert.Equal(suite.T(), "sheet-c", res.SheetID)
	assert.Equal(suite.T(), SourceCookie, res.Source)
}

func (suite *TenantResolverTestSuite) TestDefaultWhenNothingGiven() {
	res := suite.resolver.Resolve(suite.ctx, RequestContext{})
	assert.Equal(suite.T(), Resolution{SheetID: "default-sheet", Source: SourceDefault}, res)
}

func (suite *TenantResolverTestSuite) TestUnknownTenantFallsBackToDefault() {
	suite.repo.On("FindByID", suite.ctx, "ghost").Return(nil, nil).Once()

	assert.Equal(suite.T(), "default-sheet", suite.resolver.ResolveSheetID(suite.ctx, RequestContext{TenantID: "ghost"}))
}

func (suite *TenantResolverTestSuite) TestTenantWithoutSheetFallsBackToDefault() {
	suite.repo.On("FindByID", suite.ctx, "client_x").Return(&models.Tenant{ID: "client_x"}, nil).Once()

	assert.Equal(suite.T(), "default-sheet", suite.resolver.ResolveSheetID(suite.ctx, RequestContext{TenantID: "client_x"}))
}

func (suite *TenantResolverTestSuite) TestDirectoryErrorFallsBackToDefault() {
	suite.repo.On("FindByID", suite.ctx, "client_a").Return(nil, errors.New("quota exceeded")).Once()

	res := suite.resolver.Resolve(suite.ctx, RequestContext{TenantID: "client_a"})
	assert.Equal(suite.T(), SourceDefault, res.Source)
	assert.Equal(suite.T(), "default-sheet", res.SheetID)
}

func TestResolveWithoutDefaultSheet(t *testing.T) {
	repo := new(MockTenantRepository)
	resolver := NewTenantResolver(repo, "", zap.NewNop())
	assert.Equal(t, "", resolver.ResolveSheetID(context.Background(), RequestContext{}))
}

func TestCookieValue(t *testing.T) {
	assert.Equal(t, "client_1", CookieValue("clientId=client_1", "clientId"))
	assert.Equal(t, "client 2", CookieValue(`a=b; clientId="client%202"`, "clientId"))
	assert.Equal(t, "", CookieValue("a=b; clientIdX=1", "clientId"))
	assert.Equal(t, "", CookieValue("", "clientId"))
}
