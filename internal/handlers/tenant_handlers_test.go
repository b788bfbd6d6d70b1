package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"sheetmart/internal/models"
	"sheetmart/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateTenant_ReturnsGeneratedPassword(t *testing.T) {
	e := echo.New()
	tenants := new(MockTenantService)
	created := &models.Tenant{ID: "client_1", Name: "Acme Traders", Email: "owner@acme.test", SheetID: "sheet-1", Username: "acmetraders", Password: "acmetraders@123"}
	tenants.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateTenantRequest) bool {
		return req.Name == "Acme Traders" && req.SheetID == "sheet-1"
	})).Return(created, nil)

	c, rec := newContext(e, http.MethodPost, "/v1/tenants", `{"name":"Acme Traders","email":"owner@acme.test","sheet_id":"sheet-1"}`, "")
	require.NoError(t, NewTenantHandlers(tenants).CreateTenant(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "client_1", body["id"])
	assert.Equal(t, "acmetraders@123", body["password"])
}

func TestCreateTenant_UsernameTaken(t *testing.T) {
	e := echo.New()
	tenants := new(MockTenantService)
	tenants.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrUsernameTaken)

	c, rec := newContext(e, http.MethodPost, "/v1/tenants", `{"name":"Acme Traders","email":"owner@acme.test","sheet_id":"sheet-1"}`, "")
	require.NoError(t, NewTenantHandlers(tenants).CreateTenant(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListTenants_HidesPasswords(t *testing.T) {
	e := echo.New()
	tenants := new(MockTenantService)
	tenants.On("List", mock.Anything).Return([]*models.Tenant{
		{ID: "client_1", Name: "Acme Traders", SheetID: "sheet-1", Password: "secret"},
	}, nil)

	c, rec := newContext(e, http.MethodGet, "/v1/tenants", "", "")
	require.NoError(t, NewTenantHandlers(tenants).ListTenants(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestGetTenant_NotFound(t *testing.T) {
	e := echo.New()
	tenants := new(MockTenantService)
	tenants.On("Get", mock.Anything, "client_9").Return(nil, services.ErrTenantNotFound)

	c, rec := newContext(e, http.MethodGet, "/v1/tenants/client_9", "", "")
	c.SetParamNames("id")
	c.SetParamValues("client_9")
	require.NoError(t, NewTenantHandlers(tenants).GetTenant(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
