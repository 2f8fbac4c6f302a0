package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/storeanalytics/sales-dashboard-go/internal/config"
	"github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"
	"github.com/storeanalytics/sales-dashboard-go/internal/handler/http/response"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/jwt"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/metrics"
	authService "github.com/storeanalytics/sales-dashboard-go/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	handlerTestSecret   = "test-secret-key-for-jwt"
	handlerTestUser     = "admin"
	handlerTestPassword = "s3cret-pass"
)

// fakeSalesService records the last request and answers with canned results.
type fakeSalesService struct {
	lastReq  sales.DateRangeRequest
	lastKind sales.ReportKind
	err      error
}

func (f *fakeSalesService) ClubReport(ctx context.Context, req sales.DateRangeRequest) (sales.DailyReport, error) {
	f.lastReq = req
	if f.err != nil {
		return sales.DailyReport{}, f.err
	}
	return sales.DailyReport{Kind: sales.ReportClub, Empty: true, Message: sales.MessageNoClubData}, nil
}

func (f *fakeSalesService) SellerItemsReport(ctx context.Context, req sales.DateRangeRequest) (sales.DailyReport, error) {
	f.lastReq = req
	return sales.DailyReport{Kind: sales.ReportSellerItems}, f.err
}

func (f *fakeSalesService) ItemSalesReport(ctx context.Context, req sales.DateRangeRequest) (sales.ItemSalesReport, error) {
	f.lastReq = req
	return sales.ItemSalesReport{ItemTotals: []sales.ItemTotal{{Item: "suco", Sales: 2}}}, f.err
}

func (f *fakeSalesService) DashboardReport(ctx context.Context, req sales.DateRangeRequest) (sales.DashboardReport, error) {
	f.lastReq = req
	return sales.DashboardReport{}, f.err
}

func (f *fakeSalesService) ExportReport(ctx context.Context, kind sales.ReportKind, req sales.DateRangeRequest) (sales.ExportFile, error) {
	f.lastReq = req
	f.lastKind = kind
	if f.err != nil {
		return sales.ExportFile{}, f.err
	}
	return sales.ExportFile{
		Filename:    string(kind) + "_2024-01-01_2024-01-31.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     []byte("PK"),
	}, nil
}

type testServer struct {
	router *chi.Mux
	jwt    *jwt.JWTService
	sales  *fakeSalesService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(handlerTestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	auth := authService.NewAuthService(authService.Operator{
		Username:     handlerTestUser,
		PasswordHash: string(hash),
		StoreID:      467,
	}, jwtService)
	salesService := &fakeSalesService{}

	router := NewRouter(
		config.AppConfig{Env: "test", CORSAllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		metrics.NewRecorder().Handler(),
		NewAuthHandler(auth),
		NewSalesHandler(salesService),
	)
	return &testServer{router: router, jwt: jwtService, sales: salesService}
}

func (s *testServer) do(method, target, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": handlerTestUser, "password": handlerTestPassword})
	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRouter_Heartbeat(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	decoded, err := s.jwt.JWTAuth().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, handlerTestUser, decoded.Subject())
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"username": handlerTestUser, "password": "wrong"})

	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	resp := decode(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login_ValidationError(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", []byte(`{"username":""}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decode(t, rec)
	assert.Equal(t, "username is required", resp.Error.Details["username"])
	assert.Equal(t, "password is required", resp.Error.Details["password"])
}

func TestAuthHandler_Logout_RevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(http.MethodGet, "/api/v1/reports/club", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/reports/club", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Logout_NoToken(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSalesHandler_RequiresToken(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{
		"/api/v1/reports/club",
		"/api/v1/reports/seller-items",
		"/api/v1/reports/items",
		"/api/v1/reports/dashboard",
		"/api/v1/reports/club/export",
	} {
		rec := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestSalesHandler_ClubReport(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(http.MethodGet, "/api/v1/reports/club?start_date=2024-01-01&end_date=2024-01-31", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sales.DateRangeRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"}, s.sales.lastReq)

	var resp struct {
		Success bool              `json:"success"`
		Data    sales.DailyReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Empty)
	assert.Equal(t, sales.MessageNoClubData, resp.Data.Message)
}

func TestSalesHandler_OtherReports(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	for _, path := range []string{
		"/api/v1/reports/seller-items",
		"/api/v1/reports/items",
		"/api/v1/reports/dashboard",
	} {
		rec := s.do(http.MethodGet, path+"?start_date=2024-02-01&end_date=2024-02-29", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "2024-02-01", s.sales.lastReq.StartDate, path)
	}
}

func TestSalesHandler_ServiceErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	s.sales.err = sales.ErrInvalidDateRange
	rec := s.do(http.MethodGet, "/api/v1/reports/club", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.sales.err = assert.AnError
	rec = s.do(http.MethodGet, "/api/v1/reports/club", token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestSalesHandler_Export(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(http.MethodGet, "/api/v1/reports/seller-items/export?start_date=2024-01-01&end_date=2024-01-31", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sales.ReportSellerItems, s.sales.lastKind)
	assert.Equal(t, `attachment; filename="seller-items_2024-01-01_2024-01-31.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", rec.Body.String())
}

func TestSalesHandler_ExportUnknownReport(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(http.MethodGet, "/api/v1/reports/payroll/export", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, s.sales.lastKind)
}
