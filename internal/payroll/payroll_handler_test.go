package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	computeFn         func(ctx context.Context, companyID string, req payroll.ComputePayrollRequest) (payroll.Breakdown, error)
	recordFn          func(ctx context.Context, companyID, actorID string, req payroll.ComputePayrollRequest) (payroll.PayrollResponse, error)
	getAllFn          func(ctx context.Context, companyID string) ([]payroll.PayrollResponse, error)
	getByIDFn         func(ctx context.Context, companyID, id string) (payroll.PayrollResponse, error)
	deleteFn          func(ctx context.Context, companyID, id string) error
	generatePayslipFn func(ctx context.Context, companyID, id string) ([]byte, error)
}

func (f *fakePayrollService) Compute(ctx context.Context, companyID string, req payroll.ComputePayrollRequest) (payroll.Breakdown, error) {
	return f.computeFn(ctx, companyID, req)
}

func (f *fakePayrollService) Record(ctx context.Context, companyID, actorID string, req payroll.ComputePayrollRequest) (payroll.PayrollResponse, error) {
	return f.recordFn(ctx, companyID, actorID, req)
}

func (f *fakePayrollService) GetAll(ctx context.Context, companyID string) ([]payroll.PayrollResponse, error) {
	return f.getAllFn(ctx, companyID)
}

func (f *fakePayrollService) GetByID(ctx context.Context, companyID, id string) (payroll.PayrollResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}

func (f *fakePayrollService) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func (f *fakePayrollService) GeneratePayslip(ctx context.Context, companyID, id string) ([]byte, error) {
	return f.generatePayslipFn(ctx, companyID, id)
}

func TestPayrollHandler_Compute(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakePayrollService{
		computeFn: func(ctx context.Context, cid string, req payroll.ComputePayrollRequest) (payroll.Breakdown, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, employeeID, req.EmployeeID)
			assert.Equal(t, 3, req.Month)
			return payroll.Breakdown{GrossSalary: 500_000, NetSalary: 394_000}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"employee_id":"` + employeeID + `","month":3,"year":2026}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payrolls/compute", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", companyID)

	h.Compute(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var b payroll.Breakdown
	assert.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, 394_000.0, b.NetSalary)
}

func TestPayrollHandler_Compute_ValidationError(t *testing.T) {
	svc := &fakePayrollService{}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/payrolls/compute", strings.NewReader(`{"month":13}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", uuid.New().String())

	h.Compute(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestPayrollHandler_Record(t *testing.T) {
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakePayrollService{
		recordFn: func(ctx context.Context, cid, aid string, req payroll.ComputePayrollRequest) (payroll.PayrollResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			return payroll.PayrollResponse{
				ID:         uuid.New().String(),
				CompanyID:  cid,
				EmployeeID: req.EmployeeID,
				Month:      req.Month,
				Year:       req.Year,
				Status:     payroll.StatusRecorded,
			}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"employee_id":"` + employeeID + `","month":3,"year":2026}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", companyID)
	c.Set("employee_id", actorID)

	h.Record(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPayrollHandler_Record_DuplicateConflict(t *testing.T) {
	svc := &fakePayrollService{
		recordFn: func(ctx context.Context, cid, aid string, req payroll.ComputePayrollRequest) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{}, payrollerrors.ErrDuplicatePeriod
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"employee_id":"` + uuid.New().String() + `","month":3,"year":2026}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())

	h.Record(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	companyID := uuid.New().String()
	targetID := uuid.New().String()

	svc := &fakePayrollService{
		generatePayslipFn: func(ctx context.Context, cid, id string) ([]byte, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, targetID, id)
			return []byte("%PDF-1.4 test"), nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/payrolls/"+targetID+"/payslip", nil)
	c.Params = gin.Params{{Key: "id", Value: targetID}}
	c.Set("company_id", companyID)

	h.DownloadPayslip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-1.4"))
}

func TestPayrollHandler_GetById_NotFound(t *testing.T) {
	svc := &fakePayrollService{
		getByIDFn: func(ctx context.Context, cid, id string) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/payrolls/"+uuid.New().String(), nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Set("company_id", uuid.New().String())

	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
}
