package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	apartmentdomain "github.com/uns-hr/shataku/internal/apartment/domain"
	apartmentrepo "github.com/uns-hr/shataku/internal/apartment/repository"
	apartmentservice "github.com/uns-hr/shataku/internal/apartment/service"
	assignmentdomain "github.com/uns-hr/shataku/internal/assignment/domain"
	assignmentrepo "github.com/uns-hr/shataku/internal/assignment/repository"
	assignmentservice "github.com/uns-hr/shataku/internal/assignment/service"
	"github.com/uns-hr/shataku/internal/clock"
	"github.com/uns-hr/shataku/internal/config"
	employeedomain "github.com/uns-hr/shataku/internal/employee/domain"
	employeerepo "github.com/uns-hr/shataku/internal/employee/repository"
	employeeservice "github.com/uns-hr/shataku/internal/employee/service"
	factorydomain "github.com/uns-hr/shataku/internal/factory/domain"
	factoryrepo "github.com/uns-hr/shataku/internal/factory/repository"
	factoryservice "github.com/uns-hr/shataku/internal/factory/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&factorydomain.Factory{},
		&apartmentdomain.Apartment{},
		&employeedomain.Employee{},
		&assignmentdomain.Assignment{},
	))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	log := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC))
	cfg := config.Config{EstimatedUtilities: decimal.NewFromInt(8000)}

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin: engine,
		Cfg: cfg,
		ApartmentSvc: apartmentservice.NewService(apartmentservice.ServiceParam{
			DB: db, Log: log, GenID: node, Clock: clk,
			Repo: apartmentrepo.Provide(),
		}),
		AssignmentSvc: assignmentservice.NewService(assignmentservice.ServiceParam{
			Config: cfg, DB: db, Log: log, GenID: node, Clock: clk,
			Repo:          assignmentrepo.Provide(),
			ApartmentRepo: apartmentrepo.Provide(),
			EmployeeRepo:  employeerepo.Provide(),
		}),
		EmployeeSvc: employeeservice.NewService(employeeservice.ServiceParam{
			DB: db, Log: log, GenID: node, Clock: clk,
			Repo: employeerepo.Provide(),
		}),
		FactorySvc: factoryservice.NewService(factoryservice.ServiceParam{
			DB: db, Log: log, GenID: node, Clock: clk,
			Repo: factoryrepo.Provide(),
		}),
	})
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestAssignmentFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/apartments", gin.H{
		"apartment_code": "AP-001",
		"name":           "Sakura Heights 201",
		"address":        "1-2-3 Minami, Toyota",
		"monthly_rent":   "60000",
		"deposit":        "60000",
		"key_money":      "30000",
		"management_fee": "5000",
		"parking_fee":    "5000",
		"capacity":       2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	apartmentID := decodeData(t, rec)["id"].(string)

	rec = doJSON(t, srv, http.MethodPost, "/api/employees", gin.H{
		"employee_code":   "EMP-001",
		"full_name_roman": "Nguyen Van A",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	employeeID := decodeData(t, rec)["id"].(string)

	rec = doJSON(t, srv, http.MethodPost, "/api/assignments/preview", gin.H{
		"apartment_id": apartmentID,
		"employee_id":  employeeID,
		"move_in_date": "2024-04-15",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodPost, "/api/assignments", gin.H{
		"apartment_id": apartmentID,
		"employee_id":  employeeID,
		"move_in_date": "2024-04-15",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeData(t, rec)
	assert.Equal(t, true, created["is_current"])
	assignmentID := created["id"].(string)

	rec = doJSON(t, srv, http.MethodGet, "/api/apartments/"+apartmentID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeData(t, rec)["current_occupants"])

	rec = doJSON(t, srv, http.MethodPut, "/api/assignments/"+assignmentID, gin.H{
		"move_out_date": "2024-09-30",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, false, decodeData(t, rec)["is_current"])

	rec = doJSON(t, srv, http.MethodGet, "/api/apartments/"+apartmentID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decodeData(t, rec)["current_occupants"])
}

func TestAssignmentErrorMapping(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/apartments", gin.H{
		"apartment_code": "AP-002",
		"name":           "Single Room",
		"address":        "somewhere",
		"monthly_rent":   "50000",
		"capacity":       1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	apartmentID := decodeData(t, rec)["id"].(string)

	var employeeIDs []string
	for i := 0; i < 2; i++ {
		rec = doJSON(t, srv, http.MethodPost, "/api/employees", gin.H{
			"employee_code":   fmt.Sprintf("EMP-%03d", i+10),
			"full_name_roman": "Worker",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		employeeIDs = append(employeeIDs, decodeData(t, rec)["id"].(string))
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/assignments", gin.H{
		"apartment_id": apartmentID,
		"employee_id":  employeeIDs[0],
		"move_in_date": "2024-04-01",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Full apartment maps to a conflict.
	rec = doJSON(t, srv, http.MethodPost, "/api/assignments", gin.H{
		"apartment_id": apartmentID,
		"employee_id":  employeeIDs[1],
		"move_in_date": "2024-04-01",
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Unknown apartment maps to not found.
	rec = doJSON(t, srv, http.MethodPost, "/api/assignments", gin.H{
		"apartment_id": "99999999999999999",
		"employee_id":  employeeIDs[1],
		"move_in_date": "2024-04-01",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	// Garbage date maps to a validation error.
	rec = doJSON(t, srv, http.MethodPost, "/api/assignments", gin.H{
		"apartment_id": apartmentID,
		"employee_id":  employeeIDs[1],
		"move_in_date": "not-a-date",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// Mismatched unassign pair maps to a conflict.
	rec = doJSON(t, srv, http.MethodPost, "/api/apartments/"+apartmentID+"/unassign", gin.H{
		"employee_id": employeeIDs[1],
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestDuplicateCodesConflict(t *testing.T) {
	srv := newTestServer(t)

	body := gin.H{
		"factory_code": "FC-001",
		"name":         "Aichi Plant",
	}
	rec := doJSON(t, srv, http.MethodPost, "/api/factories", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodPost, "/api/factories", body)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}
