package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	employeedomain "github.com/uns-hr/shataku/internal/employee/domain"
	"github.com/uns-hr/shataku/pkg/db/pagination"
)

type createEmployeeRequest struct {
	EmployeeCode     string `json:"employee_code"`
	FullNameRoman    string `json:"full_name_roman"`
	FullNameKanji    string `json:"full_name_kanji"`
	FullNameFurigana string `json:"full_name_furigana"`
	Nationality      string `json:"nationality"`
	DateOfBirth      string `json:"date_of_birth"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	EmploymentStart  string `json:"employment_start_date"`
	EmploymentEnd    string `json:"employment_end_date"`
	ContractType     string `json:"contract_type"`
	FactoryID        string `json:"factory_id"`
	Status           string `json:"status"`
	Notes            string `json:"notes"`
}

func (s *Server) CreateEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	dateOfBirth, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		AbortWithError(c, newValidationError("date_of_birth", "invalid_date_of_birth", "invalid date_of_birth"))
		return
	}
	employmentStart, err := parseOptionalDate(req.EmploymentStart)
	if err != nil {
		AbortWithError(c, newValidationError("employment_start_date", "invalid_employment_start_date", "invalid employment_start_date"))
		return
	}
	employmentEnd, err := parseOptionalDate(req.EmploymentEnd)
	if err != nil {
		AbortWithError(c, newValidationError("employment_end_date", "invalid_employment_end_date", "invalid employment_end_date"))
		return
	}

	resp, err := s.employeeSvc.Create(c.Request.Context(), employeedomain.CreateEmployeeRequest{
		EmployeeCode:     req.EmployeeCode,
		FullNameRoman:    req.FullNameRoman,
		FullNameKanji:    req.FullNameKanji,
		FullNameFurigana: req.FullNameFurigana,
		Nationality:      req.Nationality,
		DateOfBirth:      dateOfBirth,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		EmploymentStart:  employmentStart,
		EmploymentEnd:    employmentEnd,
		ContractType:     employeedomain.ContractType(strings.TrimSpace(req.ContractType)),
		FactoryID:        strings.TrimSpace(req.FactoryID),
		Status:           employeedomain.EmployeeStatus(strings.TrimSpace(req.Status)),
		Notes:            req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListEmployees(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Search           string `form:"search"`
		FactoryID        string `form:"factory_id"`
		ApartmentID      string `form:"apartment_id"`
		Status           string `form:"status"`
		WithoutApartment string `form:"without_apartment"`
		IsActive         string `form:"is_active"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := employeedomain.ListEmployeeRequest{
		Pagination:  query.Pagination,
		Search:      strings.TrimSpace(query.Search),
		FactoryID:   strings.TrimSpace(query.FactoryID),
		ApartmentID: strings.TrimSpace(query.ApartmentID),
	}

	if trimmed := strings.TrimSpace(query.Status); trimmed != "" {
		status := employeedomain.EmployeeStatus(trimmed)
		if !status.Valid() {
			AbortWithError(c, employeedomain.ErrInvalidStatus)
			return
		}
		req.Status = &status
	}

	withoutApartment, err := parseOptionalBool(query.WithoutApartment)
	if err != nil {
		AbortWithError(c, newValidationError("without_apartment", "invalid_without_apartment", "invalid without_apartment"))
		return
	}
	if withoutApartment != nil {
		req.WithoutApartment = *withoutApartment
	}

	isActive, err := parseOptionalBool(query.IsActive)
	if err != nil {
		AbortWithError(c, newValidationError("is_active", "invalid_is_active", "invalid is_active"))
		return
	}
	req.IsActive = isActive

	resp, err := s.employeeSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEmployeeByID(c *gin.Context) {
	resp, err := s.employeeSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateEmployeeRequest struct {
	FullNameRoman    *string `json:"full_name_roman"`
	FullNameKanji    *string `json:"full_name_kanji"`
	FullNameFurigana *string `json:"full_name_furigana"`
	Nationality      *string `json:"nationality"`
	DateOfBirth      *string `json:"date_of_birth"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email"`
	Address          *string `json:"address"`
	EmploymentStart  *string `json:"employment_start_date"`
	EmploymentEnd    *string `json:"employment_end_date"`
	ContractType     *string `json:"contract_type"`
	FactoryID        *string `json:"factory_id"`
	Status           *string `json:"status"`
	Notes            *string `json:"notes"`
	IsActive         *bool   `json:"is_active"`
}

func (s *Server) UpdateEmployee(c *gin.Context) {
	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := employeedomain.UpdateEmployeeRequest{
		ID:               strings.TrimSpace(c.Param("id")),
		FullNameRoman:    req.FullNameRoman,
		FullNameKanji:    req.FullNameKanji,
		FullNameFurigana: req.FullNameFurigana,
		Nationality:      req.Nationality,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		FactoryID:        req.FactoryID,
		Notes:            req.Notes,
		IsActive:         req.IsActive,
	}

	if req.DateOfBirth != nil {
		parsed, err := parseOptionalDate(*req.DateOfBirth)
		if err != nil {
			AbortWithError(c, newValidationError("date_of_birth", "invalid_date_of_birth", "invalid date_of_birth"))
			return
		}
		update.DateOfBirth = parsed
	}
	if req.EmploymentStart != nil {
		parsed, err := parseOptionalDate(*req.EmploymentStart)
		if err != nil {
			AbortWithError(c, newValidationError("employment_start_date", "invalid_employment_start_date", "invalid employment_start_date"))
			return
		}
		update.EmploymentStart = parsed
	}
	if req.EmploymentEnd != nil {
		parsed, err := parseOptionalDate(*req.EmploymentEnd)
		if err != nil {
			AbortWithError(c, newValidationError("employment_end_date", "invalid_employment_end_date", "invalid employment_end_date"))
			return
		}
		update.EmploymentEnd = parsed
	}
	if req.ContractType != nil {
		contract := employeedomain.ContractType(strings.TrimSpace(*req.ContractType))
		update.ContractType = &contract
	}
	if req.Status != nil {
		status := employeedomain.EmployeeStatus(strings.TrimSpace(*req.Status))
		update.Status = &status
	}

	resp, err := s.employeeSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivateEmployee(c *gin.Context) {
	if err := s.employeeSvc.Deactivate(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deactivated": true}})
}

func (s *Server) GetEmployeeStats(c *gin.Context) {
	resp, err := s.employeeSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isEmployeeValidationError(err error) bool {
	switch err {
	case employeedomain.ErrInvalidID,
		employeedomain.ErrInvalidCode,
		employeedomain.ErrInvalidName,
		employeedomain.ErrInvalidStatus,
		employeedomain.ErrInvalidContract,
		employeedomain.ErrInvalidFactory:
		return true
	default:
		return false
	}
}
