package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	apartmentdomain "github.com/uns-hr/shataku/internal/apartment/domain"
	assignmentdomain "github.com/uns-hr/shataku/internal/assignment/domain"
	"github.com/uns-hr/shataku/internal/rentcalc"
	"github.com/uns-hr/shataku/pkg/db/pagination"
)

type createApartmentRequest struct {
	ApartmentCode string `json:"apartment_code"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Prefecture    string `json:"prefecture"`
	PostalCode    string `json:"postal_code"`
	BuildingName  string `json:"building_name"`
	RoomNumber    string `json:"room_number"`
	Floor         *int   `json:"floor"`
	NumRooms      int    `json:"num_rooms"`

	MonthlyRent       decimal.Decimal `json:"monthly_rent"`
	Deposit           decimal.Decimal `json:"deposit"`
	KeyMoney          decimal.Decimal `json:"key_money"`
	ManagementFee     decimal.Decimal `json:"management_fee"`
	ParkingFee        decimal.Decimal `json:"parking_fee"`
	UtilitiesIncluded bool            `json:"utilities_included"`
	InternetIncluded  bool            `json:"internet_included"`
	ParkingIncluded   bool            `json:"parking_included"`
	PricingPolicy     string          `json:"pricing_policy"`

	Status   string `json:"status"`
	Capacity int    `json:"capacity"`
	Notes    string `json:"notes"`
}

func (s *Server) CreateApartment(c *gin.Context) {
	var req createApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.apartmentSvc.Create(c.Request.Context(), apartmentdomain.CreateApartmentRequest{
		ApartmentCode: req.ApartmentCode,
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		Prefecture:    req.Prefecture,
		PostalCode:    req.PostalCode,
		BuildingName:  req.BuildingName,
		RoomNumber:    req.RoomNumber,
		Floor:         req.Floor,
		NumRooms:      req.NumRooms,
		Terms: apartmentdomain.FinancialTerms{
			MonthlyRent:       req.MonthlyRent,
			Deposit:           req.Deposit,
			KeyMoney:          req.KeyMoney,
			ManagementFee:     req.ManagementFee,
			ParkingFee:        req.ParkingFee,
			UtilitiesIncluded: req.UtilitiesIncluded,
			InternetIncluded:  req.InternetIncluded,
			ParkingIncluded:   req.ParkingIncluded,
			PricingPolicy:     rentcalc.PricingPolicy(strings.TrimSpace(req.PricingPolicy)),
		},
		Capacity: req.Capacity,
		Status:   apartmentdomain.ApartmentStatus(strings.TrimSpace(req.Status)),
		Notes:    req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListApartments(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Search        string `form:"search"`
		City          string `form:"city"`
		Status        string `form:"status"`
		PricingPolicy string `form:"pricing_policy"`
		HasVacancy    string `form:"has_vacancy"`
		IsActive      string `form:"is_active"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := apartmentdomain.ListApartmentRequest{
		Pagination: query.Pagination,
		Search:     strings.TrimSpace(query.Search),
		City:       strings.TrimSpace(query.City),
	}

	if trimmed := strings.TrimSpace(query.Status); trimmed != "" {
		status := apartmentdomain.ApartmentStatus(trimmed)
		if !status.Valid() {
			AbortWithError(c, apartmentdomain.ErrInvalidStatus)
			return
		}
		req.Status = &status
	}
	if trimmed := strings.TrimSpace(query.PricingPolicy); trimmed != "" {
		policy := rentcalc.PricingPolicy(trimmed)
		if !policy.Valid() {
			AbortWithError(c, apartmentdomain.ErrInvalidPolicy)
			return
		}
		req.PricingPolicy = &policy
	}

	hasVacancy, err := parseOptionalBool(query.HasVacancy)
	if err != nil {
		AbortWithError(c, newValidationError("has_vacancy", "invalid_has_vacancy", "invalid has_vacancy"))
		return
	}
	req.HasVacancy = hasVacancy

	isActive, err := parseOptionalBool(query.IsActive)
	if err != nil {
		AbortWithError(c, newValidationError("is_active", "invalid_is_active", "invalid is_active"))
		return
	}
	req.IsActive = isActive

	resp, err := s.apartmentSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetApartmentByID(c *gin.Context) {
	resp, err := s.apartmentSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateApartmentRequest struct {
	Name          *string          `json:"name"`
	Address       *string          `json:"address"`
	City          *string          `json:"city"`
	Prefecture    *string          `json:"prefecture"`
	PostalCode    *string          `json:"postal_code"`
	BuildingName  *string          `json:"building_name"`
	RoomNumber    *string          `json:"room_number"`
	MonthlyRent   *decimal.Decimal `json:"monthly_rent"`
	Deposit       *decimal.Decimal `json:"deposit"`
	KeyMoney      *decimal.Decimal `json:"key_money"`
	ManagementFee *decimal.Decimal `json:"management_fee"`
	ParkingFee    *decimal.Decimal `json:"parking_fee"`

	UtilitiesIncluded *bool   `json:"utilities_included"`
	InternetIncluded  *bool   `json:"internet_included"`
	ParkingIncluded   *bool   `json:"parking_included"`
	PricingPolicy     *string `json:"pricing_policy"`

	Status   *string `json:"status"`
	Capacity *int    `json:"capacity"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"is_active"`
}

func (s *Server) UpdateApartment(c *gin.Context) {
	var req updateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := apartmentdomain.UpdateApartmentRequest{
		ID:                strings.TrimSpace(c.Param("id")),
		Name:              req.Name,
		Address:           req.Address,
		City:              req.City,
		Prefecture:        req.Prefecture,
		PostalCode:        req.PostalCode,
		BuildingName:      req.BuildingName,
		RoomNumber:        req.RoomNumber,
		MonthlyRent:       req.MonthlyRent,
		Deposit:           req.Deposit,
		KeyMoney:          req.KeyMoney,
		ManagementFee:     req.ManagementFee,
		ParkingFee:        req.ParkingFee,
		UtilitiesIncluded: req.UtilitiesIncluded,
		InternetIncluded:  req.InternetIncluded,
		ParkingIncluded:   req.ParkingIncluded,
		Capacity:          req.Capacity,
		Notes:             req.Notes,
		IsActive:          req.IsActive,
	}
	if req.PricingPolicy != nil {
		policy := rentcalc.PricingPolicy(strings.TrimSpace(*req.PricingPolicy))
		update.PricingPolicy = &policy
	}
	if req.Status != nil {
		status := apartmentdomain.ApartmentStatus(strings.TrimSpace(*req.Status))
		update.Status = &status
	}

	resp, err := s.apartmentSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivateApartment(c *gin.Context) {
	if err := s.apartmentSvc.Deactivate(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deactivated": true}})
}

func (s *Server) GetApartmentStats(c *gin.Context) {
	resp, err := s.apartmentSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type unassignEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (s *Server) UnassignEmployee(c *gin.Context) {
	var req unassignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.assignmentSvc.Unassign(c.Request.Context(), assignmentdomain.UnassignRequest{
		ApartmentID: strings.TrimSpace(c.Param("id")),
		EmployeeID:  strings.TrimSpace(req.EmployeeID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"unassigned": true}})
}

func isApartmentValidationError(err error) bool {
	switch err {
	case apartmentdomain.ErrInvalidID,
		apartmentdomain.ErrInvalidCode,
		apartmentdomain.ErrInvalidName,
		apartmentdomain.ErrInvalidAddress,
		apartmentdomain.ErrInvalidCapacity,
		apartmentdomain.ErrInvalidStatus,
		apartmentdomain.ErrInvalidPolicy:
		return true
	default:
		return false
	}
}
