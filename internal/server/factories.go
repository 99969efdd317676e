package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	factorydomain "github.com/uns-hr/shataku/internal/factory/domain"
	"github.com/uns-hr/shataku/pkg/db/pagination"
)

type createFactoryRequest struct {
	FactoryCode   string `json:"factory_code"`
	Name          string `json:"name"`
	NameJapanese  string `json:"name_japanese"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Prefecture    string `json:"prefecture"`
	PostalCode    string `json:"postal_code"`
	Phone         string `json:"phone"`
	ContactPerson string `json:"contact_person"`
	ContactEmail  string `json:"contact_email"`
	Notes         string `json:"notes"`
}

func (s *Server) CreateFactory(c *gin.Context) {
	var req createFactoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.factorySvc.Create(c.Request.Context(), factorydomain.CreateFactoryRequest{
		FactoryCode:   req.FactoryCode,
		Name:          req.Name,
		NameJapanese:  req.NameJapanese,
		Address:       req.Address,
		City:          req.City,
		Prefecture:    req.Prefecture,
		PostalCode:    req.PostalCode,
		Phone:         req.Phone,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListFactories(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Search   string `form:"search"`
		City     string `form:"city"`
		IsActive string `form:"is_active"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	isActive, err := parseOptionalBool(query.IsActive)
	if err != nil {
		AbortWithError(c, newValidationError("is_active", "invalid_is_active", "invalid is_active"))
		return
	}

	resp, err := s.factorySvc.List(c.Request.Context(), factorydomain.ListFactoryRequest{
		Pagination: query.Pagination,
		Search:     strings.TrimSpace(query.Search),
		City:       strings.TrimSpace(query.City),
		IsActive:   isActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetFactoryByID(c *gin.Context) {
	resp, err := s.factorySvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateFactoryRequest struct {
	Name          *string `json:"name"`
	NameJapanese  *string `json:"name_japanese"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	Prefecture    *string `json:"prefecture"`
	PostalCode    *string `json:"postal_code"`
	Phone         *string `json:"phone"`
	ContactPerson *string `json:"contact_person"`
	ContactEmail  *string `json:"contact_email"`
	Notes         *string `json:"notes"`
	IsActive      *bool   `json:"is_active"`
}

func (s *Server) UpdateFactory(c *gin.Context) {
	var req updateFactoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.factorySvc.Update(c.Request.Context(), factorydomain.UpdateFactoryRequest{
		ID:            strings.TrimSpace(c.Param("id")),
		Name:          req.Name,
		NameJapanese:  req.NameJapanese,
		Address:       req.Address,
		City:          req.City,
		Prefecture:    req.Prefecture,
		PostalCode:    req.PostalCode,
		Phone:         req.Phone,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		Notes:         req.Notes,
		IsActive:      req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetFactoryStats(c *gin.Context) {
	resp, err := s.factorySvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isFactoryValidationError(err error) bool {
	switch err {
	case factorydomain.ErrInvalidID,
		factorydomain.ErrInvalidCode,
		factorydomain.ErrInvalidName:
		return true
	default:
		return false
	}
}
