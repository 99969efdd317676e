package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	assignmentdomain "github.com/uns-hr/shataku/internal/assignment/domain"
	"github.com/uns-hr/shataku/pkg/db/pagination"
)

type createAssignmentRequest struct {
	ApartmentID       string           `json:"apartment_id"`
	EmployeeID        string           `json:"employee_id"`
	MoveInDate        string           `json:"move_in_date"`
	CustomMonthlyRate *decimal.Decimal `json:"custom_monthly_rate"`
	DepositPaid       *decimal.Decimal `json:"deposit_paid"`
	Notes             string           `json:"notes"`
}

func (s *Server) CreateAssignment(c *gin.Context) {
	var req createAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	moveIn, err := parseDate(req.MoveInDate)
	if err != nil {
		AbortWithError(c, newValidationError("move_in_date", "invalid_move_in_date", "invalid move_in_date"))
		return
	}

	resp, err := s.assignmentSvc.Assign(c.Request.Context(), assignmentdomain.AssignRequest{
		ApartmentID:       strings.TrimSpace(req.ApartmentID),
		EmployeeID:        strings.TrimSpace(req.EmployeeID),
		MoveInDate:        moveIn,
		CustomMonthlyRate: req.CustomMonthlyRate,
		DepositPaid:       req.DepositPaid,
		Notes:             req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAssignments(c *gin.Context) {
	var query struct {
		pagination.Pagination
		ApartmentID string `form:"apartment_id"`
		EmployeeID  string `form:"employee_id"`
		IsCurrent   string `form:"is_current"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	isCurrent, err := parseOptionalBool(query.IsCurrent)
	if err != nil {
		AbortWithError(c, newValidationError("is_current", "invalid_is_current", "invalid is_current"))
		return
	}

	resp, err := s.assignmentSvc.List(c.Request.Context(), assignmentdomain.ListAssignmentRequest{
		Pagination:  query.Pagination,
		ApartmentID: strings.TrimSpace(query.ApartmentID),
		EmployeeID:  strings.TrimSpace(query.EmployeeID),
		IsCurrent:   isCurrent,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAssignmentByID(c *gin.Context) {
	resp, err := s.assignmentSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// updateAssignmentRequest multiplexes the three record-level updates: a
// move-out closes the record, a custom rate reprices it, notes are a
// plain field edit. They are applied in that order when combined.
type updateAssignmentRequest struct {
	MoveOutDate       *string          `json:"move_out_date"`
	CustomMonthlyRate *decimal.Decimal `json:"custom_monthly_rate"`
	Notes             *string          `json:"notes"`
}

func (s *Server) UpdateAssignment(c *gin.Context) {
	var req updateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	var (
		resp    assignmentdomain.Assignment
		applied bool
	)

	if req.MoveOutDate != nil {
		moveOut, err := parseDate(*req.MoveOutDate)
		if err != nil {
			AbortWithError(c, newValidationError("move_out_date", "invalid_move_out_date", "invalid move_out_date"))
			return
		}
		resp, err = s.assignmentSvc.Terminate(c.Request.Context(), assignmentdomain.TerminateRequest{
			AssignmentID: id,
			MoveOutDate:  moveOut,
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}
		applied = true
	}

	if req.CustomMonthlyRate != nil {
		var err error
		resp, err = s.assignmentSvc.Reprice(c.Request.Context(), assignmentdomain.RepriceRequest{
			AssignmentID: id,
			NewRate:      *req.CustomMonthlyRate,
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}
		applied = true
	}

	if req.Notes != nil {
		var err error
		resp, err = s.assignmentSvc.UpdateNotes(c.Request.Context(), assignmentdomain.UpdateNotesRequest{
			AssignmentID: id,
			Notes:        *req.Notes,
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}
		applied = true
	}

	if !applied {
		AbortWithError(c, invalidRequestError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAssignment(c *gin.Context) {
	if err := s.assignmentSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

type previewAssignmentCostRequest struct {
	ApartmentID       string           `json:"apartment_id"`
	EmployeeID        string           `json:"employee_id"`
	MoveInDate        string           `json:"move_in_date"`
	CustomMonthlyRate *decimal.Decimal `json:"custom_monthly_rate"`
}

func (s *Server) PreviewAssignmentCost(c *gin.Context) {
	var req previewAssignmentCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	moveIn, err := parseDate(req.MoveInDate)
	if err != nil {
		AbortWithError(c, newValidationError("move_in_date", "invalid_move_in_date", "invalid move_in_date"))
		return
	}

	resp, err := s.assignmentSvc.PreviewCost(c.Request.Context(), assignmentdomain.PreviewCostRequest{
		ApartmentID:       strings.TrimSpace(req.ApartmentID),
		EmployeeID:        strings.TrimSpace(req.EmployeeID),
		MoveInDate:        moveIn,
		CustomMonthlyRate: req.CustomMonthlyRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isAssignmentValidationError(err error) bool {
	switch err {
	case assignmentdomain.ErrInvalidID,
		assignmentdomain.ErrInvalidMoveInDate,
		assignmentdomain.ErrInvalidDateRange:
		return true
	default:
		return false
	}
}
