package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"loan_tracker/internal/middleware"
	"loan_tracker/internal/model"
	"loan_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// LoanHandler handles loan related requests
type LoanHandler struct {
	service service.LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(s service.LoanService) *LoanHandler {
	return &LoanHandler{service: s}
}

func (h *LoanHandler) ListLoans(c *gin.Context) {
	loans, err := h.service.ListLoans(c.Request.Context())
	if err != nil {
		log.Printf("Error listing loans: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loans"})
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) GetLoanByID(c *gin.Context) {
	loanID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loan ID"})
		return
	}

	loan, err := h.service.GetLoanByID(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, service.ErrLoanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting loan by ID: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loan"})
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) GetMyLoans(c *gin.Context) {
	user, ok := middleware.AuthUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var filters model.UserLoanFilters
	if roleParam := c.Query("role"); roleParam != "" {
		if roleParam != "lender" && roleParam != "borrower" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role, use 'lender' or 'borrower'"})
			return
		}
		filters.Role = &roleParam
	}
	if statusParam := c.Query("status"); statusParam != "" {
		filters.Status = &statusParam
	}

	loans, err := h.service.GetUserLoans(c.Request.Context(), user.ID, filters)
	if err != nil {
		log.Printf("Error getting user loans: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loans"})
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) CreateLoan(c *gin.Context) {
	user, ok := middleware.AuthUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req model.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	loan, err := h.service.CreateLoan(c.Request.Context(), user, req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownParty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error creating loan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create loan"})
		return
	}
	c.JSON(http.StatusCreated, loan)
}

func (h *LoanHandler) UpdateLoan(c *gin.Context) {
	user, ok := middleware.AuthUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	loanID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loan ID"})
		return
	}

	var req model.UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	loan, err := h.service.UpdateLoan(c.Request.Context(), user, loanID, req)
	if err != nil {
		if errors.Is(err, service.ErrLoanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			log.Printf("Error updating loan: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update loan"})
		}
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	user, ok := middleware.AuthUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	loanID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loan ID"})
		return
	}

	err = h.service.DeleteLoan(c.Request.Context(), user, loanID)
	if err != nil {
		if errors.Is(err, service.ErrLoanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			log.Printf("Error deleting loan: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete loan"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Loan deleted successfully"})
}

// RegisterLoanRoutes registers loan routes. Reads are public, mutations sit
// behind the JWT middleware.
func (h *LoanHandler) RegisterLoanRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/loans", h.ListLoans)
	rg.GET("/loans/:id", h.GetLoanByID)

	protected := rg.Group("")
	protected.Use(authMW)
	{
		protected.POST("/loans", h.CreateLoan)
		protected.PUT("/loans/:id", h.UpdateLoan)
		protected.DELETE("/loans/:id", h.DeleteLoan)
		protected.GET("/me/loans", h.GetMyLoans)
	}
}
