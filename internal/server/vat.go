package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	vatdomain "github.com/smallbiznis/classifieds/internal/vat/domain"
)

func (s *Server) CreateVatRate(c *gin.Context) {
	var req vatdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.vatSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListVatRates(c *gin.Context) {
	resp, err := s.vatSvc.List(c.Request.Context(), c.Query("country"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
