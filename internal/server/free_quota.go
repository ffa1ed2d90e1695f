package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	freequotadomain "github.com/smallbiznis/classifieds/internal/freequota/domain"
)

func (s *Server) UpsertFreeQuota(c *gin.Context) {
	var req freequotadomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.freeQuotaSvc.Upsert(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListFreeQuotas(c *gin.Context) {
	resp, err := s.freeQuotaSvc.List(c.Request.Context(), c.Query("country"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
