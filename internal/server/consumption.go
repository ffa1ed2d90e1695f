package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	consumptiondomain "github.com/smallbiznis/classifieds/internal/consumption/domain"
)

func (s *Server) ListSellerConsumption(c *gin.Context) {
	pageSize, err := parseOptionalInt(c.Query("page_size"))
	if err != nil {
		AbortWithError(c, newValidationError("page_size", "invalid_page_size", "invalid page_size"))
		return
	}

	resp, err := s.consumptionSvc.ListBySeller(c.Request.Context(), consumptiondomain.ListRequest{
		SellerID:  c.Param("seller_id"),
		Source:    c.Query("source"),
		PageToken: c.Query("page_token"),
		PageSize:  pageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":            resp.Items,
		"next_page_token": resp.NextPageToken,
	})
}
