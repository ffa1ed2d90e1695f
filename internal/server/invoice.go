package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListInvoiceLines(c *gin.Context) {
	resp, err := s.invoiceSvc.ListLines(c.Request.Context(), c.Param("invoice_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
