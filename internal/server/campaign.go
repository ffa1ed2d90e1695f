package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	campaigndomain "github.com/smallbiznis/classifieds/internal/campaign/domain"
)

type createCampaignRequest struct {
	Name             string              `json:"name"`
	Type             string              `json:"type"`
	Target           string              `json:"target"`
	Status           string              `json:"status"`
	Country          *string             `json:"country"`
	Priority         int32               `json:"priority"`
	DiscountPercent  decimal.NullDecimal `json:"discount_percent"`
	DiscountAmount   decimal.NullDecimal `json:"discount_amount"`
	DiscountCurrency *string             `json:"discount_currency"`
	StartAt          string              `json:"start_at"`
	EndAt            string              `json:"end_at"`
}

func (s *Server) CreateCampaign(c *gin.Context) {
	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startAt, err := parseTime(req.StartAt, false)
	if err != nil {
		AbortWithError(c, newValidationError("start_at", "invalid_time", "invalid start_at"))
		return
	}
	endAt, err := parseTime(req.EndAt, true)
	if err != nil {
		AbortWithError(c, newValidationError("end_at", "invalid_time", "invalid end_at"))
		return
	}

	resp, err := s.campaignSvc.Create(c.Request.Context(), campaigndomain.CreateRequest{
		Name:             req.Name,
		Type:             req.Type,
		Target:           req.Target,
		Status:           req.Status,
		Country:          req.Country,
		Priority:         req.Priority,
		DiscountPercent:  req.DiscountPercent,
		DiscountAmount:   req.DiscountAmount,
		DiscountCurrency: req.DiscountCurrency,
		StartAt:          startAt,
		EndAt:            endAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCampaigns(c *gin.Context) {
	resp, err := s.campaignSvc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type setCampaignStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) SetCampaignStatus(c *gin.Context) {
	var req setCampaignStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.campaignSvc.SetStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
