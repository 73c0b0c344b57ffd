package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weslymega/testefeirastudio-sub000/internal/cep"
	"github.com/weslymega/testefeirastudio-sub000/internal/fipe"
	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/services"
)

// LookupHandler fronts the two read-only external collaborators (vehicle
// price guide and postal codes) plus the public banner and plan tables.
type LookupHandler struct {
	fipeClient fipe.IClient
	cepClient  cep.IClient
	banners    services.IBannerService
	promotions services.IPromotionService
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(fipeClient fipe.IClient, cepClient cep.IClient, banners services.IBannerService, promotions services.IPromotionService) *LookupHandler {
	return &LookupHandler{fipeClient: fipeClient, cepClient: cepClient, banners: banners, promotions: promotions}
}

// GetBrands handles GET /v1/fipe/:vehicle_type/brands
func (h *LookupHandler) GetBrands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.fipeClient.Brands(c.Request.Context(), c.Param("vehicle_type"))})
}

// GetModels handles GET /v1/fipe/:vehicle_type/brands/:brand/models
func (h *LookupHandler) GetModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": h.fipeClient.Models(c.Request.Context(), c.Param("vehicle_type"), c.Param("brand")),
	})
}

// GetYears handles GET /v1/fipe/:vehicle_type/brands/:brand/models/:model/years
func (h *LookupHandler) GetYears(c *gin.Context) {
	modelCode, err := strconv.Atoi(c.Param("model"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid model code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": h.fipeClient.Years(c.Request.Context(), c.Param("vehicle_type"), c.Param("brand"), modelCode),
	})
}

// GetDetail handles GET /v1/fipe/:vehicle_type/brands/:brand/models/:model/years/:year
func (h *LookupHandler) GetDetail(c *gin.Context) {
	modelCode, err := strconv.Atoi(c.Param("model"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid model code"})
		return
	}
	detail := h.fipeClient.Detail(c.Request.Context(), c.Param("vehicle_type"), c.Param("brand"), modelCode, c.Param("year"))
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Price record not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetAddress handles GET /v1/cep/:code
func (h *LookupHandler) GetAddress(c *gin.Context) {
	address, err := h.cepClient.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, cep.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "CEP must be 8 digits"})
		case errors.Is(err, cep.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "CEP not found"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "CEP lookup unavailable"})
		}
		return
	}
	c.JSON(http.StatusOK, address)
}

// GetEligibleBanners handles GET /v1/banners/:channel
func (h *LookupHandler) GetEligibleBanners(c *gin.Context) {
	banners, err := h.banners.Eligible(c.Request.Context(), models.BannerChannel(c.Param("channel")), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown banner channel"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": banners})
}

// GetPlans handles GET /v1/plans
func (h *LookupHandler) GetPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.promotions.Plans()})
}
