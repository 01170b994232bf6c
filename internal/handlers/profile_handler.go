package handlers

import (
	"net/http"

	"collabhub_backend/internal/services"
	"collabhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup, mw RouteMiddleware) {
	brand := rg.Group("/brand-profile")
	brand.Use(mw.Auth)
	{
		brand.GET("", h.GetBrandProfile)
		brand.POST("", h.CreateBrandProfile)
		brand.PUT("", h.UpdateBrandProfile)
	}

	influencer := rg.Group("/influencer-profile")
	influencer.Use(mw.Auth)
	{
		influencer.GET("", h.GetInfluencerProfile)
		influencer.PUT("", h.UpsertInfluencerProfile)
	}
}

// --- Brand ---

func (h *ProfileHandler) GetBrandProfile(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetBrandProfile(h.GetDB(c), rc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) CreateBrandProfile(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	var req dto.BrandProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.CreateBrandProfile(h.GetDB(c), rc, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) UpdateBrandProfile(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	var req dto.BrandProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateBrandProfile(h.GetDB(c), rc, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// --- Influencer ---

func (h *ProfileHandler) GetInfluencerProfile(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetInfluencerProfile(h.GetDB(c), rc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpsertInfluencerProfile(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	var req dto.InfluencerProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpsertInfluencerProfile(h.GetDB(c), rc, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
