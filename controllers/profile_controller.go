package controllers

import (
	"errors"
	"net/http"

	"storefront-backend/models"
	"storefront-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AddressRequest struct {
	Type       string `json:"type" binding:"required,oneof=billing shipping"`
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone"`
	Street1    string `json:"street1" binding:"required"`
	Street2    string `json:"street2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

type MeasurementRequest struct {
	Label      string  `json:"label" binding:"required"`
	BustCm     float64 `json:"bust_cm" binding:"omitempty,gt=0"`
	WaistCm    float64 `json:"waist_cm" binding:"omitempty,gt=0"`
	HipCm      float64 `json:"hip_cm" binding:"omitempty,gt=0"`
	ShoulderCm float64 `json:"shoulder_cm" binding:"omitempty,gt=0"`
	Notes      string  `json:"notes"`
}

type ProfileController struct {
	Addresses    repository.AddressRepository
	Measurements repository.MeasurementRepository
	Logger       *zap.Logger
}

func NewProfileController(
	addresses repository.AddressRepository,
	measurements repository.MeasurementRepository,
	logger *zap.Logger,
) *ProfileController {
	return &ProfileController{Addresses: addresses, Measurements: measurements, Logger: logger}
}

// ---- addresses ----

func (pc *ProfileController) ListAddresses(c *gin.Context) {
	userUUID, ok := authedUserUUID(c)
	if !ok {
		return
	}

	addrs, err := pc.Addresses.FindByUserID(c.Request.Context(), userUUID)
	if err != nil {
		pc.Logger.Error("address list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addrs})
}

func (pc *ProfileController) CreateAddress(c *gin.Context) {
	userUUID, ok := authedUserUUID(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	addr := addressFromRequest(&req, userUUID)
	ctx := c.Request.Context()

	if addr.IsDefault {
		if err := pc.Addresses.ClearDefault(ctx, userUUID, addr.Type); err != nil {
			pc.Logger.Warn("default address clear failed", zap.Error(err))
		}
	}

	if err := pc.Addresses.Create(ctx, addr); err != nil {
		pc.Logger.Error("address create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": addr})
}

func (pc *ProfileController) UpdateAddress(c *gin.Context) {
	userUUID, ok := authedUserUUID(c)
	if !ok {
		return
	}
	addrID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID format"})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	existing, err := pc.Addresses.FindByIDAndUserID(ctx, addrID, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		pc.Logger.Error("address lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}

	updated := addressFromRequest(&req, userUUID)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if updated.IsDefault {
		if err := pc.Addresses.ClearDefault(ctx, userUUID, updated.Type); err != nil {
			pc.Logger.Warn("default address clear failed", zap.Error(err))
		}
	}

	if err := pc.Addresses.Update(ctx, updated); err != nil {
		pc.Logger.Error("address update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": updated})
}

func (pc *ProfileController) DeleteAddress(c *gin.Context) {
	userUUID, ok := authedUserUUID(c)
	if !ok {
		return
	}
	addrID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID format"})
		return
	}

	if err := pc.Addresses.Delete(c.Request.Context(), addrID, userUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		pc.Logger.Error("address delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

// ---- measurements ----

func (pc *ProfileController) ListMeasurements(c *gin.Context) {
	userUUID, ok := authedUserUUID(c)
	if !ok {
		return
	}

	ms, err := pc.Measurements.FindByUserID(c.Request.Context(), userUUID)
	if err != nil {
		pc.Logger.Error("measurement list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch measurements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": ms})
}

func (pc *ProfileController) CreateMeasurement(c *gin.Context) {
	userUUID, ok := authedUserUUID(c)
	if !ok {
		return
	}

	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	m := measurementFromRequest(&req, userUUID)
	if err := pc.Measurements.Create(c.Request.Context(), m); err != nil {
		pc.Logger.Error("measurement create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save measurement"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"measurement": m})
}

func (pc *ProfileController) UpdateMeasurement(c *gin.Context) {
	userUUID, ok := authedUserUUID(c)
	if !ok {
		return
	}
	mID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid measurement ID format"})
		return
	}

	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	existing, err := pc.Measurements.FindByIDAndUserID(ctx, mID, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Measurement not found"})
			return
		}
		pc.Logger.Error("measurement lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update measurement"})
		return
	}

	updated := measurementFromRequest(&req, userUUID)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := pc.Measurements.Update(ctx, updated); err != nil {
		pc.Logger.Error("measurement update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update measurement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"measurement": updated})
}

func (pc *ProfileController) DeleteMeasurement(c *gin.Context) {
	userUUID, ok := authedUserUUID(c)
	if !ok {
		return
	}
	mID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid measurement ID format"})
		return
	}

	if err := pc.Measurements.Delete(c.Request.Context(), mID, userUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Measurement not found"})
			return
		}
		pc.Logger.Error("measurement delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete measurement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Measurement deleted"})
}

func addressFromRequest(req *AddressRequest, userID uuid.UUID) *models.Address {
	country := req.Country
	if country == "" {
		country = "IN"
	}
	return &models.Address{
		UserID:     userID,
		Type:       req.Type,
		Name:       req.Name,
		Phone:      req.Phone,
		Street1:    req.Street1,
		Street2:    req.Street2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    country,
		IsDefault:  req.IsDefault,
	}
}

func measurementFromRequest(req *MeasurementRequest, userID uuid.UUID) *models.Measurement {
	return &models.Measurement{
		UserID:     userID,
		Label:      req.Label,
		BustCm:     req.BustCm,
		WaistCm:    req.WaistCm,
		HipCm:      req.HipCm,
		ShoulderCm: req.ShoulderCm,
		Notes:      req.Notes,
	}
}
