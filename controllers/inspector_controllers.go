package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/services"
	"github.com/fieldops/inspector-app/utils"
)

var (
	ErrStampMismatch = &CustomError{"Record was modified by someone else, reload and retry"}
	ErrNotAvailable  = &CustomError{"Inspector is not available for mobilization"}
	ErrNotMobilized  = &CustomError{"Inspector is not mobilized"}
	ErrFutureDate    = &CustomError{"Date cannot be in the future"}
	ErrUnknownZip    = &CustomError{"No centroid on file for that zip code"}
)

type InspectorController struct {
	DB  *gorm.DB
	Geo *services.GeoService
}

func NewInspectorController(db *gorm.DB, geo *services.GeoService) *InspectorController {
	return &InspectorController{DB: db, Geo: geo}
}

// parseDate accepts the date-only wire format used across the API. An empty
// string means "now".
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

// GetAllInspectors lists active inspectors, optionally filtered by status
// and zip.
func (ic *InspectorController) GetAllInspectors(c *gin.Context) {
	query := ic.DB.Where("is_active = ?", true)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if zip := c.Query("zip"); zip != "" {
		query = query.Where("zip = ?", zip)
	}

	var inspectors []models.Inspector
	if err := query.Order("last_name, first_name").Find(&inspectors).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of inspectors", inspectors)
}

// CreateInspector registers a new inspector. Lat/lon default to the zip
// centroid when the caller does not supply them.
func (ic *InspectorController) CreateInspector(c *gin.Context) {
	type reqBody struct {
		InspectorNumber string   `json:"inspector_number" binding:"required"`
		FirstName       string   `json:"first_name" binding:"required"`
		LastName        string   `json:"last_name" binding:"required"`
		Email           string   `json:"email" binding:"required,email"`
		Phone           string   `json:"phone"`
		Zip             string   `json:"zip"`
		Latitude        *float64 `json:"latitude"`
		Longitude       *float64 `json:"longitude"`
		Notes           string   `json:"notes"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	inspector := models.Inspector{
		InspectorNumber: req.InspectorNumber,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Zip:             req.Zip,
		Status:          models.InspectorAvailable,
		Notes:           req.Notes,
		IsActive:        true,
		CreatedBy:       c.GetUint("user_id"),
	}

	if req.Latitude != nil && req.Longitude != nil {
		inspector.Latitude = *req.Latitude
		inspector.Longitude = *req.Longitude
	} else if req.Zip != "" {
		var zc models.ZipCode
		if err := ic.DB.First(&zc, "zip = ?", req.Zip).Error; err == nil {
			inspector.Latitude = zc.Latitude
			inspector.Longitude = zc.Longitude
		}
	}

	if err := ic.DB.Create(&inspector).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	ic.Geo.PurgeCache()
	utils.InfoLogger.Printf("New inspector created: %s (%s %s)", inspector.InspectorNumber, inspector.FirstName, inspector.LastName)

	utils.RespondJSON(c, http.StatusCreated, "Inspector created", inspector)
}

// GetInspectorByID returns one active inspector with drug tests and
// currently assigned equipment preloaded.
func (ic *InspectorController) GetInspectorByID(c *gin.Context) {
	idStr := c.Param("inspector_id")
	id, _ := strconv.Atoi(idStr)

	var inspector models.Inspector
	err := ic.DB.
		Preload("DrugTests").
		Preload("Equipment", "status = ?", models.EquipmentAssigned).
		Where("is_active = ?", true).
		First(&inspector, id).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inspector detail", inspector)
}

// UpdateInspector overwrites contact fields. The caller must echo the
// update_stamp it last read; a mismatch means someone else saved first.
func (ic *InspectorController) UpdateInspector(c *gin.Context) {
	idStr := c.Param("inspector_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		FirstName   string   `json:"first_name"`
		LastName    string   `json:"last_name"`
		Email       string   `json:"email"`
		Phone       string   `json:"phone"`
		Zip         string   `json:"zip"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		Notes       *string  `json:"notes"`
		UpdateStamp string   `json:"update_stamp" binding:"required"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var inspector models.Inspector
	if err := ic.DB.Where("is_active = ?", true).First(&inspector, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if inspector.UpdateStamp != req.UpdateStamp {
		c.JSON(http.StatusConflict, utils.JSONResponse{
			Status:  false,
			Message: ErrStampMismatch.Error(),
			Data:    gin.H{"update_stamp": inspector.UpdateStamp},
		})
		return
	}

	if req.FirstName != "" {
		inspector.FirstName = req.FirstName
	}
	if req.LastName != "" {
		inspector.LastName = req.LastName
	}
	if req.Email != "" {
		inspector.Email = req.Email
	}
	if req.Phone != "" {
		inspector.Phone = req.Phone
	}
	if req.Zip != "" {
		inspector.Zip = req.Zip
	}
	if req.Latitude != nil {
		inspector.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		inspector.Longitude = *req.Longitude
	}
	if req.Notes != nil {
		inspector.Notes = *req.Notes
	}

	if err := ic.DB.Save(&inspector).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ic.Geo.PurgeCache()
	utils.RespondJSON(c, http.StatusOK, "Inspector updated", inspector)
}

// DeleteInspector soft-deletes: the row stays for history, list and search
// queries stop returning it.
func (ic *InspectorController) DeleteInspector(c *gin.Context) {
	idStr := c.Param("inspector_id")
	id, _ := strconv.Atoi(idStr)

	var inspector models.Inspector
	if err := ic.DB.Where("is_active = ?", true).First(&inspector, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	inspector.IsActive = false
	inspector.Status = models.InspectorInactive
	if err := ic.DB.Save(&inspector).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ic.Geo.PurgeCache()
	utils.RespondJSON(c, http.StatusOK, "Inspector deleted", gin.H{"inspector_id": id})
}

// SearchByRadius finds available inspectors near a zip code.
func (ic *InspectorController) SearchByRadius(c *gin.Context) {
	zip := c.Query("zip")
	if zip == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("zip is required"))
		return
	}

	radius, err := strconv.ParseFloat(c.DefaultQuery("radius_miles", "50"), 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("radius_miles must be a number"))
		return
	}

	hits, err := ic.Geo.SearchByZip(zip, radius)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrZipNotFound):
			utils.RespondError(c, http.StatusNotFound, ErrUnknownZip)
		case errors.Is(err, services.ErrInvalidRadius):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inspectors in radius", hits)
}

// Mobilize assigns an available inspector to a project.
func (ic *InspectorController) Mobilize(c *gin.Context) {
	idStr := c.Param("inspector_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		ProjectName   string `json:"project_name" binding:"required"`
		EffectiveDate string `json:"effective_date"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	effective, err := parseDate(req.EffectiveDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var inspector models.Inspector
	if err := ic.DB.Where("is_active = ?", true).First(&inspector, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if inspector.Status != models.InspectorAvailable {
		utils.RespondError(c, http.StatusConflict, ErrNotAvailable)
		return
	}

	err = ic.DB.Transaction(func(tx *gorm.DB) error {
		inspector.Status = models.InspectorMobilized
		inspector.ProjectName = &req.ProjectName
		inspector.MobilizedAt = &effective
		inspector.DemobilizedAt = nil
		if err := tx.Save(&inspector).Error; err != nil {
			return err
		}

		event := models.MobilizationEvent{
			InspectorID:   inspector.ID,
			Action:        models.ActionMobilize,
			ProjectName:   req.ProjectName,
			EffectiveDate: effective,
			CreatedBy:     c.GetUint("user_id"),
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ic.Geo.PurgeCache()
	utils.InfoLogger.Printf("Inspector %s mobilized to %s", inspector.InspectorNumber, req.ProjectName)

	utils.RespondJSON(c, http.StatusOK, "Inspector mobilized", inspector)
}

// Demobilize releases a mobilized inspector back to the available pool.
func (ic *InspectorController) Demobilize(c *gin.Context) {
	idStr := c.Param("inspector_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		EffectiveDate string `json:"effective_date"`
	}

	// Body is optional; effective date defaults to now.
	var req reqBody
	_ = c.ShouldBindJSON(&req)

	effective, err := parseDate(req.EffectiveDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var inspector models.Inspector
	if err := ic.DB.Where("is_active = ?", true).First(&inspector, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if inspector.Status != models.InspectorMobilized {
		utils.RespondError(c, http.StatusConflict, ErrNotMobilized)
		return
	}

	project := ""
	if inspector.ProjectName != nil {
		project = *inspector.ProjectName
	}

	err = ic.DB.Transaction(func(tx *gorm.DB) error {
		inspector.Status = models.InspectorAvailable
		inspector.ProjectName = nil
		inspector.DemobilizedAt = &effective
		if err := tx.Save(&inspector).Error; err != nil {
			return err
		}

		event := models.MobilizationEvent{
			InspectorID:   inspector.ID,
			Action:        models.ActionDemobilize,
			ProjectName:   project,
			EffectiveDate: effective,
			CreatedBy:     c.GetUint("user_id"),
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ic.Geo.PurgeCache()
	utils.InfoLogger.Printf("Inspector %s demobilized from %s", inspector.InspectorNumber, project)

	utils.RespondJSON(c, http.StatusOK, "Inspector demobilized", inspector)
}
