package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/utils"
)

var (
	ErrAlreadyAssigned = &CustomError{"Equipment is already assigned"}
	ErrNotAssigned     = &CustomError{"Equipment is not currently assigned"}
	ErrReturnBefore    = &CustomError{"Return date cannot precede assignment date"}
	ErrRetired         = &CustomError{"Equipment has been retired"}
)

type EquipmentController struct {
	DB *gorm.DB
}

func NewEquipmentController(db *gorm.DB) *EquipmentController {
	return &EquipmentController{DB: db}
}

func (ec *EquipmentController) GetAllEquipment(c *gin.Context) {
	query := ec.DB.Where("is_active = ?", true)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var equipment []models.Equipment
	if err := query.Preload("Inspector").Order("serial_number").Find(&equipment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of equipment", equipment)
}

func (ec *EquipmentController) CreateEquipment(c *gin.Context) {
	type reqBody struct {
		SerialNumber string `json:"serial_number" binding:"required"`
		Description  string `json:"description" binding:"required"`
		Category     string `json:"category"`
		Condition    string `json:"condition"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	equipment := models.Equipment{
		SerialNumber: req.SerialNumber,
		Description:  req.Description,
		Category:     req.Category,
		Condition:    req.Condition,
		Status:       models.EquipmentAvailable,
		IsActive:     true,
		CreatedBy:    c.GetUint("user_id"),
	}

	if err := ec.DB.Create(&equipment).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	utils.InfoLogger.Printf("New equipment created: %s (%s)", equipment.SerialNumber, equipment.Description)

	utils.RespondJSON(c, http.StatusCreated, "Equipment created", equipment)
}

func (ec *EquipmentController) GetEquipmentByID(c *gin.Context) {
	idStr := c.Param("equipment_id")
	id, _ := strconv.Atoi(idStr)

	var equipment models.Equipment
	if err := ec.DB.Preload("Inspector").Where("is_active = ?", true).First(&equipment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Equipment detail", equipment)
}

func (ec *EquipmentController) UpdateEquipment(c *gin.Context) {
	idStr := c.Param("equipment_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Description string `json:"description"`
		Category    string `json:"category"`
		Condition   string `json:"condition"`
		UpdateStamp string `json:"update_stamp" binding:"required"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var equipment models.Equipment
	if err := ec.DB.Where("is_active = ?", true).First(&equipment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if equipment.UpdateStamp != req.UpdateStamp {
		c.JSON(http.StatusConflict, utils.JSONResponse{
			Status:  false,
			Message: ErrStampMismatch.Error(),
			Data:    gin.H{"update_stamp": equipment.UpdateStamp},
		})
		return
	}

	if req.Description != "" {
		equipment.Description = req.Description
	}
	if req.Category != "" {
		equipment.Category = req.Category
	}
	if req.Condition != "" {
		equipment.Condition = req.Condition
	}

	if err := ec.DB.Save(&equipment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Equipment updated", equipment)
}

// DeleteEquipment retires the item; assigned items must be returned first.
func (ec *EquipmentController) DeleteEquipment(c *gin.Context) {
	idStr := c.Param("equipment_id")
	id, _ := strconv.Atoi(idStr)

	var equipment models.Equipment
	if err := ec.DB.Where("is_active = ?", true).First(&equipment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if equipment.Status == models.EquipmentAssigned {
		utils.RespondError(c, http.StatusConflict, ErrAlreadyAssigned)
		return
	}

	equipment.IsActive = false
	equipment.Status = models.EquipmentRetired
	if err := ec.DB.Save(&equipment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Equipment retired", gin.H{"equipment_id": id})
}

// AssignToInspector hands an available item to an active inspector.
func (ec *EquipmentController) AssignToInspector(c *gin.Context) {
	idStr := c.Param("equipment_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		InspectorID uint   `json:"inspector_id" binding:"required"`
		AssignedAt  string `json:"assigned_at"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	assignedAt, err := parseDate(req.AssignedAt)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if assignedAt.After(time.Now()) {
		utils.RespondError(c, http.StatusBadRequest, ErrFutureDate)
		return
	}

	var equipment models.Equipment
	if err := ec.DB.First(&equipment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !equipment.IsActive || equipment.Status == models.EquipmentRetired {
		utils.RespondError(c, http.StatusConflict, ErrRetired)
		return
	}
	if equipment.Status == models.EquipmentAssigned {
		utils.RespondError(c, http.StatusConflict, ErrAlreadyAssigned)
		return
	}

	var inspector models.Inspector
	if err := ec.DB.Where("is_active = ?", true).First(&inspector, req.InspectorID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err = ec.DB.Transaction(func(tx *gorm.DB) error {
		equipment.Status = models.EquipmentAssigned
		equipment.InspectorID = &inspector.ID
		equipment.AssignedAt = &assignedAt
		equipment.ReturnedAt = nil
		return tx.Save(&equipment).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Equipment %s assigned to inspector %s", equipment.SerialNumber, inspector.InspectorNumber)

	utils.RespondJSON(c, http.StatusOK, "Equipment assigned", equipment)
}

// RecordReturn takes an assigned item back into the available pool.
func (ec *EquipmentController) RecordReturn(c *gin.Context) {
	idStr := c.Param("equipment_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		ReturnedAt string `json:"returned_at"`
		Condition  string `json:"condition"`
	}

	var req reqBody
	_ = c.ShouldBindJSON(&req)

	returnedAt, err := parseDate(req.ReturnedAt)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if returnedAt.After(time.Now()) {
		utils.RespondError(c, http.StatusBadRequest, ErrFutureDate)
		return
	}

	var equipment models.Equipment
	if err := ec.DB.First(&equipment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if equipment.Status != models.EquipmentAssigned {
		utils.RespondError(c, http.StatusConflict, ErrNotAssigned)
		return
	}

	if equipment.AssignedAt != nil && returnedAt.Before(*equipment.AssignedAt) {
		utils.RespondError(c, http.StatusBadRequest, ErrReturnBefore)
		return
	}

	err = ec.DB.Transaction(func(tx *gorm.DB) error {
		equipment.Status = models.EquipmentAvailable
		equipment.InspectorID = nil
		equipment.ReturnedAt = &returnedAt
		if req.Condition != "" {
			equipment.Condition = req.Condition
		}
		return tx.Save(&equipment).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Equipment %s returned", equipment.SerialNumber)

	utils.RespondJSON(c, http.StatusOK, "Equipment returned", equipment)
}

// GetInspectorEquipment lists items currently checked out to one inspector.
func (ec *EquipmentController) GetInspectorEquipment(c *gin.Context) {
	idStr := c.Param("inspector_id")
	id, _ := strconv.Atoi(idStr)

	var equipment []models.Equipment
	err := ec.DB.
		Where("inspector_id = ? AND status = ?", id, models.EquipmentAssigned).
		Order("serial_number").
		Find(&equipment).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Assigned equipment", equipment)
}
