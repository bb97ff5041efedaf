package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats aggregates the counters the admin dashboard shows.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	var stats struct {
		InspectorStats struct {
			Available int64 `json:"available"`
			Mobilized int64 `json:"mobilized"`
			Total     int64 `json:"total"`
		} `json:"inspector_stats"`
		EquipmentStats struct {
			Available int64 `json:"available"`
			Assigned  int64 `json:"assigned"`
			Retired   int64 `json:"retired"`
		} `json:"equipment_stats"`
		PendingDrugTests int64                      `json:"pending_drug_tests"`
		ActiveContracts  int64                      `json:"active_contracts"`
		ActiveCustomers  int64                      `json:"active_customers"`
		RecentEvents     []models.MobilizationEvent `json:"recent_events"`
	}

	ac.DB.Model(&models.Inspector{}).
		Where("is_active = ? AND status = ?", true, models.InspectorAvailable).
		Count(&stats.InspectorStats.Available)
	ac.DB.Model(&models.Inspector{}).
		Where("is_active = ? AND status = ?", true, models.InspectorMobilized).
		Count(&stats.InspectorStats.Mobilized)
	ac.DB.Model(&models.Inspector{}).
		Where("is_active = ?", true).
		Count(&stats.InspectorStats.Total)

	ac.DB.Model(&models.Equipment{}).
		Where("status = ?", models.EquipmentAvailable).
		Count(&stats.EquipmentStats.Available)
	ac.DB.Model(&models.Equipment{}).
		Where("status = ?", models.EquipmentAssigned).
		Count(&stats.EquipmentStats.Assigned)
	ac.DB.Model(&models.Equipment{}).
		Where("status = ?", models.EquipmentRetired).
		Count(&stats.EquipmentStats.Retired)

	ac.DB.Model(&models.DrugTest{}).
		Where("result = ?", models.ResultPending).
		Count(&stats.PendingDrugTests)
	ac.DB.Model(&models.Contract{}).
		Where("status = ?", models.ContractActive).
		Count(&stats.ActiveContracts)
	ac.DB.Model(&models.Customer{}).
		Where("is_active = ?", true).
		Count(&stats.ActiveCustomers)

	if err := ac.DB.Order("created_at desc").Limit(10).Find(&stats.RecentEvents).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}
