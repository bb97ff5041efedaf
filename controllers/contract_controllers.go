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

var ErrContractNotDraft = &CustomError{"Only draft contracts can be deleted; terminate instead"}

type ContractController struct {
	DB *gorm.DB
}

func NewContractController(db *gorm.DB) *ContractController {
	return &ContractController{DB: db}
}

func (cc *ContractController) GetCustomerContracts(c *gin.Context) {
	idStr := c.Param("customer_id")
	id, _ := strconv.Atoi(idStr)

	var customer models.Customer
	if err := cc.DB.Where("is_active = ?", true).First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var contracts []models.Contract
	if err := cc.DB.Where("customer_id = ?", id).Order("start_date desc").Find(&contracts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of contracts", contracts)
}

func (cc *ContractController) CreateContract(c *gin.Context) {
	idStr := c.Param("customer_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		ContractNumber string  `json:"contract_number" binding:"required"`
		Description    string  `json:"description"`
		StartDate      string  `json:"start_date" binding:"required"`
		EndDate        string  `json:"end_date"`
		Status         string  `json:"status"`
		Value          float64 `json:"value"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		endDate = &parsed
	}

	var customer models.Customer
	if err := cc.DB.Where("is_active = ?", true).First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	status := req.Status
	if status == "" {
		status = models.ContractDraft
	}

	contract := models.Contract{
		CustomerID:     customer.ID,
		ContractNumber: req.ContractNumber,
		Description:    req.Description,
		StartDate:      startDate,
		EndDate:        endDate,
		Status:         status,
		Value:          req.Value,
		CreatedBy:      c.GetUint("user_id"),
	}

	if err := cc.DB.Create(&contract).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	utils.InfoLogger.Printf("New contract %s created for customer %s", contract.ContractNumber, customer.Name)

	utils.RespondJSON(c, http.StatusCreated, "Contract created", contract)
}

func (cc *ContractController) GetContractByID(c *gin.Context) {
	idStr := c.Param("contract_id")
	id, _ := strconv.Atoi(idStr)

	var contract models.Contract
	if err := cc.DB.First(&contract, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Contract detail", contract)
}

func (cc *ContractController) UpdateContract(c *gin.Context) {
	idStr := c.Param("contract_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Description string   `json:"description"`
		EndDate     string   `json:"end_date"`
		Status      string   `json:"status"`
		Value       *float64 `json:"value"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var contract models.Contract
	if err := cc.DB.First(&contract, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Description != "" {
		contract.Description = req.Description
	}
	if req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		contract.EndDate = &parsed
	}
	if req.Status != "" {
		contract.Status = req.Status
	}
	if req.Value != nil {
		contract.Value = *req.Value
	}

	if err := cc.DB.Save(&contract).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Contract updated", contract)
}

// DeleteContract removes draft contracts only. Anything past draft is part
// of the business record and must be terminated through an update.
func (cc *ContractController) DeleteContract(c *gin.Context) {
	idStr := c.Param("contract_id")
	id, _ := strconv.Atoi(idStr)

	var contract models.Contract
	if err := cc.DB.First(&contract, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if contract.Status != models.ContractDraft {
		utils.RespondError(c, http.StatusConflict, ErrContractNotDraft)
		return
	}

	if err := cc.DB.Delete(&contract).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Contract deleted", gin.H{"contract_id": id})
}
