package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/utils"
)

type DrugTestController struct {
	DB *gorm.DB
}

func NewDrugTestController(db *gorm.DB) *DrugTestController {
	return &DrugTestController{DB: db}
}

// GetInspectorDrugTests lists tests for one inspector, newest first.
func (dc *DrugTestController) GetInspectorDrugTests(c *gin.Context) {
	idStr := c.Param("inspector_id")
	id, _ := strconv.Atoi(idStr)

	var inspector models.Inspector
	if err := dc.DB.Where("is_active = ?", true).First(&inspector, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var tests []models.DrugTest
	if err := dc.DB.Where("inspector_id = ?", id).Order("test_date desc").Find(&tests).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of drug tests", tests)
}

func (dc *DrugTestController) CreateDrugTest(c *gin.Context) {
	idStr := c.Param("inspector_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		TestDate string `json:"test_date" binding:"required"`
		TestType string `json:"test_type" binding:"required"`
		Result   string `json:"result"`
		LabName  string `json:"lab_name"`
		Notes    string `json:"notes"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	testDate, err := parseDate(req.TestDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var inspector models.Inspector
	if err := dc.DB.Where("is_active = ?", true).First(&inspector, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	result := req.Result
	if result == "" {
		result = models.ResultPending
	}

	test := models.DrugTest{
		InspectorID: inspector.ID,
		TestDate:    testDate,
		TestType:    req.TestType,
		Result:      result,
		LabName:     req.LabName,
		Notes:       req.Notes,
		CreatedBy:   c.GetUint("user_id"),
	}

	if err := dc.DB.Create(&test).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Drug test recorded for inspector %s (%s)", inspector.InspectorNumber, req.TestType)

	utils.RespondJSON(c, http.StatusCreated, "Drug test created", test)
}

func (dc *DrugTestController) GetDrugTestByID(c *gin.Context) {
	idStr := c.Param("test_id")
	id, _ := strconv.Atoi(idStr)

	var test models.DrugTest
	if err := dc.DB.First(&test, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Drug test detail", test)
}

func (dc *DrugTestController) UpdateDrugTest(c *gin.Context) {
	idStr := c.Param("test_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Result  string `json:"result"`
		LabName string `json:"lab_name"`
		Notes   string `json:"notes"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var test models.DrugTest
	if err := dc.DB.First(&test, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Result != "" {
		test.Result = req.Result
	}
	if req.LabName != "" {
		test.LabName = req.LabName
	}
	if req.Notes != "" {
		test.Notes = req.Notes
	}

	if err := dc.DB.Save(&test).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Drug test updated", test)
}

func (dc *DrugTestController) DeleteDrugTest(c *gin.Context) {
	idStr := c.Param("test_id")
	id, _ := strconv.Atoi(idStr)

	if err := dc.DB.Delete(&models.DrugTest{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Drug test deleted", gin.H{"test_id": id})
}
