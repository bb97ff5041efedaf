package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/utils"
)

type QuickLinkController struct {
	DB *gorm.DB
}

func NewQuickLinkController(db *gorm.DB) *QuickLinkController {
	return &QuickLinkController{DB: db}
}

func (qc *QuickLinkController) GetAllQuickLinks(c *gin.Context) {
	query := qc.DB.Order("sort_order, title")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var links []models.QuickLink
	if err := query.Find(&links).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of quick links", links)
}

func (qc *QuickLinkController) CreateQuickLink(c *gin.Context) {
	type reqBody struct {
		Title     string `json:"title" binding:"required"`
		URL       string `json:"url" binding:"required,url"`
		Category  string `json:"category"`
		SortOrder int    `json:"sort_order"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	link := models.QuickLink{
		Title:     req.Title,
		URL:       req.URL,
		Category:  req.Category,
		SortOrder: req.SortOrder,
		CreatedBy: c.GetUint("user_id"),
	}

	if err := qc.DB.Create(&link).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Quick link created", link)
}

func (qc *QuickLinkController) UpdateQuickLink(c *gin.Context) {
	idStr := c.Param("link_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Title     string `json:"title"`
		URL       string `json:"url"`
		Category  string `json:"category"`
		SortOrder *int   `json:"sort_order"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var link models.QuickLink
	if err := qc.DB.First(&link, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Title != "" {
		link.Title = req.Title
	}
	if req.URL != "" {
		link.URL = req.URL
	}
	if req.Category != "" {
		link.Category = req.Category
	}
	if req.SortOrder != nil {
		link.SortOrder = *req.SortOrder
	}

	if err := qc.DB.Save(&link).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Quick link updated", link)
}

func (qc *QuickLinkController) DeleteQuickLink(c *gin.Context) {
	idStr := c.Param("link_id")
	id, _ := strconv.Atoi(idStr)

	if err := qc.DB.Delete(&models.QuickLink{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Quick link deleted", gin.H{"link_id": id})
}
