package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/utils"
)

type ContactController struct {
	DB *gorm.DB
}

func NewContactController(db *gorm.DB) *ContactController {
	return &ContactController{DB: db}
}

func (cc *ContactController) GetCustomerContacts(c *gin.Context) {
	idStr := c.Param("customer_id")
	id, _ := strconv.Atoi(idStr)

	var customer models.Customer
	if err := cc.DB.Where("is_active = ?", true).First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var contacts []models.Contact
	if err := cc.DB.Where("customer_id = ?", id).Order("last_name, first_name").Find(&contacts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of contacts", contacts)
}

func (cc *ContactController) CreateContact(c *gin.Context) {
	idStr := c.Param("customer_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Title     string `json:"title"`
		IsPrimary bool   `json:"is_primary"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.Where("is_active = ?", true).First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	contact := models.Contact{
		CustomerID: customer.ID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Title:      req.Title,
		IsPrimary:  req.IsPrimary,
		CreatedBy:  c.GetUint("user_id"),
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsPrimary {
			// Only one primary contact per customer.
			if err := tx.Model(&models.Contact{}).
				Where("customer_id = ? AND is_primary = ?", customer.ID, true).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&contact).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Contact created", contact)
}

func (cc *ContactController) GetContactByID(c *gin.Context) {
	idStr := c.Param("contact_id")
	id, _ := strconv.Atoi(idStr)

	var contact models.Contact
	if err := cc.DB.First(&contact, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Contact detail", contact)
}

func (cc *ContactController) UpdateContact(c *gin.Context) {
	idStr := c.Param("contact_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Title     string `json:"title"`
		IsPrimary *bool  `json:"is_primary"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var contact models.Contact
	if err := cc.DB.First(&contact, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.FirstName != "" {
		contact.FirstName = req.FirstName
	}
	if req.LastName != "" {
		contact.LastName = req.LastName
	}
	if req.Email != "" {
		contact.Email = req.Email
	}
	if req.Phone != "" {
		contact.Phone = req.Phone
	}
	if req.Title != "" {
		contact.Title = req.Title
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsPrimary != nil && *req.IsPrimary && !contact.IsPrimary {
			if err := tx.Model(&models.Contact{}).
				Where("customer_id = ? AND is_primary = ?", contact.CustomerID, true).
				Update("is_primary", false).Error; err != nil {
				return err
			}
			contact.IsPrimary = true
		} else if req.IsPrimary != nil && !*req.IsPrimary {
			contact.IsPrimary = false
		}
		return tx.Save(&contact).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Contact updated", contact)
}

func (cc *ContactController) DeleteContact(c *gin.Context) {
	idStr := c.Param("contact_id")
	id, _ := strconv.Atoi(idStr)

	if err := cc.DB.Delete(&models.Contact{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Contact deleted", gin.H{"contact_id": id})
}
