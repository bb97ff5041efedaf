package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/controllers"
	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/utils"
)

func setupTestDBForEquipment(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:equipmentctl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&models.Inspector{}, &models.Equipment{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.Exec("DELETE FROM equipment")
	db.Exec("DELETE FROM inspectors")

	inspector := models.Inspector{
		InspectorNumber: "INS-9001",
		FirstName:       "Gus",
		LastName:        "Palmer",
		Email:           "gus.palmer@example.com",
		Status:          models.InspectorAvailable,
		IsActive:        true,
	}
	db.Create(&inspector)
	return db
}

func setupEquipmentRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	equipmentCtrl := controllers.NewEquipmentController(db)
	router.GET("/api/equipment", equipmentCtrl.GetAllEquipment)
	router.POST("/api/equipment", equipmentCtrl.CreateEquipment)
	router.GET("/api/equipment/:equipment_id", equipmentCtrl.GetEquipmentByID)
	router.PATCH("/api/equipment/:equipment_id", equipmentCtrl.UpdateEquipment)
	router.DELETE("/api/equipment/:equipment_id", equipmentCtrl.DeleteEquipment)
	router.POST("/api/equipment/:equipment_id/assign", equipmentCtrl.AssignToInspector)
	router.POST("/api/equipment/:equipment_id/return", equipmentCtrl.RecordReturn)
	router.GET("/api/inspectors/:inspector_id/equipment", equipmentCtrl.GetInspectorEquipment)

	return router
}

func newRecorder(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAssignAndReturnEquipment(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForEquipment(t)
	router := setupEquipmentRouter(db)

	var inspector models.Inspector
	db.Where("inspector_number = ?", "INS-9001").First(&inspector)

	w := postJSON(t, router, "/api/equipment", map[string]interface{}{
		"serial_number": "EQ-5555",
		"description":   "Ultrasonic thickness gauge",
		"category":      "NDT",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	eqID := int(decodeData(t, w)["id"].(float64))

	// Returning unassigned equipment is a conflict.
	w = postJSON(t, router, "/api/equipment/"+strconv.Itoa(eqID)+"/return", map[string]interface{}{}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Future assignment dates are rejected.
	future := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	w = postJSON(t, router, "/api/equipment/"+strconv.Itoa(eqID)+"/assign", map[string]interface{}{
		"inspector_id": inspector.ID,
		"assigned_at":  future,
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Assign with an explicit past date.
	w = postJSON(t, router, "/api/equipment/"+strconv.Itoa(eqID)+"/assign", map[string]interface{}{
		"inspector_id": inspector.ID,
		"assigned_at":  "2024-03-01",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, models.EquipmentAssigned, data["status"])
	assert.Equal(t, float64(inspector.ID), data["inspector_id"])

	// Double-assign is a conflict.
	w = postJSON(t, router, "/api/equipment/"+strconv.Itoa(eqID)+"/assign", map[string]interface{}{
		"inspector_id": inspector.ID,
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// The item shows up on the inspector's checkout list.
	w = getURL(t, router, "/api/inspectors/"+strconv.Itoa(int(inspector.ID))+"/equipment")
	assert.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Data []models.Equipment `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 1)
	assert.Equal(t, "EQ-5555", listResp.Data[0].SerialNumber)

	// Return before the assignment date is rejected.
	w = postJSON(t, router, "/api/equipment/"+strconv.Itoa(eqID)+"/return", map[string]interface{}{
		"returned_at": "2024-02-01",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Valid return frees the item.
	w = postJSON(t, router, "/api/equipment/"+strconv.Itoa(eqID)+"/return", map[string]interface{}{
		"returned_at": "2024-03-15",
		"condition":   "scratched case",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, models.EquipmentAvailable, data["status"])
	assert.Nil(t, data["inspector_id"])
	assert.Equal(t, "scratched case", data["condition"])

	w = getURL(t, router, "/api/inspectors/"+strconv.Itoa(int(inspector.ID))+"/equipment")
	listResp.Data = nil
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 0)
}

func TestDuplicateSerialRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForEquipment(t)
	router := setupEquipmentRouter(db)

	w := postJSON(t, router, "/api/equipment", map[string]interface{}{
		"serial_number": "EQ-7777",
		"description":   "Holiday detector",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/api/equipment", map[string]interface{}{
		"serial_number": "EQ-7777",
		"description":   "Another gauge",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEquipmentUpdateStampConflict(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForEquipment(t)
	router := setupEquipmentRouter(db)

	w := postJSON(t, router, "/api/equipment", map[string]interface{}{
		"serial_number": "EQ-9999",
		"description":   "Dry film thickness gauge",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	eqID := int(data["id"].(float64))
	stamp := data["update_stamp"].(string)

	// Stale stamp conflicts and returns the current one.
	w = patchJSON(t, router, "/api/equipment/"+strconv.Itoa(eqID), map[string]interface{}{
		"condition":    "calibrated",
		"update_stamp": "not-the-stamp",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, stamp, decodeData(t, w)["update_stamp"])

	// The stamp we read succeeds and rotates.
	w = patchJSON(t, router, "/api/equipment/"+strconv.Itoa(eqID), map[string]interface{}{
		"condition":    "calibrated",
		"update_stamp": stamp,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeData(t, w)
	assert.Equal(t, "calibrated", updated["condition"])
	assert.NotEqual(t, stamp, updated["update_stamp"])
}

func TestRetireBlocksAssignedEquipment(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForEquipment(t)
	router := setupEquipmentRouter(db)

	var inspector models.Inspector
	db.Where("inspector_number = ?", "INS-9001").First(&inspector)

	w := postJSON(t, router, "/api/equipment", map[string]interface{}{
		"serial_number": "EQ-8888",
		"description":   "Pit gauge",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	eqID := int(decodeData(t, w)["id"].(float64))

	w = postJSON(t, router, "/api/equipment/"+strconv.Itoa(eqID)+"/assign", map[string]interface{}{
		"inspector_id": inspector.ID,
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Cannot retire while checked out.
	req, _ := http.NewRequest("DELETE", "/api/equipment/"+strconv.Itoa(eqID), nil)
	w2 := newRecorder(router, req)
	assert.Equal(t, http.StatusConflict, w2.Code)

	w = postJSON(t, router, "/api/equipment/"+strconv.Itoa(eqID)+"/return", map[string]interface{}{}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("DELETE", "/api/equipment/"+strconv.Itoa(eqID), nil)
	w2 = newRecorder(router, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	// Retired equipment cannot be assigned again.
	w = postJSON(t, router, "/api/equipment/"+strconv.Itoa(eqID)+"/assign", map[string]interface{}{
		"inspector_id": inspector.ID,
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}
