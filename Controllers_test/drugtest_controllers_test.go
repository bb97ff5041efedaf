package Controllers_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/controllers"
	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/utils"
)

func setupTestDBForDrugTests(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:drugtestctl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&models.Inspector{}, &models.DrugTest{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.Exec("DELETE FROM drug_tests")
	db.Exec("DELETE FROM inspectors")

	inspector := models.Inspector{
		InspectorNumber: "INS-6001",
		FirstName:       "Priya",
		LastName:        "Shah",
		Email:           "priya.shah@example.com",
		Status:          models.InspectorAvailable,
		IsActive:        true,
	}
	db.Create(&inspector)
	return db
}

func setupDrugTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	drugTestCtrl := controllers.NewDrugTestController(db)
	router.GET("/api/inspectors/:inspector_id/drug-tests", drugTestCtrl.GetInspectorDrugTests)
	router.POST("/api/inspectors/:inspector_id/drug-tests", drugTestCtrl.CreateDrugTest)
	router.GET("/api/drug-tests/:test_id", drugTestCtrl.GetDrugTestByID)
	router.PATCH("/api/drug-tests/:test_id", drugTestCtrl.UpdateDrugTest)
	router.DELETE("/api/drug-tests/:test_id", drugTestCtrl.DeleteDrugTest)

	return router
}

func TestCreateAndResolveDrugTest(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDrugTests(t)
	router := setupDrugTestRouter(db)

	var inspector models.Inspector
	db.Where("inspector_number = ?", "INS-6001").First(&inspector)
	base := "/api/inspectors/" + strconv.Itoa(int(inspector.ID)) + "/drug-tests"

	w := postJSON(t, router, base, map[string]interface{}{
		"test_date": "2024-06-12",
		"test_type": "10-panel",
		"lab_name":  "Quest Diagnostics",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, models.ResultPending, data["result"])
	testID := int(data["id"].(float64))

	// Creating against an unknown inspector 404s.
	w = postJSON(t, router, "/api/inspectors/999999/drug-tests", map[string]interface{}{
		"test_date": "2024-06-12",
		"test_type": "10-panel",
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Resolve the result.
	w = patchJSON(t, router, "/api/drug-tests/"+strconv.Itoa(testID), map[string]interface{}{
		"result": models.ResultNegative,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, models.ResultNegative, data["result"])

	// It lists under the inspector.
	w = getURL(t, router, base)
	assert.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Data []models.DrugTest `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 1)
	assert.Equal(t, "10-panel", listResp.Data[0].TestType)

	// Delete removes it.
	req, _ := http.NewRequest("DELETE", "/api/drug-tests/"+strconv.Itoa(testID), nil)
	w2 := newRecorder(router, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	w = getURL(t, router, "/api/drug-tests/"+strconv.Itoa(testID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
