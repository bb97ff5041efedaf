package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/controllers"
	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/services"
	"github.com/fieldops/inspector-app/utils"
)

func setupTestDBForInspectors(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:inspectorctl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.ZipCode{},
		&models.Inspector{},
		&models.MobilizationEvent{},
		&models.Equipment{},
		&models.DrugTest{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.Exec("DELETE FROM mobilization_events")
	db.Exec("DELETE FROM equipment")
	db.Exec("DELETE FROM drug_tests")
	db.Exec("DELETE FROM inspectors")
	db.Exec("DELETE FROM zip_codes")

	zips := []models.ZipCode{
		{Zip: "77002", City: "Houston", State: "TX", Latitude: 29.7589, Longitude: -95.3677},
		{Zip: "77494", City: "Katy", State: "TX", Latitude: 29.7430, Longitude: -95.8010},
	}
	db.Create(&zips)
	return db
}

func setupInspectorRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	geo := services.NewGeoService(db)
	inspectorCtrl := controllers.NewInspectorController(db, geo)
	router.GET("/api/inspectors", inspectorCtrl.GetAllInspectors)
	router.GET("/api/inspectors/search", inspectorCtrl.SearchByRadius)
	router.POST("/api/inspectors", inspectorCtrl.CreateInspector)
	router.GET("/api/inspectors/:inspector_id", inspectorCtrl.GetInspectorByID)
	router.PATCH("/api/inspectors/:inspector_id", inspectorCtrl.UpdateInspector)
	router.DELETE("/api/inspectors/:inspector_id", inspectorCtrl.DeleteInspector)
	router.POST("/api/inspectors/:inspector_id/mobilize", inspectorCtrl.Mobilize)
	router.POST("/api/inspectors/:inspector_id/demobilize", inspectorCtrl.Demobilize)

	return router
}

func patchJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("PATCH", url, bytes.NewReader(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getURL(t *testing.T, router *gin.Engine, url string) *httptest.ResponseRecorder {
	req, err := http.NewRequest("GET", url, nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	assert.True(t, ok, "response data should be an object: %s", w.Body.String())
	return data
}

func TestCreateAndUpdateInspector(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInspectors(t)
	router := setupInspectorRouter(db)

	w := postJSON(t, router, "/api/inspectors", map[string]interface{}{
		"inspector_number": "INS-1001",
		"first_name":       "Dana",
		"last_name":        "Whitfield",
		"email":            "dana.whitfield@example.com",
		"zip":              "77002",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	stamp := data["update_stamp"].(string)
	assert.NotEmpty(t, stamp)
	// Lat/lon defaulted from the zip centroid.
	assert.InDelta(t, 29.7589, data["latitude"].(float64), 0.0001)
	id := int(data["id"].(float64))

	// Duplicate inspector number is rejected.
	w = postJSON(t, router, "/api/inspectors", map[string]interface{}{
		"inspector_number": "INS-1001",
		"first_name":       "Other",
		"last_name":        "Person",
		"email":            "other@example.com",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Update with a stale stamp conflicts and returns the current one.
	w = patchJSON(t, router, "/api/inspectors/"+strconv.Itoa(id), map[string]interface{}{
		"phone":        "555-0100",
		"update_stamp": "not-the-stamp",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	conflictData := decodeData(t, w)
	assert.Equal(t, stamp, conflictData["update_stamp"])

	// Update with the stamp we read succeeds and rotates it.
	w = patchJSON(t, router, "/api/inspectors/"+strconv.Itoa(id), map[string]interface{}{
		"phone":        "555-0100",
		"update_stamp": stamp,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeData(t, w)
	assert.Equal(t, "555-0100", updated["phone"])
	assert.NotEqual(t, stamp, updated["update_stamp"])
}

func TestSoftDeleteExcludesInspector(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInspectors(t)
	router := setupInspectorRouter(db)

	w := postJSON(t, router, "/api/inspectors", map[string]interface{}{
		"inspector_number": "INS-2001",
		"first_name":       "Lee",
		"last_name":        "Tran",
		"email":            "lee.tran@example.com",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	id := int(decodeData(t, w)["id"].(float64))

	req, _ := http.NewRequest("DELETE", "/api/inspectors/"+strconv.Itoa(id), nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	// Gone from detail and list.
	w2 = getURL(t, router, "/api/inspectors/"+strconv.Itoa(id))
	assert.Equal(t, http.StatusNotFound, w2.Code)

	w2 = getURL(t, router, "/api/inspectors")
	var listResp struct {
		Data []models.Inspector `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w2.Body.Bytes(), &listResp))
	for _, insp := range listResp.Data {
		assert.NotEqual(t, uint(id), insp.ID)
	}
}

func TestMobilizeAndDemobilize(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInspectors(t)
	router := setupInspectorRouter(db)

	w := postJSON(t, router, "/api/inspectors", map[string]interface{}{
		"inspector_number": "INS-3001",
		"first_name":       "Marta",
		"last_name":        "Ibarra",
		"email":            "marta.ibarra@example.com",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	id := int(decodeData(t, w)["id"].(float64))

	// Demobilizing an available inspector is a conflict.
	w = postJSON(t, router, "/api/inspectors/"+strconv.Itoa(id)+"/demobilize", map[string]interface{}{}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(t, router, "/api/inspectors/"+strconv.Itoa(id)+"/mobilize", map[string]interface{}{
		"project_name": "Pipeline Survey North",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, models.InspectorMobilized, data["status"])
	assert.Equal(t, "Pipeline Survey North", data["project_name"])

	// Mobilizing again while out is a conflict.
	w = postJSON(t, router, "/api/inspectors/"+strconv.Itoa(id)+"/mobilize", map[string]interface{}{
		"project_name": "Another Project",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(t, router, "/api/inspectors/"+strconv.Itoa(id)+"/demobilize", map[string]interface{}{}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, models.InspectorAvailable, data["status"])

	// Both transitions left an audit event.
	var events []models.MobilizationEvent
	db.Where("inspector_id = ?", id).Order("id").Find(&events)
	assert.Len(t, events, 2)
	assert.Equal(t, models.ActionMobilize, events[0].Action)
	assert.Equal(t, models.ActionDemobilize, events[1].Action)
}

func TestRadiusSearch(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInspectors(t)
	router := setupInspectorRouter(db)

	// One inspector at the Houston centroid, one out in Katy (~27 miles).
	for _, in := range []map[string]interface{}{
		{"inspector_number": "INS-4001", "first_name": "Ray", "last_name": "Okafor",
			"email": "ray.okafor@example.com", "zip": "77002"},
		{"inspector_number": "INS-4002", "first_name": "June", "last_name": "Calloway",
			"email": "june.calloway@example.com", "zip": "77494"},
	} {
		w := postJSON(t, router, "/api/inspectors", in, "")
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	// Tight radius only finds the downtown inspector.
	w := getURL(t, router, "/api/inspectors/search?zip=77002&radius_miles=10")
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []services.InspectorDistance `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "INS-4001", resp.Data[0].Inspector.InspectorNumber)

	// Wider radius finds both, nearest first.
	w = getURL(t, router, "/api/inspectors/search?zip=77002&radius_miles=50")
	assert.Equal(t, http.StatusOK, w.Code)
	resp.Data = nil
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "INS-4001", resp.Data[0].Inspector.InspectorNumber)
	assert.Less(t, resp.Data[0].DistanceMiles, resp.Data[1].DistanceMiles)

	// Unknown zip and bad radius.
	w = getURL(t, router, "/api/inspectors/search?zip=00000&radius_miles=10")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = getURL(t, router, "/api/inspectors/search?zip=77002&radius_miles=9999")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Mobilized inspectors drop out of the search pool.
	var insp models.Inspector
	db.Where("inspector_number = ?", "INS-4001").First(&insp)
	w = postJSON(t, router, "/api/inspectors/"+strconv.Itoa(int(insp.ID))+"/mobilize", map[string]interface{}{
		"project_name": "Refinery Walkdown",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = getURL(t, router, "/api/inspectors/search?zip=77002&radius_miles=10")
	assert.Equal(t, http.StatusOK, w.Code)
	resp.Data = nil
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 0)
}

func TestRadiusSearchHighLatitude(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInspectors(t)
	router := setupInspectorRouter(db)

	db.Create(&models.ZipCode{Zip: "99701", City: "Fairbanks", State: "AK", Latitude: 64.8378, Longitude: -147.7164})

	// ~25 miles due east of the Fairbanks centroid. Longitude degrees are
	// much shorter this far north, so a box that widens by a flat factor
	// instead of 1/cos(lat) misses this inspector.
	w := postJSON(t, router, "/api/inspectors", map[string]interface{}{
		"inspector_number": "INS-5001",
		"first_name":       "Sena",
		"last_name":        "Kootoo",
		"email":            "sena.kootoo@example.com",
		"zip":              "99701",
		"latitude":         64.8378,
		"longitude":        -146.8500,
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = getURL(t, router, "/api/inspectors/search?zip=99701&radius_miles=30")
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []services.InspectorDistance `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "INS-5001", resp.Data[0].Inspector.InspectorNumber)
}
