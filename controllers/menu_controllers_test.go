package controllers_test

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

	"github.com/dinehub/restaurant-backend/controllers"
	"github.com/dinehub/restaurant-backend/models"
	"github.com/dinehub/restaurant-backend/utils"
)

func setupMenuTestDB(t *testing.T) *gorm.DB {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.MenuItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupMenuRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := controllers.NewMenuController(db)
	r.GET("/menu", ctrl.GetAllMenuItems)
	r.POST("/menu", ctrl.CreateMenuItem)
	r.GET("/menu/:menu_id", ctrl.GetMenuItemByID)
	r.PATCH("/menu/:menu_id", ctrl.UpdateMenuItem)
	r.DELETE("/menu/:menu_id", ctrl.DeleteMenuItem)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateMenuItem(t *testing.T) {
	db := setupMenuTestDB(t)
	r := setupMenuRouter(db)

	w := doJSON(t, r, "POST", "/menu", gin.H{
		"name":     "Margherita",
		"price":    11.50,
		"category": "main_course",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var item models.MenuItem
	assert.NoError(t, db.Where("name = ?", "Margherita").First(&item).Error)
	assert.True(t, item.IsAvailable)
	assert.Equal(t, models.CategoryMainCourse, item.Category)
}

func TestCreateMenuItemDuplicateName(t *testing.T) {
	db := setupMenuTestDB(t)
	r := setupMenuRouter(db)

	db.Create(&models.MenuItem{Name: "Tiramisu", Price: 6, Category: models.CategoryDessert, IsAvailable: true})

	w := doJSON(t, r, "POST", "/menu", gin.H{"name": "Tiramisu", "price": 7})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMenuItemRejectsBadInput(t *testing.T) {
	db := setupMenuTestDB(t)
	r := setupMenuRouter(db)

	w := doJSON(t, r, "POST", "/menu", gin.H{"name": "Espresso", "price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/menu", gin.H{"name": "Espresso", "price": 2, "category": "snacks"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMenuItemUniquenessAgainstOthers(t *testing.T) {
	db := setupMenuTestDB(t)
	r := setupMenuRouter(db)

	soup := models.MenuItem{Name: "Soup", Price: 4, Category: models.CategoryAppetizer, IsAvailable: true}
	salad := models.MenuItem{Name: "Salad", Price: 5, Category: models.CategoryAppetizer, IsAvailable: true}
	db.Create(&soup)
	db.Create(&salad)

	// Taking another record's name is a conflict...
	w := doJSON(t, r, "PATCH", "/menu/"+strconv.Itoa(int(salad.ID)), gin.H{"name": "Soup"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// ...but keeping your own name is not.
	w = doJSON(t, r, "PATCH", "/menu/"+strconv.Itoa(int(salad.ID)), gin.H{"name": "Salad", "price": 5.50})
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.MenuItem
	db.First(&got, salad.ID)
	assert.InDelta(t, 5.50, got.Price, 0.001)
}

func TestGetMenuItemNotFound(t *testing.T) {
	db := setupMenuTestDB(t)
	r := setupMenuRouter(db)

	w := doJSON(t, r, "GET", "/menu/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMenuItemQueryFailureIsInternal(t *testing.T) {
	db := setupMenuTestDB(t)
	r := setupMenuRouter(db)

	// A broken schema is a server problem, not a missing record.
	assert.NoError(t, db.Migrator().DropTable(&models.MenuItem{}))

	w := doJSON(t, r, "GET", "/menu/1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListMenuItemsByCategory(t *testing.T) {
	db := setupMenuTestDB(t)
	r := setupMenuRouter(db)

	db.Create(&models.MenuItem{Name: "Cola", Price: 2, Category: models.CategoryBeverage, IsAvailable: true})
	db.Create(&models.MenuItem{Name: "Steak", Price: 20, Category: models.CategoryMainCourse, IsAvailable: true})

	w := doJSON(t, r, "GET", "/menu?category=beverage", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.MenuItem `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Cola", resp.Data[0].Name)
}

func TestDeleteMenuItem(t *testing.T) {
	db := setupMenuTestDB(t)
	r := setupMenuRouter(db)

	item := models.MenuItem{Name: "Bruschetta", Price: 5, Category: models.CategoryAppetizer, IsAvailable: true}
	db.Create(&item)

	w := doJSON(t, r, "DELETE", "/menu/"+strconv.Itoa(int(item.ID)), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.MenuItem{}).Count(&count)
	assert.Equal(t, int64(0), count)

	w = doJSON(t, r, "DELETE", "/menu/"+strconv.Itoa(int(item.ID)), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
