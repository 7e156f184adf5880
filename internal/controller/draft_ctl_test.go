package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sell_that_sheet/internal/model"
	"sell_that_sheet/internal/repository"
	"sell_that_sheet/internal/service"
	"sell_that_sheet/pkg/allegro"
)

// stubCategorySource 只回类目无市场字段，表单只剩基础字段和自定义目录
type stubCategorySource struct{}

func (s *stubCategorySource) FetchCategoryFields(ctx context.Context, categoryID int64) ([]allegro.CategoryField, error) {
	return []allegro.CategoryField{}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 请求构造辅助 ====================

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func setupDraftRouter(t *testing.T) (*gin.Engine, *service.DraftStore) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&model.Auction{}, &model.AuctionSet{},
		&model.Parameter{}, &model.AuctionParameter{}, &model.CategoryParameter{},
	); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	store := service.NewDraftStore()
	catalogRepo := repository.NewCategoryParameterRepository(db)
	assembly := service.NewAssemblyService(
		repository.NewAuctionRepository(db),
		repository.NewAuctionSetRepository(db),
		repository.NewParameterRepository(db),
		repository.NewAuctionParameterRepository(db),
		catalogRepo,
	)
	schema := service.NewSchemaService(&stubCategorySource{}, catalogRepo)
	ctrl := NewDraftController(store, assembly, schema, service.NewFormService(nil))

	r := gin.New()
	r.POST("/api/drafts", ctrl.AddDraft)
	r.GET("/api/drafts", ctrl.ListDrafts)
	r.DELETE("/api/drafts/:local_id", ctrl.RemoveDraft)
	r.POST("/api/drafts/assemble", ctrl.Assemble)
	return r, store
}

// validDraftBody 满足基础字段必填项的最小草稿
func validDraftBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"category_id": 5,
		"base_values": map[string]interface{}{
			"name":           name,
			"price_pln":      100,
			"shipment_price": 20,
		},
	}
}

// ==================== 草稿接口测试 ====================

func TestDraftController_AddAndList(t *testing.T) {
	router, _ := setupDraftRouter(t)

	w := performRequest(router, "POST", "/api/drafts", validDraftBody("Lampa"))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, "GET", "/api/drafts", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int                    `json:"code"`
		Data []service.DraftAuction `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.Data[0].LocalID)
}

func TestDraftController_InvalidParams(t *testing.T) {
	router, _ := setupDraftRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
	}{
		{"空请求体", "POST", "/api/drafts", nil, http.StatusBadRequest},
		{"缺少类目", "POST", "/api/drafts", map[string]interface{}{
			"base_values": map[string]interface{}{"name": "Lampa"},
		}, http.StatusBadRequest},
		{"非法草稿ID", "DELETE", "/api/drafts/abc", nil, http.StatusBadRequest},
		{"不存在的草稿", "DELETE", "/api/drafts/99", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestDraftController_AddRejectsInvalidDraft(t *testing.T) {
	router, store := setupDraftRouter(t)

	// 缺必填的 price_pln 和 shipment_price：422 并按字段回文案，不入仓
	w := performRequest(router, "POST", "/api/drafts", map[string]interface{}{
		"category_id": 5,
		"base_values": map[string]interface{}{"name": "Lampa"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Code int               `json:"code"`
		Data map[string]string `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 422, resp.Code)
	assert.Contains(t, resp.Data, "price_pln")
	assert.Contains(t, resp.Data, "shipment_price")
	assert.Equal(t, 0, store.Len())

	// 补齐后同一份草稿通过
	w = performRequest(router, "POST", "/api/drafts", validDraftBody("Lampa"))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, store.Len())
}

func TestDraftController_AssembleEmptyStore(t *testing.T) {
	router, _ := setupDraftRouter(t)

	w := performRequest(router, "POST", "/api/drafts/assemble", map[string]interface{}{
		"set_name": "partia-1",
		"path":     []map[string]string{{"id": "root", "name": "Root"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDraftController_AssembleClearsStore(t *testing.T) {
	router, store := setupDraftRouter(t)

	w := performRequest(router, "POST", "/api/drafts", validDraftBody("Lampa"))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, "POST", "/api/drafts/assemble", map[string]interface{}{
		"set_name": "partia-1",
		"path": []map[string]string{
			{"id": "root", "name": "Root"},
			{"id": "12", "name": "meble"},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			Set struct {
				Name              string `json:"name"`
				DirectoryLocation string `json:"directory_location"`
			} `json:"set"`
			AuctionIDs []int64 `json:"auction_ids"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "partia-1", resp.Data.Set.Name)
	assert.Equal(t, "meble", resp.Data.Set.DirectoryLocation)
	assert.Len(t, resp.Data.AuctionIDs, 1)

	// 装配成功后草稿仓清空
	assert.Equal(t, 0, store.Len())
}
