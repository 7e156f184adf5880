package repository

import (
	"context"
	"testing"

	"sell_that_sheet/internal/model"
)

func TestCategoryParameterRepo_ListForCategory(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewCategoryParameterRepository(db)
	ctx := context.Background()

	cat5 := int64(5)
	cat9 := int64(9)

	// 目录：类目 5 专属、全局、类目 9 专属，按主键序
	for _, p := range []*model.CategoryParameter{
		{CategoryID: &cat5, NamePL: "Kolor", ParameterType: "single"},
		{NamePL: "Uwagi", ParameterType: "string"},
		{CategoryID: &cat9, NamePL: "Moc", ParameterType: "numeric"},
		{CategoryID: &cat5, NamePL: "Materiał", ParameterType: "multi"},
	} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	// 类目 5：专属两项 + 全局一项，目录序
	got, err := repo.ListForCategory(ctx, cat5)
	if err != nil {
		t.Fatalf("ListForCategory() error = %v", err)
	}
	wantNames := []string{"Kolor", "Uwagi", "Materiał"}
	if len(got) != len(wantNames) {
		t.Fatalf("目录项数 = %d, want %d", len(got), len(wantNames))
	}
	for i, want := range wantNames {
		if got[i].NamePL != want {
			t.Errorf("got[%d] = %s, want %s", i, got[i].NamePL, want)
		}
	}

	// 无专属项的类目只拿全局项
	got, err = repo.ListForCategory(ctx, 777)
	if err != nil {
		t.Fatalf("ListForCategory() error = %v", err)
	}
	if len(got) != 1 || got[0].NamePL != "Uwagi" {
		t.Errorf("无专属项类目 = %+v", got)
	}
}

func TestCategoryParameterRepo_ExternalID(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewCategoryParameterRepository(db)
	ctx := context.Background()

	p := &model.CategoryParameter{NamePL: "Kolor", ParameterType: "single"}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if got := p.ExternalID(); got != "custom_1" {
		t.Errorf("ExternalID = %s, want custom_1", got)
	}
	if !model.IsCustomParam(p.ExternalID()) {
		t.Error("custom_ 前缀应识别为自定义参数")
	}
	if model.IsCustomParam("224017") {
		t.Error("裸数字外部ID不是自定义参数")
	}
}

func TestCategoryParameterRepo_UpdateDelete(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewCategoryParameterRepository(db)
	ctx := context.Background()

	p := &model.CategoryParameter{NamePL: "Kolor", ParameterType: "single",
		PossibleValuesPL: []string{"czerwony"}}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	p.PossibleValuesPL = []string{"czerwony", "niebieski"}
	p.PossibleValuesDE = []string{"rot", "blau"}
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(got.PossibleValuesPL) != 2 || got.PossibleValuesDE[1] != "blau" {
		t.Errorf("更新结果 = %+v", got)
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, p.ID); err == nil {
		t.Error("删除后应查不到")
	}
}
