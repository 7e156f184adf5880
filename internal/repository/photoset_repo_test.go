package repository

import (
	"context"
	"sync"
	"testing"

	"sell_that_sheet/internal/model"
)

// ==================== Register 测试 ====================

func TestPhotoRepo_RegisterIdempotent(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewPhotoRepository(db)
	ctx := context.Background()

	p1, err := repo.Register(ctx, "front.jpg")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// 同名再登记：插入冲突被吞掉，读回同一行
	p2, err := repo.Register(ctx, "front.jpg")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if p2.ID != p1.ID {
		t.Errorf("同名照片 ID 不一致: %d != %d", p2.ID, p1.ID)
	}

	var count int64
	db.Model(&model.Photo{}).Where("name = ?", "front.jpg").Count(&count)
	if count != 1 {
		t.Errorf("照片行数 = %d, want 1", count)
	}
}

func TestPhotoRepo_RegisterConcurrentSameName(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewPhotoRepository(db)
	ctx := context.Background()

	// 并发同名登记：每路都要拿到同一行，谁都不能报唯一索引冲突
	const workers = 8
	ids := make([]int64, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			photo, err := repo.Register(ctx, "shared.jpg")
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = photo.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("第 %d 路登记失败: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Errorf("第 %d 路 ID = %d, want %d", i, ids[i], ids[0])
		}
	}

	var count int64
	db.Model(&model.Photo{}).Where("name = ?", "shared.jpg").Count(&count)
	if count != 1 {
		t.Errorf("照片行数 = %d, want 1", count)
	}
}
