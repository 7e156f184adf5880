package service

import (
	"context"
	"testing"

	"sell_that_sheet/internal/repository"
)

func newPhotosetService(t *testing.T) (*PhotosetService, repository.PhotoRepository) {
	db := setupServiceTestDB(t)
	photos := repository.NewPhotoRepository(db)
	sets := repository.NewPhotoSetRepository(db)
	return NewPhotosetService(photos, sets, "http://localhost:8080/photos"), photos
}

func TestPhotosetService_Create(t *testing.T) {
	svc, _ := newPhotosetService(t)
	ctx := context.Background()

	set, err := svc.Create(ctx, "meble/salon", "front.jpg", []string{"front.jpg", "back.jpg", "detail.jpg"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(set.PhotoIDs) != 3 {
		t.Fatalf("照片数 = %d, want 3", len(set.PhotoIDs))
	}
	if set.ThumbnailID == 0 {
		t.Error("缩略图ID未设置")
	}
	// 缩略图必须在成员里
	found := false
	for _, id := range set.PhotoIDs {
		if id == set.ThumbnailID {
			found = true
		}
	}
	if !found {
		t.Error("缩略图不在照片列表里")
	}
	if set.DirectoryLocation != "meble/salon" {
		t.Errorf("目录 = %s", set.DirectoryLocation)
	}
}

func TestPhotosetService_ThumbnailPrepended(t *testing.T) {
	svc, photos := newPhotosetService(t)
	ctx := context.Background()

	// 调用方没把缩略图放进内容列表：前置补进去
	set, err := svc.Create(ctx, "d", "cover.jpg", []string{"a.jpg", "b.jpg"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(set.PhotoIDs) != 3 {
		t.Fatalf("照片数 = %d, want 3（含补进的缩略图）", len(set.PhotoIDs))
	}
	first, err := photos.GetByID(ctx, set.PhotoIDs[0])
	if err != nil {
		t.Fatalf("查照片失败: %v", err)
	}
	if first.Name != "cover.jpg" {
		t.Errorf("首位照片 = %s, want cover.jpg", first.Name)
	}
	if set.ThumbnailID != set.PhotoIDs[0] {
		t.Error("缩略图ID应指向补进的首位照片")
	}
}

func TestPhotosetService_RegisterIdempotent(t *testing.T) {
	svc, photos := newPhotosetService(t)
	ctx := context.Background()

	// 同名照片跨图集复用同一行
	s1, err := svc.Create(ctx, "d1", "shared.jpg", []string{"shared.jpg"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	s2, err := svc.Create(ctx, "d2", "shared.jpg", []string{"shared.jpg"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s1.ThumbnailID != s2.ThumbnailID {
		t.Errorf("同名照片应复用: %d != %d", s1.ThumbnailID, s2.ThumbnailID)
	}
	_ = photos
}

func TestPhotosetService_GetThumbnailURL(t *testing.T) {
	svc, _ := newPhotosetService(t)
	ctx := context.Background()

	set, err := svc.Create(ctx, "meble/salon", "front.jpg", []string{"front.jpg"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	url, err := svc.GetThumbnailURL(ctx, set.ID)
	if err != nil {
		t.Fatalf("GetThumbnailURL() error = %v", err)
	}
	want := "http://localhost:8080/photos/meble/salon/front.jpg"
	if url != want {
		t.Errorf("URL = %s, want %s", url, want)
	}
}

func TestPhotosetService_ParallelRegistrationOrder(t *testing.T) {
	svc, photos := newPhotosetService(t)
	ctx := context.Background()

	// 并发登记不打乱传入顺序
	names := []string{"01.jpg", "02.jpg", "03.jpg", "04.jpg", "05.jpg", "06.jpg", "07.jpg", "08.jpg"}
	set, err := svc.Create(ctx, "d", "01.jpg", names)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(set.PhotoIDs) != len(names) {
		t.Fatalf("照片数 = %d, want %d", len(set.PhotoIDs), len(names))
	}
	for i, id := range set.PhotoIDs {
		p, err := photos.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("查照片失败: %v", err)
		}
		if p.Name != names[i] {
			t.Errorf("PhotoIDs[%d] = %s, want %s", i, p.Name, names[i])
		}
	}
}
