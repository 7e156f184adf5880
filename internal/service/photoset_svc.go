package service

import (
	"context"
	"fmt"
	"sync"

	"sell_that_sheet/internal/model"
	"sell_that_sheet/internal/repository"
)

// ==================== PhotosetService ====================

// PhotosetService 图集子管线：批量登记照片并建图集
type PhotosetService struct {
	photos   repository.PhotoRepository
	sets     repository.PhotoSetRepository
	photoURL string
}

// NewPhotosetService 创建图集服务；photoURL 为照片文件服务的基础地址
func NewPhotosetService(photos repository.PhotoRepository, sets repository.PhotoSetRepository, photoURL string) *PhotosetService {
	return &PhotosetService{photos: photos, sets: sets, photoURL: photoURL}
}

// Create 登记一组照片并创建图集
//
// 缩略图不在照片列表里时前置补进去，图集里必有缩略图。
// 登记按名幂等且互相独立，并发发出，全部完成后再建图集行。
// 结果按下标回填，图集照片序就是调用方给的顺序。
func (s *PhotosetService) Create(ctx context.Context, directory, thumbnailName string, photoNames []string) (*model.PhotoSet, error) {
	names := photoNames
	if !containsName(names, thumbnailName) {
		names = append([]string{thumbnailName}, names...)
	}

	type result struct {
		photo *model.Photo
		err   error
	}
	results := make([]result, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			photo, err := s.photos.Register(ctx, name)
			results[i] = result{photo: photo, err: err}
		}(i, name)
	}
	wg.Wait()

	photoIDs := make([]int64, 0, len(names))
	var thumbnailID int64
	for i, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("登记照片 %s: %w", names[i], r.err)
		}
		photoIDs = append(photoIDs, r.photo.ID)
		if names[i] == thumbnailName {
			thumbnailID = r.photo.ID
		}
	}

	set := &model.PhotoSet{
		DirectoryLocation: directory,
		ThumbnailID:       thumbnailID,
		PhotoIDs:          photoIDs,
	}
	if err := s.sets.Create(ctx, set); err != nil {
		return nil, fmt.Errorf("创建图集: %w", err)
	}
	return set, nil
}

// GetByID 取图集
func (s *PhotosetService) GetByID(ctx context.Context, id int64) (*model.PhotoSet, error) {
	return s.sets.GetByID(ctx, id)
}

// GetThumbnailURL 取图集缩略图的访问地址
func (s *PhotosetService) GetThumbnailURL(ctx context.Context, setID int64) (string, error) {
	set, err := s.sets.GetByID(ctx, setID)
	if err != nil {
		return "", err
	}
	photo, err := s.photos.GetByID(ctx, set.ThumbnailID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", s.photoURL, set.DirectoryLocation, photo.Name), nil
}

func containsName(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}
