package dto

// CreatePhotosetRequest 创建图集请求
type CreatePhotosetRequest struct {
	Directory     string   `json:"directory" binding:"required"`
	ThumbnailName string   `json:"thumbnail" binding:"required"`
	PhotoNames    []string `json:"photos" binding:"required"`
}

// ThumbnailResponse 缩略图地址
type ThumbnailResponse struct {
	URL string `json:"url"`
}
