package dto

import "time"

// CreatePostReq 发帖请求（multipart 表单字段，图片文件另行携带）
type CreatePostReq struct {
	Title       string `form:"title" binding:"required,max=255"`
	Price       int    `form:"price" binding:"min=0"`
	Category    string `form:"category"`
	Description string `form:"description"`
}

// UpdatePostStatusReq 更新帖子状态
type UpdatePostStatusReq struct {
	Status int8 `json:"status" binding:"required,oneof=1 2"`
}

// PostImageDTO 帖子图片
type PostImageDTO struct {
	ImageURL   string `json:"image_url"`
	ImageOrder int    `json:"image_order"`
}

// PostDTO 帖子明细
type PostDTO struct {
	PostID        uint64         `json:"post_id"`
	Title         string         `json:"title"`
	Price         int            `json:"price"`
	Category      string         `json:"category"`
	Description   string         `json:"description"`
	Status        int8           `json:"status"`
	ChatRoomCount int            `json:"chat_room_count"`
	LikeCount     int            `json:"like_count"`
	WriterID      string         `json:"writer_id"`
	WriterName    string         `json:"writer_name"`
	ImageURL      string         `json:"image_url"`
	Images        []PostImageDTO `json:"images,omitempty"`
	Liked         bool           `json:"liked"`
	CreatedAt     time.Time      `json:"created_at"`
}

// PostPageDTO 帖子分页结果
type PostPageDTO struct {
	Posts       []*PostDTO `json:"posts"`
	CurrentPage int        `json:"current_page"`
	TotalPages  int64      `json:"total_pages"`
	TotalItems  int64      `json:"total_items"`
	PageSize    int        `json:"page_size"`
}
