package model

import "time"

// Post 商品帖子
type Post struct {
	PostID        uint64    `gorm:"primaryKey;autoIncrement" json:"postId"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Price         int       `gorm:"not null" json:"price"`
	Category      string    `gorm:"type:varchar(100)" json:"category"`
	Description   string    `gorm:"type:text" json:"description"`
	Status        int8      `gorm:"not null;default:1" json:"status"` // 1-在售, 2-已售出
	ChatRoomCount int       `gorm:"not null;default:0" json:"chatRoomCount"`
	LikeCount     int       `gorm:"not null;default:0" json:"likeCount"`
	WriterID      string    `gorm:"type:varchar(20);index;not null" json:"writerId"`
	ImageURL      string    `gorm:"type:varchar(500)" json:"imageUrl"` // 封面图（image_order=0）
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Writer *User       `gorm:"foreignKey:WriterID;references:StudentID" json:"writer,omitempty"`
	Images []PostImage `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (Post) TableName() string { return "posts" }

// PostImage 帖子图片，image_order=0 为封面
type PostImage struct {
	ImageID    uint64    `gorm:"primaryKey;autoIncrement" json:"imageId"`
	PostID     uint64    `gorm:"index:idx_post_order;not null" json:"postId"`
	ImageURL   string    `gorm:"type:varchar(500);not null" json:"imageUrl"`
	ObjectKey  string    `gorm:"type:varchar(500);not null" json:"-"` // MinIO 对象键，删除帖子时反向清理
	ImageOrder int       `gorm:"index:idx_post_order;not null" json:"imageOrder"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (PostImage) TableName() string { return "post_images" }
