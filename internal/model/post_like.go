package model

import "time"

// PostLike 帖子点赞记录
type PostLike struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint64    `gorm:"uniqueIndex:idx_post_user;not null" json:"postId"`
	UserID    string    `gorm:"uniqueIndex:idx_post_user;type:varchar(20);not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PostLike) TableName() string { return "post_likes" }
