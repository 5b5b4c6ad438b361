package model

import "time"

// User 校园用户，学号即业务主键
type User struct {
	StudentID string    `gorm:"primaryKey;type:varchar(20)" json:"studentId"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`
	Campus    string    `gorm:"type:varchar(50)" json:"campus"`
	CreatedAt time.Time `json:"createdAt"`
}

func (User) TableName() string { return "users" }
