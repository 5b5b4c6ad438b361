package model

import "time"

// ChatRoom 买卖双方围绕一个帖子建立的会话。
// (post_id, buyer_id) 唯一：同一买家对同一帖子最多一个房间，
// 退出只做软删除（activity=0），再次发起会话时复活。
type ChatRoom struct {
	RoomID          uint64     `gorm:"primaryKey;autoIncrement" json:"roomId"`
	PostID          uint64     `gorm:"uniqueIndex:idx_post_buyer;not null" json:"postId"`
	BuyerID         string     `gorm:"uniqueIndex:idx_post_buyer;type:varchar(20);not null" json:"buyerId"`
	SellerID        string     `gorm:"type:varchar(20);index;not null" json:"sellerId"`
	LastMessage     string     `gorm:"type:text" json:"lastMessage"`
	LastMessageTime *time.Time `json:"lastMessageTime"`
	UnreadBuyer     int        `gorm:"not null;default:0" json:"unreadBuyer"`
	UnreadSeller    int        `gorm:"not null;default:0" json:"unreadSeller"`
	Activity        int8       `gorm:"not null;default:1" json:"activity"` // 1-活跃, 0-已退出
	CreatedAt       time.Time  `json:"createdAt"`

	Post   *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Buyer  *User `gorm:"foreignKey:BuyerID;references:StudentID" json:"buyer,omitempty"`
	Seller *User `gorm:"foreignKey:SellerID;references:StudentID" json:"seller,omitempty"`
}

func (ChatRoom) TableName() string { return "chat_rooms" }

// IsParticipant 判断用户是否为房间参与者
func (r *ChatRoom) IsParticipant(userID string) bool {
	return r.BuyerID == userID || r.SellerID == userID
}

// PeerOf 返回对手方用户 ID
func (r *ChatRoom) PeerOf(userID string) string {
	if r.BuyerID == userID {
		return r.SellerID
	}
	return r.BuyerID
}

// UnreadOf 返回某参与者的未读数
func (r *ChatRoom) UnreadOf(userID string) int {
	if r.BuyerID == userID {
		return r.UnreadBuyer
	}
	return r.UnreadSeller
}
