package models

import "time"

// ActivityLog append-only audit record. UserID is cleared by the database
// when the user is deleted; the entry itself stays.
type ActivityLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Action    string    `gorm:"size:255;not null" json:"action"`
	CreatedAt time.Time `gorm:"index" json:"timestamp"`
}

// TableName table name
func (ActivityLog) TableName() string {
	return "activity_logs"
}
