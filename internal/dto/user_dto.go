package dto

import "time"

// CreateUserRequest admin "add user" body
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Role     string `json:"role" binding:"omitempty,role"`
}

// UserListQuery admin user listing
type UserListQuery struct {
	Search string `form:"search" binding:"max=50"`
	PageQuery
}

// UserSummary user with contribution counts
type UserSummary struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	EnergyCount   int64     `json:"energy_count"`
	WaterCount    int64     `json:"water_count"`
	WasteCount    int64     `json:"waste_count"`
	GreeneryCount int64     `json:"greenery_count"`
	ActivityCount int64     `json:"activity_count"`
}

// ActivityResponse one audit entry
type ActivityResponse struct {
	ID        uint      `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// ResetPasswordResponse tells the admin which password was applied
type ResetPasswordResponse struct {
	UserID   uint   `json:"user_id"`
	Password string `json:"password"`
}
