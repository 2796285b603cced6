package models

import (
	"time"
)

// Admin represents a platform administrator account
type Admin struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Nome      string     `gorm:"not null" json:"nome"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	SenhaHash string     `gorm:"column:senha_hash;not null" json:"-"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Admin
func (Admin) TableName() string {
	return "admins"
}

// Profile constants shared by all account kinds
const (
	ProfileAdmin         = "admin"
	ProfileClient        = "cliente"
	ProfileCorrespondent = "correspondente"
)

// AdminResponse is the JSON response format for admins
type AdminResponse struct {
	ID        uint       `json:"id"`
	Nome      string     `json:"nome"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToResponse converts Admin to AdminResponse
func (a *Admin) ToResponse() AdminResponse {
	return AdminResponse{
		ID:        a.ID,
		Nome:      a.Nome,
		Email:     a.Email,
		IsActive:  a.IsActive,
		LastLogin: a.LastLogin,
		CreatedAt: a.CreatedAt,
	}
}
