package models

import (
	"time"
)

// Client represents a law office requesting demands
type Client struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	NomeCompleto string    `gorm:"not null" json:"nome_completo"`
	Escritorio   string    `json:"escritorio"`
	Telefone     string    `json:"telefone"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	SenhaHash    string    `gorm:"column:senha_hash;not null" json:"-"`
	EnderecoID   *uint     `json:"endereco_id"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Endereco *Address `gorm:"foreignKey:EnderecoID" json:"endereco,omitempty"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clientes"
}

// ClientResponse is the JSON response format for clients
type ClientResponse struct {
	ID           uint      `json:"id"`
	NomeCompleto string    `json:"nome_completo"`
	Escritorio   string    `json:"escritorio"`
	Telefone     string    `json:"telefone"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	Endereco     *Address  `json:"endereco,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToResponse converts Client to ClientResponse
func (c *Client) ToResponse() ClientResponse {
	return ClientResponse{
		ID:           c.ID,
		NomeCompleto: c.NomeCompleto,
		Escritorio:   c.Escritorio,
		Telefone:     c.Telefone,
		Email:        c.Email,
		IsActive:     c.IsActive,
		Endereco:     c.Endereco,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
