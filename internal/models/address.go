package models

import "time"

// Address is a shared value-record attached 1:1 to clients and correspondents
type Address struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Logradouro  string    `json:"logradouro"`
	Numero      string    `json:"numero"`
	Complemento string    `json:"complemento"`
	Bairro      string    `json:"bairro"`
	Cidade      string    `json:"cidade"`
	Estado      string    `gorm:"size:2" json:"estado"`
	CEP         string    `gorm:"column:cep" json:"cep"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Address
func (Address) TableName() string {
	return "enderecos"
}
