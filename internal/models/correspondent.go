package models

import (
	"time"
)

// Correspondent represents a field agent fulfilling demands in specific
// service areas (comarcas)
type Correspondent struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	NomeCompleto      string    `gorm:"not null" json:"nome_completo"`
	Tipo              string    `gorm:"not null" json:"tipo"`
	OAB               *string   `gorm:"column:oab;uniqueIndex" json:"oab"`
	RG                string    `gorm:"column:rg" json:"rg"`
	CPF               string    `gorm:"column:cpf;uniqueIndex;not null" json:"cpf"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	SenhaHash         string    `gorm:"column:senha_hash;not null" json:"-"`
	Telefone          string    `json:"telefone"`
	EnderecoID        *uint     `json:"endereco_id"`
	ComarcasAtendidas string    `json:"comarcas_atendidas"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	StatusAprovacao   string    `gorm:"default:PENDENTE" json:"status_aprovacao"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Associations
	Endereco *Address `gorm:"foreignKey:EnderecoID" json:"endereco,omitempty"`
}

// TableName specifies the table name for Correspondent
func (Correspondent) TableName() string {
	return "correspondentes_servicos"
}

// Correspondent type constants
const (
	CorrespondentTypeLawyer         = "Advogado"
	CorrespondentTypeRepresentative = "Preposto"
)

// Approval status constants
const (
	ApprovalPending  = "PENDENTE"
	ApprovalApproved = "APROVADO"
	ApprovalRejected = "REPROVADO"
)

// IsLawyer returns true if the correspondent is a registered lawyer
func (c *Correspondent) IsLawyer() bool {
	return c.Tipo == CorrespondentTypeLawyer
}

// IsApproved returns true if the correspondent passed the approval workflow
func (c *Correspondent) IsApproved() bool {
	return c.StatusAprovacao == ApprovalApproved
}

// CorrespondentResponse is the JSON response format for correspondents
type CorrespondentResponse struct {
	ID                uint      `json:"id"`
	NomeCompleto      string    `json:"nome_completo"`
	Tipo              string    `json:"tipo"`
	OAB               *string   `json:"oab"`
	RG                string    `json:"rg"`
	CPF               string    `json:"cpf"`
	Email             string    `json:"email"`
	Telefone          string    `json:"telefone"`
	ComarcasAtendidas string    `json:"comarcas_atendidas"`
	IsActive          bool      `json:"is_active"`
	StatusAprovacao   string    `json:"status_aprovacao"`
	Endereco          *Address  `json:"endereco,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToResponse converts Correspondent to CorrespondentResponse
func (c *Correspondent) ToResponse() CorrespondentResponse {
	return CorrespondentResponse{
		ID:                c.ID,
		NomeCompleto:      c.NomeCompleto,
		Tipo:              c.Tipo,
		OAB:               c.OAB,
		RG:                c.RG,
		CPF:               c.CPF,
		Email:             c.Email,
		Telefone:          c.Telefone,
		ComarcasAtendidas: c.ComarcasAtendidas,
		IsActive:          c.IsActive,
		StatusAprovacao:   c.StatusAprovacao,
		Endereco:          c.Endereco,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// CorrespondentSummary is the trimmed projection returned by the
// service-area matching helper
type CorrespondentSummary struct {
	ID                uint   `json:"id"`
	NomeCompleto      string `json:"nome_completo"`
	Tipo              string `json:"tipo"`
	ComarcasAtendidas string `json:"comarcas_atendidas"`
	Email             string `json:"email"`
}
