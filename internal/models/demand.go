package models

import (
	"time"
)

// Demand represents a legal service request created by a client
type Demand struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	Titulo               string     `gorm:"not null" json:"titulo"`
	DescricaoCompleta    string     `gorm:"type:text" json:"descricao_completa"`
	NumeroProcesso       string     `json:"numero_processo"`
	TipoDemanda          string     `json:"tipo_demanda"`
	PrazoFatal           *time.Time `json:"prazo_fatal"`
	ValorPropostoCliente float64    `json:"valor_proposto_cliente"`
	Status               string     `gorm:"default:Pendente;index" json:"status"`
	ClienteID            uint       `gorm:"not null;index" json:"cliente_id"`
	CorrespondenteID     *uint      `gorm:"index" json:"correspondente_id"`
	AdminResponsavelID   *uint      `json:"admin_responsavel_id"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	// Associations
	Cliente        *Client        `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	Correspondente *Correspondent `gorm:"foreignKey:CorrespondenteID" json:"correspondente,omitempty"`
	Admin          *Admin         `gorm:"foreignKey:AdminResponsavelID" json:"admin_responsavel,omitempty"`
}

// TableName specifies the table name for Demand
func (Demand) TableName() string {
	return "demandas"
}

// Demand status constants
const (
	DemandStatusPending    = "Pendente"
	DemandStatusInProgress = "Em Andamento"
	DemandStatusCompleted  = "Cumprida"
	DemandStatusCancelled  = "Cancelada"
)

// ValidDemandStatus reports whether s is one of the four demand statuses
func ValidDemandStatus(s string) bool {
	switch s {
	case DemandStatusPending, DemandStatusInProgress, DemandStatusCompleted, DemandStatusCancelled:
		return true
	}
	return false
}

// DemandResponse is the JSON response format for demands
type DemandResponse struct {
	ID                   uint       `json:"id"`
	Titulo               string     `json:"titulo"`
	DescricaoCompleta    string     `json:"descricao_completa"`
	NumeroProcesso       string     `json:"numero_processo"`
	TipoDemanda          string     `json:"tipo_demanda"`
	PrazoFatal           *time.Time `json:"prazo_fatal"`
	ValorPropostoCliente float64    `json:"valor_proposto_cliente"`
	Status               string     `json:"status"`
	ClienteID            uint       `json:"cliente_id"`
	CorrespondenteID     *uint      `json:"correspondente_id"`
	AdminResponsavelID   *uint      `json:"admin_responsavel_id"`
	ClienteNome          string     `json:"cliente_nome,omitempty"`
	CorrespondenteNome   string     `json:"correspondente_nome,omitempty"`
	AdminNome            string     `json:"admin_nome,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ToResponse converts Demand to DemandResponse
func (d *Demand) ToResponse() DemandResponse {
	resp := DemandResponse{
		ID:                   d.ID,
		Titulo:               d.Titulo,
		DescricaoCompleta:    d.DescricaoCompleta,
		NumeroProcesso:       d.NumeroProcesso,
		TipoDemanda:          d.TipoDemanda,
		PrazoFatal:           d.PrazoFatal,
		ValorPropostoCliente: d.ValorPropostoCliente,
		Status:               d.Status,
		ClienteID:            d.ClienteID,
		CorrespondenteID:     d.CorrespondenteID,
		AdminResponsavelID:   d.AdminResponsavelID,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
	if d.Cliente != nil {
		resp.ClienteNome = d.Cliente.NomeCompleto
	}
	if d.Correspondente != nil {
		resp.CorrespondenteNome = d.Correspondente.NomeCompleto
	}
	if d.Admin != nil {
		resp.AdminNome = d.Admin.Nome
	}
	return resp
}

// DemandStats aggregates demand counters for the dashboard
type DemandStats struct {
	Total                      int64   `json:"total"`
	Pendentes                  int64   `json:"pendentes"`
	EmAndamento                int64   `json:"em_andamento"`
	Cumpridas                  int64   `json:"cumpridas"`
	Canceladas                 int64   `json:"canceladas"`
	ValorMedio                 float64 `json:"valor_medio"`
	PendentesSemCorrespondente int64   `json:"pendentes_sem_correspondente"`
}
