package models

import (
	"time"
)

// FinancialMovement is an independent ledger entry, optionally linked to a
// demand, client or correspondent
type FinancialMovement struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Descricao        string     `gorm:"not null" json:"descricao"`
	Valor            float64    `gorm:"not null" json:"valor"`
	Tipo             string     `gorm:"size:10;not null;index" json:"tipo"`
	Status           string     `gorm:"size:10;not null;index" json:"status"`
	DataVencimento   *time.Time `json:"data_vencimento"`
	DataPagamento    *time.Time `json:"data_pagamento"`
	DiligenciaID     *uint      `gorm:"index" json:"diligencia_id"`
	ClienteID        *uint      `json:"cliente_id"`
	CorrespondenteID *uint      `json:"correspondente_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Associations
	Diligencia     *Demand        `gorm:"foreignKey:DiligenciaID" json:"diligencia,omitempty"`
	Cliente        *Client        `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	Correspondente *Correspondent `gorm:"foreignKey:CorrespondenteID" json:"correspondente,omitempty"`
}

// TableName specifies the table name for FinancialMovement
func (FinancialMovement) TableName() string {
	return "financeiro_movimentacoes"
}

// Movement type constants
const (
	MovementTypeInflow  = "ENTRADA"
	MovementTypeOutflow = "SAIDA"
)

// Movement status constants
const (
	MovementStatusPaid      = "PAGO"
	MovementStatusToPay     = "A_PAGAR"
	MovementStatusReceived  = "RECEBIDO"
	MovementStatusToReceive = "A_RECEBER"
)

// FinancialSummary aggregates ledger totals
type FinancialSummary struct {
	TotalEntradas float64 `json:"total_entradas"`
	TotalSaidas   float64 `json:"total_saidas"`
	Lucro         float64 `json:"lucro"`
	TotalAPagar   float64 `json:"total_a_pagar"`
	TotalAReceber float64 `json:"total_a_receber"`
}
