package models

import (
	"time"
)

// ActivityLog is an immutable audit row recording a state-changing action
// against a demand. Rows are create-only, never updated or deleted.
type ActivityLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DemandaID  uint      `gorm:"not null;index" json:"demanda_id"`
	AtorID     uint      `gorm:"not null" json:"ator_id"`
	AtorPerfil string    `gorm:"size:20;not null" json:"ator_perfil"`
	TipoLog    string    `gorm:"size:30;not null" json:"tipo_log"`
	Detalhes   string    `gorm:"type:text" json:"detalhes"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "log_atividades"
}

// Log type constants
const (
	LogTypeCreation     = "CRIACAO"
	LogTypeUpdate       = "ATUALIZACAO"
	LogTypeStatusChange = "MUDANCA_STATUS"
	LogTypeComment      = "COMENTARIO"
	LogTypeFileUpload   = "UPLOAD_ANEXO"
)
