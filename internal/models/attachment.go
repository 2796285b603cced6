package models

import (
	"time"
)

// Attachment is a file uploaded against a demand
type Attachment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	DemandaID         uint      `gorm:"not null;index" json:"demanda_id"`
	UploaderID        uint      `gorm:"not null" json:"uploader_id"`
	UploaderPerfil    string    `gorm:"size:20;not null" json:"uploader_perfil"`
	NomeOriginal      string    `gorm:"not null" json:"nome_original"`
	PathArmazenamento string    `gorm:"not null" json:"-"`
	TipoMime          string    `gorm:"size:100" json:"tipo_mime"`
	TamanhoBytes      int64     `json:"tamanho_bytes"`
	CreatedAt         time.Time `json:"created_at"`

	// Associations
	Demanda *Demand `gorm:"foreignKey:DemandaID" json:"-"`
}

// TableName specifies the table name for Attachment
func (Attachment) TableName() string {
	return "anexos_demandas"
}

// AttachmentResponse is the JSON response format for attachments
type AttachmentResponse struct {
	ID             uint      `json:"id"`
	DemandaID      uint      `json:"demanda_id"`
	NomeOriginal   string    `json:"nome_original"`
	TipoMime       string    `json:"tipo_mime"`
	TamanhoBytes   int64     `json:"tamanho_bytes"`
	UploaderID     uint      `json:"uploader_id"`
	UploaderPerfil string    `json:"uploader_perfil"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToResponse converts Attachment to AttachmentResponse
func (a *Attachment) ToResponse() AttachmentResponse {
	return AttachmentResponse{
		ID:             a.ID,
		DemandaID:      a.DemandaID,
		NomeOriginal:   a.NomeOriginal,
		TipoMime:       a.TipoMime,
		TamanhoBytes:   a.TamanhoBytes,
		UploaderID:     a.UploaderID,
		UploaderPerfil: a.UploaderPerfil,
		CreatedAt:      a.CreatedAt,
	}
}
