package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/jurisconnect/jurisconnect-api/internal/jobs"
	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/policy"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/jurisconnect/jurisconnect-api/internal/storage"
	"github.com/jurisconnect/jurisconnect-api/pkg/logger"
	"gorm.io/gorm"
)

// AttachmentService handles file uploads against demands. Type and size are
// validated before any byte reaches disk; files orphaned by a failed metadata
// insert are cleaned up in the background.
type AttachmentService struct {
	attachmentRepo repository.AttachmentRepository
	demandRepo     repository.DemandRepository
	storage        *storage.LocalStorage
	worker         *jobs.Worker
	activityLog    *ActivityLogService
	maxUploadSize  int64
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(
	attachmentRepo repository.AttachmentRepository,
	demandRepo repository.DemandRepository,
	store *storage.LocalStorage,
	worker *jobs.Worker,
	activityLog *ActivityLogService,
	maxUploadSize int64,
) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		demandRepo:     demandRepo,
		storage:        store,
		worker:         worker,
		activityLog:    activityLog,
		maxUploadSize:  maxUploadSize,
	}
}

// Upload stores a file against a demand the actor can access
func (s *AttachmentService) Upload(ctx context.Context, demandID uint, actor policy.Actor, file multipart.File, header *multipart.FileHeader) (*models.Attachment, error) {
	demand, err := s.demandRepo.FindByID(ctx, demandID)
	if err != nil {
		return nil, demandNotFound(err)
	}
	if !policy.CanAccess(policy.DemandRefs(demand), actor) {
		return nil, fail(ErrForbidden, "Acesso negado a esta demanda")
	}

	contentType := header.Header.Get("Content-Type")
	if !storage.IsAllowedContentType(contentType) {
		return nil, fail(ErrInvalidFileType, "Tipo de arquivo não permitido: "+contentType)
	}
	if header.Size > s.maxUploadSize {
		return nil, fail(ErrFileTooLarge, "Arquivo excede o tamanho máximo permitido")
	}

	relPath, err := s.storage.Save(file, header, demandID)
	if err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		DemandaID:         demandID,
		UploaderID:        actor.ID,
		UploaderPerfil:    actor.Profile,
		NomeOriginal:      header.Filename,
		PathArmazenamento: relPath,
		TipoMime:          contentType,
		TamanhoBytes:      header.Size,
	}

	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		// The file is already on disk with no row pointing at it
		s.removeFileAsync(relPath)
		return nil, err
	}

	s.activityLog.Record(ctx, demandID, actor.ID, actor.Profile, models.LogTypeFileUpload, map[string]interface{}{
		"action":    "attachment_uploaded",
		"file_name": header.Filename,
		"file_size": header.Size,
		"mime_type": contentType,
	})

	return attachment, nil
}

// List returns a demand's attachments, newest first, under the shared guard
func (s *AttachmentService) List(ctx context.Context, demandID uint, actor policy.Actor) ([]models.Attachment, error) {
	demand, err := s.demandRepo.FindByID(ctx, demandID)
	if err != nil {
		return nil, demandNotFound(err)
	}
	if !policy.CanAccess(policy.DemandRefs(demand), actor) {
		return nil, fail(ErrForbidden, "Acesso negado a esta demanda")
	}
	return s.attachmentRepo.FindByDemandID(ctx, demandID)
}

// Download resolves an attachment the actor can access to its on-disk path
func (s *AttachmentService) Download(ctx context.Context, attachmentID uint, actor policy.Actor) (*models.Attachment, string, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		return nil, "", attachmentNotFound(err)
	}

	demand, err := s.demandRepo.FindByID(ctx, attachment.DemandaID)
	if err != nil {
		return nil, "", demandNotFound(err)
	}
	if !policy.CanAccess(policy.DemandRefs(demand), actor) {
		return nil, "", fail(ErrForbidden, "Acesso negado a este anexo")
	}

	if !s.storage.Exists(attachment.PathArmazenamento) {
		return nil, "", fail(ErrNotFound, "Arquivo não encontrado no armazenamento")
	}

	return attachment, s.storage.FullPath(attachment.PathArmazenamento), nil
}

// Delete removes an attachment. Only the uploader or an admin may delete;
// the row goes first, the file afterwards in the background.
func (s *AttachmentService) Delete(ctx context.Context, attachmentID uint, actor policy.Actor) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		return attachmentNotFound(err)
	}

	if !policy.CanDeleteAttachment(attachment.UploaderID, actor) {
		return fail(ErrForbidden, "Apenas o autor do upload ou um administrador pode remover o anexo")
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return err
	}

	s.removeFileAsync(attachment.PathArmazenamento)

	s.activityLog.Record(ctx, attachment.DemandaID, actor.ID, actor.Profile, models.LogTypeUpdate, map[string]interface{}{
		"action":    "attachment_deleted",
		"file_name": attachment.NomeOriginal,
	})

	return nil
}

func (s *AttachmentService) removeFileAsync(relPath string) {
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		if err := s.storage.Delete(relPath); err != nil {
			logger.Warn("Failed to remove stored file", "path", relPath, "error", err)
		}
		return nil
	})
}

func attachmentNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(ErrNotFound, "Anexo não encontrado")
	}
	return err
}
