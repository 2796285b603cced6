package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jurisconnect/jurisconnect-api/internal/jobs"
	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/policy"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/jurisconnect/jurisconnect-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAttachmentRepo struct {
	repository.AttachmentRepository
	created    []models.Attachment
	mockCreate func(ctx context.Context, attachment *models.Attachment) error
}

func (m *mockAttachmentRepo) Create(ctx context.Context, attachment *models.Attachment) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, attachment)
	}
	attachment.ID = uint(len(m.created) + 1)
	m.created = append(m.created, *attachment)
	return nil
}

func multipartUpload(t *testing.T, filename, contentType, content string) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	partHeader := make(map[string][]string)
	partHeader["Content-Disposition"] = []string{`form-data; name="arquivo"; filename="` + filename + `"`}
	partHeader["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	file, header, err := req.FormFile("arquivo")
	require.NoError(t, err)
	return file, header
}

func newAttachmentServiceForTest(t *testing.T, demand *models.Demand, attachmentRepo *mockAttachmentRepo, maxSize int64) (*AttachmentService, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	demandRepo := &mockDemandRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Demand, error) {
			return demand, nil
		},
	}

	service := NewAttachmentService(attachmentRepo, demandRepo, store, worker, NewActivityLogService(&mockActivityLogRepo{}), maxSize)
	return service, dir
}

func TestAttachmentService_Upload_RejectsDisallowedType(t *testing.T) {
	demand := pendingDemand(1, 10, nil)
	attachmentRepo := &mockAttachmentRepo{}
	service, dir := newAttachmentServiceForTest(t, demand, attachmentRepo, 1<<20)

	file, header := multipartUpload(t, "virus.exe", "application/x-msdownload", "MZ")
	defer file.Close()

	_, err := service.Upload(context.Background(), 1, policy.Actor{ID: 10, Profile: models.ProfileClient}, file, header)
	assert.ErrorIs(t, err, ErrInvalidFileType)

	// Nothing reached disk
	entries, readErr := os.ReadDir(filepath.Join(dir, "demandas"))
	if readErr == nil {
		assert.Empty(t, entries)
	}
	assert.Empty(t, attachmentRepo.created)
}

func TestAttachmentService_Upload_RejectsOversizedFile(t *testing.T) {
	demand := pendingDemand(1, 10, nil)
	attachmentRepo := &mockAttachmentRepo{}
	service, _ := newAttachmentServiceForTest(t, demand, attachmentRepo, 4)

	file, header := multipartUpload(t, "grande.pdf", "application/pdf", "conteudo maior que o limite")
	defer file.Close()

	_, err := service.Upload(context.Background(), 1, policy.Actor{ID: 10, Profile: models.ProfileClient}, file, header)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Empty(t, attachmentRepo.created)
}

func TestAttachmentService_Upload_GuardsDemandAccess(t *testing.T) {
	demand := pendingDemand(1, 10, nil)
	service, _ := newAttachmentServiceForTest(t, demand, &mockAttachmentRepo{}, 1<<20)

	file, header := multipartUpload(t, "doc.pdf", "application/pdf", "ok")
	defer file.Close()

	_, err := service.Upload(context.Background(), 1, policy.Actor{ID: 99, Profile: models.ProfileClient}, file, header)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAttachmentService_Upload_PersistsMetadata(t *testing.T) {
	demand := pendingDemand(1, 10, nil)
	attachmentRepo := &mockAttachmentRepo{}
	service, _ := newAttachmentServiceForTest(t, demand, attachmentRepo, 1<<20)

	file, header := multipartUpload(t, "procuracao.pdf", "application/pdf", "conteudo")
	defer file.Close()

	attachment, err := service.Upload(context.Background(), 1, policy.Actor{ID: 10, Profile: models.ProfileClient}, file, header)
	require.NoError(t, err)
	assert.Equal(t, "procuracao.pdf", attachment.NomeOriginal)
	assert.Equal(t, "application/pdf", attachment.TipoMime)
	assert.Equal(t, uint(10), attachment.UploaderID)
	assert.Equal(t, models.ProfileClient, attachment.UploaderPerfil)
	assert.NotEmpty(t, attachment.PathArmazenamento)
	assert.Len(t, attachmentRepo.created, 1)
}

func TestAttachmentService_Upload_RemovesOrphanedFileOnInsertFailure(t *testing.T) {
	demand := pendingDemand(1, 10, nil)
	attachmentRepo := &mockAttachmentRepo{
		mockCreate: func(ctx context.Context, attachment *models.Attachment) error {
			return errors.New("insert failed")
		},
	}
	service, dir := newAttachmentServiceForTest(t, demand, attachmentRepo, 1<<20)

	file, header := multipartUpload(t, "procuracao.pdf", "application/pdf", "conteudo")
	defer file.Close()

	_, err := service.Upload(context.Background(), 1, policy.Actor{ID: 10, Profile: models.ProfileClient}, file, header)
	require.Error(t, err)

	// The file reached disk before the insert failed; cleanup runs in the
	// background
	demandDir := filepath.Join(dir, "demandas", "1")
	assert.Eventually(t, func() bool {
		entries, readErr := os.ReadDir(demandDir)
		if readErr != nil {
			return os.IsNotExist(readErr)
		}
		return len(entries) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
