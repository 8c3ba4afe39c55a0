package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
)

type mockBlobStore struct {
	blobs     map[string][]byte
	infos     map[string]*models.BlobInfo
	putErr    error
	deleteErr error
	deleted   []string
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{blobs: map[string][]byte{}, infos: map[string]*models.BlobInfo{}}
}

func (m *mockBlobStore) Put(ctx context.Context, filename, contentType string, content io.Reader) (*models.BlobInfo, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	info := &models.BlobInfo{ID: uuid.NewString(), Filename: filename, ContentType: contentType, SizeBytes: int64(len(data))}
	m.blobs[info.ID] = data
	m.infos[info.ID] = info
	return info, nil
}

func (m *mockBlobStore) Open(ctx context.Context, id string) (*models.BlobInfo, io.ReadCloser, error) {
	info, ok := m.infos[id]
	if !ok {
		return nil, nil, sql.ErrNoRows
	}
	return info, io.NopCloser(bytes.NewReader(m.blobs[id])), nil
}

func (m *mockBlobStore) List(ctx context.Context) ([]models.BlobInfo, error) {
	var infos []models.BlobInfo
	for _, info := range m.infos {
		infos = append(infos, *info)
	}
	return infos, nil
}

func (m *mockBlobStore) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.infos[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.infos, id)
	delete(m.blobs, id)
	return nil
}

type mockAchievementRepo struct {
	rows      map[string]*models.Achievement
	createErr error
	updateErr error
}

func newMockAchievementRepo() *mockAchievementRepo {
	return &mockAchievementRepo{rows: map[string]*models.Achievement{}}
}

func (m *mockAchievementRepo) Create(ctx context.Context, a *models.Achievement) error {
	if m.createErr != nil {
		return m.createErr
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.rows[a.ID] = a
	return nil
}

func (m *mockAchievementRepo) List(ctx context.Context) ([]models.Achievement, error) {
	var out []models.Achievement
	for _, a := range m.rows {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockAchievementRepo) GetByID(ctx context.Context, id string) (*models.Achievement, error) {
	a, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (m *mockAchievementRepo) Update(ctx context.Context, id, title, description, date string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	a, ok := m.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.Title, a.Description, a.Date = title, description, date
	return nil
}

func (m *mockAchievementRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

func validAchievementReq() models.CreateAchievementRequest {
	return models.CreateAchievementRequest{Title: "Best Paper", Description: "NCACT 2025", Date: "2025-02-14"}
}

func TestAchievementCreateStoresBlobThenRow(t *testing.T) {
	store := newMockBlobStore()
	repo := newMockAchievementRepo()
	svc := NewAchievementService(repo, store, nil, nil)

	a, err := svc.Create(context.Background(), validAchievementReq(), "cert.pdf", "application/pdf", bytes.NewReader([]byte("pdf-bytes")))
	require.NoError(t, err)
	assert.NotEmpty(t, a.FileID)
	assert.Equal(t, "cert.pdf", a.Filename)
	assert.Contains(t, store.blobs, a.FileID)
	assert.Contains(t, repo.rows, a.ID)
}

func TestAchievementCreateCompensatesOnRowFailure(t *testing.T) {
	store := newMockBlobStore()
	repo := newMockAchievementRepo()
	repo.createErr = errors.New("insert failed")
	svc := NewAchievementService(repo, store, nil, nil)

	_, err := svc.Create(context.Background(), validAchievementReq(), "cert.pdf", "application/pdf", bytes.NewReader([]byte("pdf-bytes")))
	require.Error(t, err)
	// Compensating delete removed the freshly written blob.
	assert.Len(t, store.deleted, 1)
	assert.Empty(t, store.blobs)
}

func TestAchievementCreateOrphanOnFailedCompensation(t *testing.T) {
	store := newMockBlobStore()
	store.deleteErr = errors.New("store unreachable")
	repo := newMockAchievementRepo()
	repo.createErr = errors.New("insert failed")
	svc := NewAchievementService(repo, store, nil, nil)

	_, err := svc.Create(context.Background(), validAchievementReq(), "cert.pdf", "application/pdf", bytes.NewReader([]byte("pdf-bytes")))
	require.Error(t, err)
	// Cleanup failed: the blob stays behind with no row pointing at it.
	assert.Len(t, store.blobs, 1)
	assert.Empty(t, repo.rows)
}

func TestAchievementCreateRequiresFile(t *testing.T) {
	svc := NewAchievementService(newMockAchievementRepo(), newMockBlobStore(), nil, nil)

	_, err := svc.Create(context.Background(), validAchievementReq(), "", "", bytes.NewReader(nil))
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrUpload.Code, appErr.Code)
}

func TestAchievementDeleteRemovesRowAndBlob(t *testing.T) {
	store := newMockBlobStore()
	repo := newMockAchievementRepo()
	svc := NewAchievementService(repo, store, nil, nil)

	a, err := svc.Create(context.Background(), validAchievementReq(), "cert.pdf", "application/pdf", bytes.NewReader([]byte("pdf-bytes")))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), a.ID))
	assert.Empty(t, repo.rows)
	assert.Empty(t, store.blobs)
}

func TestAchievementDeleteMissingIsNotFound(t *testing.T) {
	svc := NewAchievementService(newMockAchievementRepo(), newMockBlobStore(), nil, nil)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestAchievementDeleteToleratesMissingBlob(t *testing.T) {
	store := newMockBlobStore()
	repo := newMockAchievementRepo()
	repo.rows["a1"] = &models.Achievement{ID: "a1", FileID: "gone", Filename: "cert.pdf"}
	svc := NewAchievementService(repo, store, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "a1"))
	assert.Empty(t, repo.rows)
}

func TestAchievementUpdateMissingIsNotFound(t *testing.T) {
	svc := NewAchievementService(newMockAchievementRepo(), newMockBlobStore(), nil, nil)

	_, err := svc.Update(context.Background(), "missing", models.UpdateAchievementRequest{Title: "x"})
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestAchievementOpenStreamsBlob(t *testing.T) {
	store := newMockBlobStore()
	repo := newMockAchievementRepo()
	svc := NewAchievementService(repo, store, nil, nil)

	a, err := svc.Create(context.Background(), validAchievementReq(), "cert.pdf", "application/pdf", bytes.NewReader([]byte("pdf-bytes")))
	require.NoError(t, err)

	info, rc, err := svc.Open(context.Background(), a.ID)
	require.NoError(t, err)
	defer rc.Close() //nolint:errcheck

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
	assert.Equal(t, "cert.pdf", info.Filename)
}
