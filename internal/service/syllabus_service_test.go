package service

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
)

func TestSyllabusUploadAndOpen(t *testing.T) {
	store := newMockBlobStore()
	svc := NewSyllabusService(store, nil)

	info, err := svc.Upload(context.Background(), "syllabus.pdf", "application/pdf", bytes.NewReader([]byte("course plan")))
	require.NoError(t, err)
	assert.Equal(t, "syllabus.pdf", info.Filename)
	assert.Equal(t, int64(len("course plan")), info.SizeBytes)

	got, rc, err := svc.Open(context.Background(), info.ID)
	require.NoError(t, err)
	defer rc.Close() //nolint:errcheck

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "course plan", string(data))
	assert.Equal(t, info.ID, got.ID)
}

func TestSyllabusUploadDefaultsContentType(t *testing.T) {
	store := newMockBlobStore()
	svc := NewSyllabusService(store, nil)

	info, err := svc.Upload(context.Background(), "syllabus.pdf", "", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", info.ContentType)
}

func TestSyllabusUploadRequiresFilename(t *testing.T) {
	svc := NewSyllabusService(newMockBlobStore(), nil)

	_, err := svc.Upload(context.Background(), "  ", "application/pdf", bytes.NewReader(nil))
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrUpload.Code, appErr.Code)
}

func TestSyllabusOpenMissingIsNotFound(t *testing.T) {
	svc := NewSyllabusService(newMockBlobStore(), nil)

	_, _, err := svc.Open(context.Background(), "missing")
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestSyllabusDeleteMissingIsNotFound(t *testing.T) {
	svc := NewSyllabusService(newMockBlobStore(), nil)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestSyllabusListNormalizesNil(t *testing.T) {
	svc := NewSyllabusService(newMockBlobStore(), nil)

	infos, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, infos)
	assert.Empty(t, infos)
}
