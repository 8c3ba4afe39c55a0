package repository

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
)

// DefaultChunkSize splits blob content into 255KiB chunks.
const DefaultChunkSize = 255 * 1024

// BlobRepository is a chunked object store backed by the blob_files and
// blob_chunks tables. Content is written chunk by chunk and the descriptor
// row is written last, acting as the commit marker: an interrupted upload
// leaves orphaned chunks but never a dangling descriptor.
type BlobRepository struct {
	db        *sqlx.DB
	chunkSize int
}

// NewBlobRepository constructs the repository.
func NewBlobRepository(db *sqlx.DB, chunkSize int) *BlobRepository {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &BlobRepository{db: db, chunkSize: chunkSize}
}

// Put streams the reader into chunk rows and commits the descriptor once the
// full payload has been consumed. The returned id is the only address for
// the stored object.
func (r *BlobRepository) Put(ctx context.Context, filename, contentType string, content io.Reader) (*models.BlobInfo, error) {
	id := uuid.NewString()

	const insertChunk = `INSERT INTO blob_chunks (file_id, seq, data) VALUES ($1, $2, $3)`

	var size int64
	buf := make([]byte, r.chunkSize)
	for seq := 0; ; seq++ {
		n, err := io.ReadFull(content, buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if _, execErr := r.db.ExecContext(ctx, insertChunk, id, seq, chunk); execErr != nil {
				r.discardChunks(ctx, id)
				return nil, fmt.Errorf("write blob chunk %d: %w", seq, execErr)
			}
			size += int64(n)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			r.discardChunks(ctx, id)
			return nil, fmt.Errorf("read upload stream: %w", err)
		}
	}

	info := &models.BlobInfo{
		ID:          id,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   size,
		ChunkSize:   r.chunkSize,
		UploadedAt:  time.Now().UTC(),
	}

	const insertFile = `INSERT INTO blob_files (id, filename, content_type, size_bytes, chunk_size, uploaded_at)
	VALUES (:id, :filename, :content_type, :size_bytes, :chunk_size, :uploaded_at)`
	if _, err := r.db.NamedExecContext(ctx, insertFile, info); err != nil {
		r.discardChunks(ctx, id)
		return nil, fmt.Errorf("commit blob descriptor: %w", err)
	}

	return info, nil
}

// Stat returns the descriptor for a stored blob.
func (r *BlobRepository) Stat(ctx context.Context, id string) (*models.BlobInfo, error) {
	const query = `SELECT id, filename, content_type, size_bytes, chunk_size, uploaded_at FROM blob_files WHERE id = $1 LIMIT 1`
	var info models.BlobInfo
	if err := r.db.GetContext(ctx, &info, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("stat blob: %w", err)
	}
	return &info, nil
}

// Open returns the descriptor plus a reader streaming the chunks in sequence
// order from a live cursor. The caller owns the reader and must close it.
func (r *BlobRepository) Open(ctx context.Context, id string) (*models.BlobInfo, io.ReadCloser, error) {
	info, err := r.Stat(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	const query = `SELECT data FROM blob_chunks WHERE file_id = $1 ORDER BY seq ASC`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, nil, fmt.Errorf("open blob chunks: %w", err)
	}

	return info, &chunkReader{rows: rows}, nil
}

// List returns all blob descriptors, newest first.
func (r *BlobRepository) List(ctx context.Context) ([]models.BlobInfo, error) {
	const query = `SELECT id, filename, content_type, size_bytes, chunk_size, uploaded_at FROM blob_files ORDER BY uploaded_at DESC`
	var infos []models.BlobInfo
	if err := r.db.SelectContext(ctx, &infos, query); err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	return infos, nil
}

// Delete removes the descriptor and every chunk. It returns sql.ErrNoRows
// when no descriptor existed for the id.
func (r *BlobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blob_files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blob descriptor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check blob delete rows: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM blob_chunks WHERE file_id = $1`, id); err != nil {
		return fmt.Errorf("delete blob chunks: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// discardChunks best-effort removes chunks written before a failed commit.
func (r *BlobRepository) discardChunks(ctx context.Context, id string) {
	_, _ = r.db.ExecContext(ctx, `DELETE FROM blob_chunks WHERE file_id = $1`, id)
}

// chunkReader adapts a chunk cursor into an io.ReadCloser.
type chunkReader struct {
	rows *sql.Rows
	buf  []byte
	done bool
}

func (cr *chunkReader) Read(p []byte) (int, error) {
	for len(cr.buf) == 0 {
		if cr.done {
			return 0, io.EOF
		}
		if !cr.rows.Next() {
			cr.done = true
			if err := cr.rows.Err(); err != nil {
				return 0, fmt.Errorf("advance blob cursor: %w", err)
			}
			return 0, io.EOF
		}
		var chunk []byte
		if err := cr.rows.Scan(&chunk); err != nil {
			cr.done = true
			return 0, fmt.Errorf("scan blob chunk: %w", err)
		}
		cr.buf = chunk
	}

	n := copy(p, cr.buf)
	cr.buf = cr.buf[n:]
	return n, nil
}

func (cr *chunkReader) Close() error {
	cr.done = true
	return cr.rows.Close()
}
