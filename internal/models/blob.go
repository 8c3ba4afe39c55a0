package models

import "time"

// BlobInfo describes a stored binary object. The content itself lives in
// fixed-size chunks addressed only by the generated identifier.
type BlobInfo struct {
	ID          string    `db:"id" json:"id"`
	Filename    string    `db:"filename" json:"filename"`
	ContentType string    `db:"content_type" json:"contentType"`
	SizeBytes   int64     `db:"size_bytes" json:"sizeBytes"`
	ChunkSize   int       `db:"chunk_size" json:"chunkSize"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploadedAt"`
}
