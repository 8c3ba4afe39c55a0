package models

import "time"

// Achievement is the metadata row for an uploaded certificate. FileID points
// at a blob in the chunked store; the row is the only discoverable pointer to
// that blob, so deleting the row must also delete the blob.
type Achievement struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Date        string    `db:"date" json:"date"`
	FileID      string    `db:"file_id" json:"fileId"`
	Filename    string    `db:"filename" json:"filename"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateAchievementRequest carries the multipart form fields; the certificate
// file itself travels separately as an upload stream.
type CreateAchievementRequest struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
	Date        string `form:"date" validate:"required"`
}

// UpdateAchievementRequest edits the descriptive fields of a row.
type UpdateAchievementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}
