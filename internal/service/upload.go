package service

// Upload describes an uploaded file payload. It is a tagged variant: the
// bytes arrive either as a staged file already written under the storage
// root, or as an in-memory buffer that still needs a destination.
type Upload struct {
	OriginalFilename string
	MimeType         string
	Size             int64

	stagedPath string
	content    []byte
	buffered   bool
}

// NewStagedUpload describes a file whose bytes are already on disk at the
// given absolute path. The path must resolve under the storage root.
func NewStagedUpload(path, originalFilename, mimeType string, size int64) Upload {
	return Upload{
		OriginalFilename: originalFilename,
		MimeType:         mimeType,
		Size:             size,
		stagedPath:       path,
	}
}

// NewBufferedUpload describes a file held in memory that the attachment
// manager must write out itself.
func NewBufferedUpload(content []byte, originalFilename, mimeType string) Upload {
	return Upload{
		OriginalFilename: originalFilename,
		MimeType:         mimeType,
		Size:             int64(len(content)),
		content:          content,
		buffered:         true,
	}
}

// Staged returns the staged file path if this upload is the staged variant
func (u Upload) Staged() (string, bool) {
	return u.stagedPath, u.stagedPath != ""
}

// Buffer returns the in-memory content if this upload is the buffered variant
func (u Upload) Buffer() ([]byte, bool) {
	return u.content, u.buffered
}
