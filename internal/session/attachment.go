package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxAttachmentSize is the byte ceiling for attached files (1 MiB).
const MaxAttachmentSize = 1 << 20

var (
	// ErrUnsupportedFileType is returned when a file passes neither the
	// extension allow-list nor the MIME fallback check.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrFileTooLarge is returned when a file exceeds MaxAttachmentSize.
	ErrFileTooLarge = errors.New("file exceeds 1 MiB limit")
)

// allowedExtensions is the allow-list of text/code file extensions.
var allowedExtensions = map[string]bool{
	".txt": true, ".md": true, ".markdown": true, ".csv": true,
	".json": true, ".yaml": true, ".yml": true, ".xml": true,
	".toml": true, ".ini": true, ".log": true, ".sql": true,
	".go": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".py": true, ".rb": true, ".java": true, ".c": true, ".h": true,
	".cpp": true, ".hpp": true, ".rs": true, ".sh": true, ".bash": true,
	".html": true, ".css": true, ".env": true,
}

// Attachment is a client-only, ephemeral file attachment. It is never
// persisted as a distinct entity: its decoded text is inlined into the next
// outgoing message's content and the attachment is then discarded.
type Attachment struct {
	Filename  string
	MimeType  string
	Extension string
	RawText   string
}

// NewAttachment validates and decodes a file for attaching. Acceptance
// requires either an allow-listed extension or a texty MIME type
// (text/*, or a type mentioning json/csv), and a size under the ceiling.
func NewAttachment(filename, mimeType string, data []byte) (*Attachment, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] && !isTextyMime(mimeType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, filename)
	}
	if len(data) > MaxAttachmentSize {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, filename)
	}

	return &Attachment{
		Filename:  filename,
		MimeType:  mimeType,
		Extension: ext,
		RawText:   string(data),
	}, nil
}

func isTextyMime(mimeType string) bool {
	mt := strings.ToLower(mimeType)
	return strings.HasPrefix(mt, "text/") ||
		strings.Contains(mt, "json") ||
		strings.Contains(mt, "csv")
}

// InlineBlock renders the delimited attachment block that is prepended to
// the outgoing message content. The block goes to the model only; it is
// never rendered in the local message list.
func (a *Attachment) InlineBlock() string {
	var b strings.Builder
	b.WriteString("ATTACHMENT_BEGIN\n")
	b.WriteString("filename: " + a.Filename + "\n")
	b.WriteString("type: " + a.MimeType + "\n")
	b.WriteString("extension: " + a.Extension + "\n")
	b.WriteString("content:\n")
	b.WriteString(a.RawText)
	b.WriteString("\nATTACHMENT_END\n")
	return b.String()
}
