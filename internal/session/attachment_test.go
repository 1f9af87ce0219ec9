package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewAttachmentValidation(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mimeType string
		size     int
		wantErr  error
	}{
		{"markdown accepted", "notes.md", "text/markdown", 100, nil},
		{"executable rejected", "virus.exe", "application/x-msdownload", 100, ErrUnsupportedFileType},
		{"binary without texty mime rejected", "image.png", "image/png", 100, ErrUnsupportedFileType},
		{"unknown extension with text mime accepted", "README", "text/plain", 100, nil},
		{"unknown extension with json mime accepted", "payload.data", "application/json", 100, nil},
		{"unknown extension with csv mime accepted", "export.dat", "application/csv", 100, nil},
		{"exactly at limit accepted", "big.txt", "text/plain", MaxAttachmentSize, nil},
		{"over limit rejected", "huge.txt", "text/plain", MaxAttachmentSize + 1, ErrFileTooLarge},
		{"case-insensitive extension", "NOTES.MD", "", 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte("a"), tt.size)
			_, err := NewAttachment(tt.filename, tt.mimeType, data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewAttachment(%q, %q) err = %v, want %v", tt.filename, tt.mimeType, err, tt.wantErr)
			}
		})
	}
}

func TestInlineBlockFormat(t *testing.T) {
	att, err := NewAttachment("notes.md", "text/markdown", []byte("# heading\nbody"))
	if err != nil {
		t.Fatalf("NewAttachment: %v", err)
	}

	block := att.InlineBlock()
	want := strings.Join([]string{
		"ATTACHMENT_BEGIN",
		"filename: notes.md",
		"type: text/markdown",
		"extension: .md",
		"content:",
		"# heading",
		"body",
		"ATTACHMENT_END",
		"",
	}, "\n")
	if block != want {
		t.Errorf("InlineBlock() =\n%q\nwant\n%q", block, want)
	}
}
