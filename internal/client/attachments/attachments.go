// Package attachments loads local files for upload and checks them against
// the limits the backend enforces, before any request is made.
package attachments

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/juridik/internal/common"
	"github.com/gabriel-vasile/mimetype"
)

// Kind selects which file types are accepted.
type Kind int

const (
	// KindDocument is a library upload: PDF or Word.
	KindDocument Kind = iota
	// KindChat is a file attached to a chat message: PDF, Word or plain text.
	KindChat
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDOC  = "application/msword"
	MimeText = "text/plain"

	// legacy .doc files are OLE containers and are often detected as such
	mimeOLE = "application/x-ole-storage"
)

var accepted = map[Kind][]string{
	KindDocument: {MimePDF, MimeDOCX, MimeDOC},
	KindChat:     {MimePDF, MimeDOCX, MimeDOC, MimeText},
}

// File is an in-memory upload.
type File struct {
	Name        string
	Data        []byte
	ContentType string
}

func (f File) Size() int64 { return int64(len(f.Data)) }

// Load reads path into a File. Oversized files are rejected before they are
// read.
func Load(path string) (File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	if fi.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > common.MaxUploadSize {
		return File{}, fmt.Errorf("%s: %w", filepath.Base(path), common.ErrFileTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return File{Name: filepath.Base(path), Data: data}, nil
}

// Validate checks size and detected type of f for the given kind and sets
// f.ContentType to the canonical MIME type.
func Validate(f *File, kind Kind) error {
	if len(f.Data) == 0 {
		return fmt.Errorf("%s: %w", f.Name, common.ErrEmptyFile)
	}
	if f.Size() > common.MaxUploadSize {
		return fmt.Errorf("%s: %w", f.Name, common.ErrFileTooLarge)
	}

	ct, ok := detect(f, kind)
	if !ok {
		return fmt.Errorf("%s (%s): %w", f.Name, ct, common.ErrUnsupportedType)
	}
	f.ContentType = ct
	return nil
}

func detect(f *File, kind Kind) (string, bool) {
	mt := mimetype.Detect(f.Data)

	for _, want := range accepted[kind] {
		if mt.Is(want) {
			return want, true
		}
	}

	if mt.Is(mimeOLE) && strings.EqualFold(filepath.Ext(f.Name), ".doc") {
		return MimeDOC, true
	}
	return mt.String(), false
}
