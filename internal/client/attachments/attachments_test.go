package attachments

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/juridik/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pdfData  = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")
	textData = []byte("Hyresavtal mellan parterna.\nAndra stycket.\n")
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		kind    Kind
		wantCT  string
		wantErr error
	}{
		{name: "pdf document", file: File{Name: "a.pdf", Data: pdfData}, kind: KindDocument, wantCT: MimePDF},
		{name: "pdf in chat", file: File{Name: "a.pdf", Data: pdfData}, kind: KindChat, wantCT: MimePDF},
		{name: "text in chat", file: File{Name: "notes.txt", Data: textData}, kind: KindChat, wantCT: MimeText},
		{name: "text as document", file: File{Name: "notes.txt", Data: textData}, kind: KindDocument, wantErr: common.ErrUnsupportedType},
		{name: "image", file: File{Name: "x.png", Data: pngData}, kind: KindChat, wantErr: common.ErrUnsupportedType},
		{name: "empty", file: File{Name: "e.pdf"}, kind: KindDocument, wantErr: common.ErrEmptyFile},
		{
			name:    "too large",
			file:    File{Name: "big.pdf", Data: append(append([]byte{}, pdfData...), bytes.Repeat([]byte{'x'}, common.MaxUploadSize)...)},
			kind:    KindDocument,
			wantErr: common.ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.file
			err := Validate(&f, tt.kind)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCT, f.ContentType)
		})
	}
}

func TestValidate_ExactLimitAccepted(t *testing.T) {
	data := make([]byte, common.MaxUploadSize)
	copy(data, pdfData)
	f := File{Name: "limit.pdf", Data: data}

	assert.NoError(t, Validate(&f, KindDocument))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contract.pdf")
	require.NoError(t, os.WriteFile(path, pdfData, 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "contract.pdf", f.Name)
	assert.Equal(t, int64(len(pdfData)), f.Size())

	_, err = Load(filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)

	_, err = Load(dir)
	assert.Error(t, err)
}

func TestLoad_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.pdf")
	fh, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, fh.Truncate(common.MaxUploadSize+1))
	require.NoError(t, fh.Close())

	_, err = Load(path)
	assert.ErrorIs(t, err, common.ErrFileTooLarge)
}
