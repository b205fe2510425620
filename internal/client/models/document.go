package models

import (
	"path/filepath"
	"strings"
)

type DocumentStatus string

const (
	DocumentUploading  DocumentStatus = "uploading"
	DocumentProcessing DocumentStatus = "processing"
	DocumentReady      DocumentStatus = "ready"
	DocumentFailed     DocumentStatus = "failed"
)

type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeDOC  FileType = "doc"
)

// FileTypeOf guesses the document type from a file name. Anything that is
// not .pdf or .doc is treated as docx.
func FileTypeOf(name string) FileType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FileTypePDF
	case ".doc":
		return FileTypeDOC
	default:
		return FileTypeDOCX
	}
}

type UserDocument struct {
	ID         string         `json:"id"`
	FileName   string         `json:"fileName"`
	FileType   FileType       `json:"fileType"`
	FileSize   int64          `json:"fileSize"`
	Status     DocumentStatus `json:"status"`
	PageCount  *int           `json:"pageCount,omitempty"`
	UploadedAt Timestamp      `json:"uploadedAt"`
}

func (d UserDocument) Provisional() bool {
	return IsProvisionalID(d.ID)
}
