package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/juridik/internal/client/attachments"
	"github.com/dmitrijs2005/juridik/internal/client/client"
	"github.com/dmitrijs2005/juridik/internal/client/models"
	"github.com/dmitrijs2005/juridik/internal/client/observable"
	"github.com/dmitrijs2005/juridik/internal/logging"
)

// DocumentState is the observable state of the DocumentManager.
type DocumentState struct {
	Documents []models.UserDocument
	Loading   bool
	Uploading bool
	Error     string

	inflight int
}

// DocumentManager owns the user's uploaded documents. A failed upload stays
// in the list, marked failed, until it is retried or deleted.
type DocumentManager interface {
	State() DocumentState
	Subscribe(fn func(DocumentState)) (cancel func())

	FetchDocuments(ctx context.Context) bool
	UploadDocument(ctx context.Context, file attachments.File) (string, bool)
	RetryUpload(ctx context.Context, tempID string) (string, bool)
	DeleteDocument(ctx context.Context, id string) bool
	ClearError()
}

type documentManager struct {
	api   client.API
	log   logging.Logger
	state *observable.Value[DocumentState]

	mu      sync.Mutex
	pending map[string]attachments.File // temp id -> payload of a failed upload
}

func NewDocumentManager(api client.API, log logging.Logger) DocumentManager {
	if log == nil {
		log = logging.Nop()
	}
	return &documentManager{
		api:     api,
		log:     log.With("component", "documents"),
		state:   observable.New(DocumentState{}),
		pending: make(map[string]attachments.File),
	}
}

func (d *documentManager) State() DocumentState { return d.state.Get() }

func (d *documentManager) Subscribe(fn func(DocumentState)) func() { return d.state.Subscribe(fn) }

func (d *documentManager) FetchDocuments(ctx context.Context) bool {
	d.state.Update(func(s DocumentState) DocumentState {
		s.Loading = true
		return s
	})

	docs, err := d.api.ListDocuments(ctx)
	if err != nil {
		d.log.Warn(ctx, "failed to load documents", "error", err)
		d.state.Update(func(s DocumentState) DocumentState {
			s.Loading = false
			s.Error = "Failed to load documents"
			return s
		})
		return false
	}

	// a fetch replaces the list wholesale, failed provisional uploads included
	d.mu.Lock()
	clear(d.pending)
	d.mu.Unlock()

	d.state.Update(func(s DocumentState) DocumentState {
		s.Documents = docs
		s.Loading = false
		return s
	})
	return true
}

// UploadDocument validates file, shows it as uploading and submits it. It
// returns the server-assigned id on success.
func (d *documentManager) UploadDocument(ctx context.Context, file attachments.File) (string, bool) {
	if err := attachments.Validate(&file, attachments.KindDocument); err != nil {
		d.state.Update(func(s DocumentState) DocumentState {
			s.Error = "File rejected: " + err.Error()
			return s
		})
		return "", false
	}

	temp := models.UserDocument{
		ID:         provisionalID(),
		FileName:   file.Name,
		FileType:   models.FileTypeOf(file.Name),
		FileSize:   file.Size(),
		Status:     models.DocumentUploading,
		UploadedAt: models.NewTimestamp(time.Now()),
	}

	d.state.Update(func(s DocumentState) DocumentState {
		s.Documents = append([]models.UserDocument{temp}, s.Documents...)
		s.Error = ""
		return startUpload(s)
	})

	return d.submit(ctx, temp.ID, file)
}

// RetryUpload re-submits a failed provisional upload.
func (d *documentManager) RetryUpload(ctx context.Context, tempID string) (string, bool) {
	d.mu.Lock()
	file, ok := d.pending[tempID]
	d.mu.Unlock()

	retrying := false
	d.state.Update(func(s DocumentState) DocumentState {
		i := indexOfDocument(s.Documents, tempID)
		if !ok || i < 0 || s.Documents[i].Status != models.DocumentFailed {
			s.Error = "Nothing to retry for " + tempID
			return s
		}
		retrying = true
		s.Documents = withStatus(s.Documents, i, models.DocumentUploading)
		s.Error = ""
		return startUpload(s)
	})
	if !retrying {
		return "", false
	}

	return d.submit(ctx, tempID, file)
}

func (d *documentManager) submit(ctx context.Context, tempID string, file attachments.File) (string, bool) {
	doc, err := d.api.UploadDocument(ctx, file)
	if err != nil {
		d.log.Warn(ctx, "upload failed", "file", file.Name, "error", err)

		d.mu.Lock()
		d.pending[tempID] = file
		d.mu.Unlock()

		d.state.Update(func(s DocumentState) DocumentState {
			if i := indexOfDocument(s.Documents, tempID); i >= 0 {
				s.Documents = withStatus(s.Documents, i, models.DocumentFailed)
			}
			s.Error = "Upload failed"
			return finishUpload(s)
		})
		return "", false
	}

	d.mu.Lock()
	delete(d.pending, tempID)
	d.mu.Unlock()

	d.state.Update(func(s DocumentState) DocumentState {
		if i := indexOfDocument(s.Documents, tempID); i >= 0 {
			s.Documents = slices.Clone(s.Documents)
			s.Documents[i] = *doc
		}
		return finishUpload(s)
	})
	return doc.ID, true
}

// DeleteDocument removes the document at once and restores it at the same
// position if the backend refuses. Failed provisional uploads are only
// known locally and are dropped without a request.
func (d *documentManager) DeleteDocument(ctx context.Context, id string) bool {
	idx := -1
	var removed models.UserDocument

	d.state.Update(func(s DocumentState) DocumentState {
		idx = indexOfDocument(s.Documents, id)
		if idx >= 0 {
			removed = s.Documents[idx]
			s.Documents = slices.Delete(slices.Clone(s.Documents), idx, idx+1)
		}
		return s
	})

	if models.IsProvisionalID(id) {
		d.mu.Lock()
		delete(d.pending, id)
		d.mu.Unlock()
		return idx >= 0
	}

	if err := d.api.DeleteDocument(ctx, id); err != nil {
		d.log.Warn(ctx, "failed to delete document", "document_id", id, "error", err)
		d.state.Update(func(s DocumentState) DocumentState {
			if idx >= 0 && indexOfDocument(s.Documents, id) < 0 {
				s.Documents = slices.Insert(slices.Clone(s.Documents), min(idx, len(s.Documents)), removed)
			}
			s.Error = "Failed to delete document"
			return s
		})
		return false
	}
	return true
}

func (d *documentManager) ClearError() {
	d.state.Update(func(s DocumentState) DocumentState {
		s.Error = ""
		return s
	})
}

func startUpload(s DocumentState) DocumentState {
	s.inflight++
	s.Uploading = true
	return s
}

func finishUpload(s DocumentState) DocumentState {
	if s.inflight > 0 {
		s.inflight--
	}
	s.Uploading = s.inflight > 0
	return s
}

func indexOfDocument(docs []models.UserDocument, id string) int {
	return slices.IndexFunc(docs, func(d models.UserDocument) bool { return d.ID == id })
}

func withStatus(docs []models.UserDocument, i int, st models.DocumentStatus) []models.UserDocument {
	out := slices.Clone(docs)
	out[i].Status = st
	return out
}
