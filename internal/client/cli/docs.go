package cli

import (
	"context"

	"github.com/dmitrijs2005/juridik/internal/client/attachments"
	"github.com/dmitrijs2005/juridik/internal/client/models"
)

// Docs refreshes and prints the document library.
func (a *App) Docs(ctx context.Context) error {
	if !a.docs.FetchDocuments(ctx) {
		return stateError(a.docs.State().Error, a.docs.ClearError)
	}
	a.printDocuments(a.docs.State().Documents)
	return nil
}

func (a *App) printDocuments(docs []models.UserDocument) {
	if len(docs) == 0 {
		a.println("No documents uploaded.")
		return
	}
	for _, d := range docs {
		pages := ""
		if d.PageCount != nil {
			pages = ", " + pluralPages(*d.PageCount)
		}
		a.printf("%s  %s  %s  %s%s\n", d.ID, d.FileName, d.Status, humanSize(d.FileSize), pages)
	}
}

// Upload sends a local PDF or Word file to the library.
func (a *App) Upload(ctx context.Context, args []string) error {
	path, err := oneArg(args, "upload <path>")
	if err != nil {
		return err
	}
	f, err := attachments.Load(path)
	if err != nil {
		return err
	}

	id, ok := a.docs.UploadDocument(ctx, f)
	if !ok {
		return a.uploadFailed()
	}
	a.printf("Uploaded %s as %s\n", f.Name, id)
	return nil
}

// Retry re-submits a failed upload.
func (a *App) Retry(ctx context.Context, args []string) error {
	id, err := oneArg(args, "retry <document-id>")
	if err != nil {
		return err
	}
	newID, ok := a.docs.RetryUpload(ctx, id)
	if !ok {
		return a.uploadFailed()
	}
	a.printf("Uploaded as %s\n", newID)
	return nil
}

func (a *App) uploadFailed() error {
	err := stateError(a.docs.State().Error, a.docs.ClearError)
	for _, d := range a.docs.State().Documents {
		if d.Status == models.DocumentFailed {
			a.printf("%s can be retried with 'retry %s'\n", d.FileName, d.ID)
		}
	}
	return err
}

// RemoveDocument deletes a document after confirmation.
func (a *App) RemoveDocument(ctx context.Context, args []string) error {
	id, err := oneArg(args, "rmdoc <document-id>")
	if err != nil {
		return err
	}
	if !a.confirm("Delete document " + id + "?") {
		return nil
	}
	if !a.docs.DeleteDocument(ctx, id) {
		return stateError(a.docs.State().Error, a.docs.ClearError)
	}
	a.println("Deleted")
	return nil
}
