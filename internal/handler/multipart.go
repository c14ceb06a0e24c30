package handler

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/okibe-dev/okibe/internal/domain"
	internal_errors "github.com/okibe-dev/okibe/internal/errors"
	"github.com/okibe-dev/okibe/internal/logger"
)

const multipartMemory = 1 << 20

// submissionFields are the user-entered form fields of a post submission,
// raw and unsanitized.
type submissionFields struct {
	Name    string
	Subject string
	Content string
}

// parseSubmission reads a multipart post form: text fields plus uploads under
// "files", each spooled to a temp file. The request cap comes from the target
// board's posting policy. The returned cleanup removes the temp files and must
// run after the submission is fully handled, the service reads the staged
// uploads from disk.
func (h *Handler) parseSubmission(w http.ResponseWriter, r *http.Request, policy domain.PostingPolicy) (submissionFields, []domain.StagedFile, func(), error) {
	maxRequest := policy.MaxFileSize*int64(policy.MaxFiles) + multipartMemory
	r.Body = http.MaxBytesReader(w, r.Body, maxRequest)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return submissionFields{}, nil, nil, internal_errors.Validation("Request too large")
		}
		return submissionFields{}, nil, nil, internal_errors.Validation("Invalid multipart form")
	}

	fields := submissionFields{
		Name:    r.FormValue("name"),
		Subject: r.FormValue("subject"),
		Content: r.FormValue("content"),
	}

	var staged []domain.StagedFile
	cleanup := func() {
		for _, f := range staged {
			if err := os.Remove(f.TempPath); err != nil && !os.IsNotExist(err) {
				logger.Log.Warn("failed to remove temp upload", "path", f.TempPath, "error", err.Error())
			}
		}
		r.MultipartForm.RemoveAll()
	}

	for _, header := range r.MultipartForm.File["files"] {
		file, err := spoolUpload(header)
		if err != nil {
			cleanup()
			return submissionFields{}, nil, nil, err
		}
		staged = append(staged, file)
	}

	return fields, staged, cleanup, nil
}

// spoolUpload copies one upload to a temp file, sniffing the content type from
// the leading bytes rather than trusting the client header.
func spoolUpload(header *multipart.FileHeader) (domain.StagedFile, error) {
	src, err := header.Open()
	if err != nil {
		return domain.StagedFile{}, internal_errors.Validation("Invalid upload")
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return domain.StagedFile{}, internal_errors.Validation("Invalid upload")
	}
	head = head[:n]

	mimeType, _, err := mime.ParseMediaType(http.DetectContentType(head))
	if err != nil {
		mimeType = "application/octet-stream"
	}

	tmp, err := os.CreateTemp("", "okibe-upload-*")
	if err != nil {
		return domain.StagedFile{}, err
	}
	written, err := io.Copy(tmp, io.MultiReader(bytes.NewReader(head), src))
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return domain.StagedFile{}, err
	}

	return domain.StagedFile{
		TempPath:     tmp.Name(),
		MimeType:     mimeType,
		SizeBytes:    written,
		OriginalName: header.Filename,
	}, nil
}
