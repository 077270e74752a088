// Package netx holds small HTTP helpers shared by the client transport.
package netx

import (
	"fmt"
	"io"
	"mime/multipart"
)

// MultipartBody returns a streaming multipart/form-data body with a single
// file part named field, and the matching Content-Type header value.
//
// The content is copied on a goroutine through an io.Pipe; closing the
// returned reader aborts the copy. Copy errors surface on Read.
func MultipartBody(field, filename string, content io.Reader) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(field, filename)
		if err != nil {
			_ = pw.CloseWithError(fmt.Errorf("create form file: %w", err))
			return
		}
		if content != nil {
			if _, err := io.Copy(part, content); err != nil {
				_ = pw.CloseWithError(fmt.Errorf("copy %s: %w", filename, err))
				return
			}
		}
		if err := mw.Close(); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.Close()
	}()

	return pr, mw.FormDataContentType()
}
