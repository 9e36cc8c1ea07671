package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"ticked/internal/model"
)

// UploadAttachment streams a file to the server as multipart form data
// under the field name "file".
func (c *Client) UploadAttachment(ctx context.Context, taskID model.TaskID, filename string, r io.Reader) (model.Attachment, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	path := "/tasks/" + url.PathEscape(taskID) + "/attachments"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, pr)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.prepare(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Attachment{}, decodeError(resp)
	}
	var out model.Attachment
	if err := decodeJSON(resp.Body, &out); err != nil {
		return model.Attachment{}, err
	}
	return out, nil
}

func (c *Client) TaskAttachments(ctx context.Context, taskID model.TaskID) ([]model.Attachment, error) {
	var out []model.Attachment
	err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(taskID)+"/attachments", nil, &out)
	return out, err
}

func (c *Client) DeleteAttachment(ctx context.Context, attachmentID string) error {
	return c.do(ctx, http.MethodDelete, "/attachments/"+url.PathEscape(attachmentID), nil, nil)
}

// DownloadAttachment returns the attachment bytes. The caller must close
// the reader.
func (c *Client) DownloadAttachment(ctx context.Context, attachmentID string) (io.ReadCloser, error) {
	path := "/attachments/" + url.PathEscape(attachmentID) + "/download"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.prepare(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp.Body, nil
}
