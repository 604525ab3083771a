package directus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// UploadFile stores the content of r under filename and returns the new file
// id. The id can be turned into a public link with AssetURL.
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	resp, err := c.doRequest(ctx, request{
		method:      http.MethodPost,
		path:        "/files",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return "", err
	}
	var out struct {
		ID ID `json:"id"`
	}
	if err := decodeData(resp.Body, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("upload %s: response has no file id", filename)
	}
	return string(out.ID), nil
}

// AssetURL is the public address of an uploaded file.
func (c *Client) AssetURL(fileID string) string {
	return c.baseURL + "/assets/" + url.PathEscape(fileID)
}
