package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real multipart.FileHeader by parsing a form.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("product", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(MaxFileSize))
	return req.MultipartForm.File["product"][0]
}

func TestLocalSave(t *testing.T) {
	dir := t.TempDir()
	local, err := NewLocal(filepath.Join(dir, "images"), "http://localhost:4000/")
	require.NoError(t, err)

	url, err := local.Save(context.Background(), fileHeader(t, "Shirt.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^http://localhost:4000/images/product_\d+_[0-9a-f]{8}\.png$`), url)

	stored := filepath.Join(dir, "images", url[strings.LastIndex(url, "/")+1:])
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalSaveRejectsExtension(t *testing.T) {
	local, err := NewLocal(t.TempDir(), "http://localhost")
	require.NoError(t, err)

	_, err = local.Save(context.Background(), fileHeader(t, "script.sh", []byte("#!/bin/sh")))
	assert.ErrorIs(t, err, ErrUnsupportedExt)
}

func TestCheckRejectsLargeFiles(t *testing.T) {
	_, err := Check(&multipart.FileHeader{Filename: "big.jpg", Size: MaxFileSize + 1})
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFileNamesDiffer(t *testing.T) {
	a := FileName("product", ".png")
	b := FileName("product", ".png")
	assert.NotEqual(t, a, b)
}
