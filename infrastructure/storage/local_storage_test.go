package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st, err := NewLocalStorage(LocalStorageConfig{BasePath: dir, BaseURL: "http://files.test/files/"})
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	url, err := st.UploadFile(strings.NewReader("hello"), "jobs/abc/photo.png", "image/png")
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if url != "http://files.test/files/jobs/abc/photo.png" {
		t.Errorf("url = %q", url)
	}

	rc, contentType, err := st.GetFileContent("jobs/abc/photo.png")
	if err != nil {
		t.Fatalf("GetFileContent: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if string(body) != "hello" || contentType != "image/png" {
		t.Errorf("got %q %q", body, contentType)
	}

	signed, err := st.GetSignedURL("jobs/abc/photo.png", time.Minute)
	if err != nil || signed != url {
		t.Errorf("signed = %q, err = %v", signed, err)
	}

	if err := st.DeleteFile("jobs/abc/photo.png"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "jobs")); !os.IsNotExist(err) {
		t.Errorf("expected empty directories to be cleaned up, stat err = %v", err)
	}
	if err := st.DeleteFile("jobs/abc/photo.png"); err != nil {
		t.Errorf("deleting a missing file should succeed, got %v", err)
	}
	if _, err := st.GetSignedURL("jobs/abc/photo.png", time.Minute); err == nil {
		t.Error("expected signing a missing file to fail")
	}
}

func TestLocalStorageDeleteFolder(t *testing.T) {
	dir := t.TempDir()
	st, err := NewLocalStorage(LocalStorageConfig{BasePath: dir, BaseURL: "http://files.test/files"})
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	for _, key := range []string{"jobs/abc/old.png", "jobs/abc/new.png", "jobs/abcd/keep.png"} {
		if _, err := st.UploadFile(strings.NewReader("x"), key, "image/png"); err != nil {
			t.Fatalf("UploadFile %s: %v", key, err)
		}
	}

	if err := st.DeleteFolder("jobs/abc/"); err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "jobs", "abc")); !os.IsNotExist(err) {
		t.Errorf("folder should be gone, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "jobs", "abcd", "keep.png")); err != nil {
		t.Errorf("sibling folder must survive: %v", err)
	}
	if err := st.DeleteFolder("jobs/missing/"); err != nil {
		t.Errorf("deleting a missing folder should succeed, got %v", err)
	}
}
