package utils

import (
	"elearn/config"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
)

// UploadResult is what the rest of the app stores for an uploaded asset: the
// public URL plus an opaque reference used to replace or delete it later.
type UploadResult struct {
	URL string `json:"url"`
	Ref string `json:"ref"`
}

// UploadMedia stores an uploaded file and returns its URL and reference. When
// a remote media API is configured the file is offloaded there, otherwise it
// lands in the local upload directory. A non-empty oldRef is replaced
// best-effort; a failed cleanup never fails the upload.
func UploadMedia(file *multipart.FileHeader, folder string, oldRef string) (*UploadResult, error) {
	if config.AppConfig.MediaApiURL != "" {
		return uploadRemote(file, folder, oldRef)
	}

	if oldRef != "" {
		if err := os.Remove(oldRef); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove old media file %s: %v", oldRef, err)
		}
	}

	path, err := SaveUploadedFile(file, filepath.Join(config.AppConfig.UploadDir, folder))
	if err != nil {
		return nil, err
	}

	return &UploadResult{URL: GetFileURL(folder + "/" + filepath.Base(path)), Ref: path}, nil
}

func uploadRemote(file *multipart.FileHeader, folder string, oldRef string) (*UploadResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var result UploadResult
	client := resty.New().SetTimeout(30 * time.Second)

	resp, err := client.R().
		SetAuthToken(config.AppConfig.MediaApiKey).
		SetFileReader("file", file.Filename, src).
		SetFormData(map[string]string{
			"folder":  folder,
			"old_ref": oldRef,
		}).
		SetResult(&result).
		Post(config.AppConfig.MediaApiURL + "/upload")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("media upload failed with status %d", resp.StatusCode())
	}

	return &result, nil
}

// SaveUploadedFile writes an uploaded file under destDir with a unique name
// and returns the stored path.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Create a unique filename
	ext := filepath.Ext(file.Filename)
	newFilename := time.Now().Format("20060102150405") + ext
	filePath := filepath.Join(destDir, newFilename)

	// Create destination file
	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "/uploads/" + filePath
}
