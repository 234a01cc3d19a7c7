package media

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	TmpFileDirPrefix = "_tmp_media_store_"
)

// LocalFileStore writes uploads under a temp directory. Development stand-in
// for S3; files are served by key path.
type LocalFileStore struct {
	bucket     string
	folderName string
}

func NewLocalFileStore(bucket string) (*LocalFileStore, error) {
	folderName, err := CreateFolder(bucket)
	if err != nil {
		return nil, err
	}
	return &LocalFileStore{
		bucket:     bucket,
		folderName: folderName,
	}, nil
}

func CreateFolder(bucket string) (string, error) {
	folderName := TmpFileDirPrefix + bucket
	err := os.MkdirAll(folderName, os.ModePerm)
	if err != nil && strings.Contains(err.Error(), "file exists") {
		return folderName, nil
	}
	return folderName, err
}

func DeleteFolder(folderName string) error {
	return os.RemoveAll(folderName)
}

func (s *LocalFileStore) Store(body io.Reader, fileName string) (string, error) {
	key := uuid.New().String() + strings.ToLower(path.Ext(fileName))
	localPath := filepath.Join(s.folderName, key)

	file, err := os.Create(localPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		return "", err
	}
	return key, nil
}

func (s *LocalFileStore) GetUrlFromKey(key string) string {
	return filepath.Join(s.folderName, key)
}

func (s *LocalFileStore) CleanUp() {
	DeleteFolder(s.folderName)
}
