package media

import (
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

const (
	DevS3Bucket    = "chirp-dev-media"
	ProdS3Bucket   = "chirp-media-uploads"
	ServingPrefix  = "https://media.chirpnet.io/"
	uploadedAsACL  = "public-read"
	uploadedRegion = "us-west-1"
)

type S3FileStore struct {
	bucket                   string
	uploader                 *s3manager.Uploader
	svc                      *s3.S3
	customizeUploadedUrlFunc CustomizeUploadedUrlType
}

func NewS3FileStore(bucket string) (*S3FileStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(uploadedRegion),
	})
	if err != nil {
		return nil, err
	}

	return &S3FileStore{
		bucket:                   bucket,
		uploader:                 s3manager.NewUploader(sess),
		svc:                      s3.New(sess),
		customizeUploadedUrlFunc: nil,
	}, nil
}

func (s *S3FileStore) SetCustomizeUploadedUrlFunc(f CustomizeUploadedUrlType) {
	s.customizeUploadedUrlFunc = f
}

// Keys are random, so two uploads of the same file never collide and the
// original file name never leaks into the public URL.
func (s *S3FileStore) generateKey(fileName string) string {
	return uuid.New().String() + strings.ToLower(path.Ext(fileName))
}

func (s *S3FileStore) Store(body io.Reader, fileName string) (key string, err error) {
	key = s.generateKey(fileName)
	_, err = s.uploader.Upload(&s3manager.UploadInput{
		ACL:    aws.String(uploadedAsACL),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *S3FileStore) IsKeyExisted(key string) bool {
	_, err := s.svc.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

func (s *S3FileStore) GetUrlFromKey(key string) string {
	if s.customizeUploadedUrlFunc == nil {
		return ServingPrefix + key
	}
	return s.customizeUploadedUrlFunc(key)
}

func (s *S3FileStore) CleanUp() {
	// do nothing for s3
}
