package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"mime/multipart"
	"slices"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
)

var (
	ErrNoFile        = errors.New("no file uploaded")
	ErrFileTooLarge  = errors.New("file size exceeds limit")
	ErrNotAnImage    = errors.New("uploaded file is not a png or jpeg image")
	acceptedImageExt = []string{"image/png", "image/jpeg"}
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ReadImageFile(file *multipart.FileHeader) ([]byte, error)
	DetectImage(content []byte) (string, error)
	NewAPIKey() (string, error)
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return &utils{
		maxFileSize: 5 * 1024 * 1024,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// ReadImageFile loads an upload and checks its content, not its declared
// Content-Type.
func (u *utils) ReadImageFile(file *multipart.FileHeader) ([]byte, error) {
	if file == nil {
		return nil, ErrNoFile
	}

	if file.Size > u.maxFileSize {
		return nil, ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, u.maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > u.maxFileSize {
		return nil, ErrFileTooLarge
	}

	if _, err := u.DetectImage(content); err != nil {
		return nil, err
	}

	return content, nil
}

func (u *utils) DetectImage(content []byte) (string, error) {
	if len(content) == 0 {
		return "", ErrNoFile
	}
	mime := mimetype.Detect(content).String()
	if !slices.Contains(acceptedImageExt, mime) {
		return "", ErrNotAnImage
	}
	return mime, nil
}

// NewAPIKey returns 32 random bytes, hex encoded.
func (u *utils) NewAPIKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
