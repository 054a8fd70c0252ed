package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidFileType = errors.New("only PDF files are accepted")

type StorageService interface {
	// SaveFile stores an upload under the company's directory and returns
	// the stored file name and its full path.
	SaveFile(file *multipart.FileHeader, companyID uint, fileType string) (string, string, error)
	GetFilePath(companyID uint, filename string) string
	DeleteFile(companyID uint, filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) SaveFile(file *multipart.FileHeader, companyID uint, fileType string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidFileType, ext)
	}

	dir := s.companyDir(companyID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create company upload directory: %w", err)
	}

	uniqueFilename := fmt.Sprintf("%s_%s%s", fileType, uuid.New().String(), ext)
	filePath := filepath.Join(dir, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(companyID uint, filename string) string {
	return filepath.Join(s.companyDir(companyID), filepath.Base(filename))
}

func (s *storageService) DeleteFile(companyID uint, filename string) error {
	if err := os.Remove(s.GetFilePath(companyID, filename)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *storageService) companyDir(companyID uint) string {
	return filepath.Join(s.uploadPath, fmt.Sprintf("company_%d", companyID))
}
