package service

import (
	"fmt"
	"image"
	"image/jpeg"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/chirper-app/chirper/app/apperror"
	"github.com/chirper-app/chirper/app/entity"
	"github.com/chirper-app/chirper/config"

	"github.com/google/uuid"
)

const (
	MsgUploadImageSuccess = "Upload image successfully"
	MsgUploadVideoSuccess = "Upload video successfully"

	msgFileTypeInvalid = "File type is not valid"
	msgFileTooLarge    = "File is too large"
)

const (
	maxImageSize = 10 << 20
	maxVideoSize = 300 << 20
)

// MediaService stores uploads on local disk. Images are re-encoded to jpeg
// regardless of input format; videos are saved verbatim.
type MediaService struct {
	imageDir string
	videoDir string
	baseURL  string
}

func NewMediaService(cfg *config.Config) (*MediaService, error) {
	for _, dir := range []string{cfg.UploadImageDir, cfg.UploadVideoDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
		}
	}
	return &MediaService{
		imageDir: cfg.UploadImageDir,
		videoDir: cfg.UploadVideoDir,
		baseURL:  cfg.BaseURL,
	}, nil
}

func (s *MediaService) UploadImage(file *multipart.FileHeader) (*entity.Media, error) {
	if file.Size > maxImageSize {
		return nil, apperror.NewStatus(400, msgFileTooLarge)
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return nil, apperror.NewStatus(400, msgFileTypeInvalid)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, apperror.NewStatus(400, msgFileTypeInvalid)
	}

	name := uuid.New().String() + ".jpg"
	dst, err := os.Create(filepath.Join(s.imageDir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if err := jpeg.Encode(dst, img, nil); err != nil {
		return nil, err
	}

	return &entity.Media{
		URL:  s.baseURL + "/static/image/" + name,
		Type: entity.MediaTypeImage,
	}, nil
}

func (s *MediaService) UploadVideo(file *multipart.FileHeader) (*entity.Media, error) {
	if file.Size > maxVideoSize {
		return nil, apperror.NewStatus(400, msgFileTooLarge)
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "video/") {
		return nil, apperror.NewStatus(400, msgFileTypeInvalid)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".mp4"
	}
	name := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(s.videoDir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return nil, err
	}

	return &entity.Media{
		URL:  s.baseURL + "/static/videos-stream/" + name,
		Type: entity.MediaTypeVideo,
	}, nil
}

// ImagePath and VideoPath resolve a stored file name, refusing path
// traversal.
func (s *MediaService) ImagePath(name string) (string, error) {
	return s.resolve(s.imageDir, name)
}

func (s *MediaService) VideoPath(name string) (string, error) {
	return s.resolve(s.videoDir, name)
}

func (s *MediaService) resolve(dir, name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", apperror.NotFound("File not found")
	}
	return filepath.Join(dir, name), nil
}
