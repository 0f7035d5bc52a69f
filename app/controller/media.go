package controller

import (
	"net/http"

	"github.com/chirper-app/chirper/app/apperror"
	dto "github.com/chirper-app/chirper/app/dto/http"
	"github.com/chirper-app/chirper/app/entity"
	"github.com/chirper-app/chirper/app/service"

	"github.com/labstack/echo/v4"
)

type MediaController struct {
	mediaService *service.MediaService
}

func NewMediaController(mediaService *service.MediaService) *MediaController {
	return &MediaController{mediaService: mediaService}
}

func (c *MediaController) UploadImage(ctx echo.Context) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid multipart form")
	}

	files := form.File["image"]
	if len(files) == 0 {
		return apperror.NewStatus(http.StatusBadRequest, "Image is required")
	}

	medias := make([]entity.Media, 0, len(files))
	for _, file := range files {
		media, err := c.mediaService.UploadImage(file)
		if err != nil {
			return err
		}
		medias = append(medias, *media)
	}

	return ctx.JSON(http.StatusOK, dto.MediaUploadResponse{
		Message: service.MsgUploadImageSuccess,
		Result:  medias,
	})
}

func (c *MediaController) UploadVideo(ctx echo.Context) error {
	file, err := ctx.FormFile("video")
	if err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Video is required")
	}

	media, err := c.mediaService.UploadVideo(file)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.MediaUploadResponse{
		Message: service.MsgUploadVideoSuccess,
		Result:  []entity.Media{*media},
	})
}
