package controller

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/chirper-app/chirper/app/apperror"
	"github.com/chirper-app/chirper/app/service"

	"github.com/labstack/echo/v4"
)

const videoChunkSize = 1_000_000

var nonDigits = regexp.MustCompile(`\D`)

type StaticController struct {
	mediaService *service.MediaService
}

func NewStaticController(mediaService *service.MediaService) *StaticController {
	return &StaticController{mediaService: mediaService}
}

func (c *StaticController) ServeImage(ctx echo.Context) error {
	path, err := c.mediaService.ImagePath(ctx.Param("name"))
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return apperror.NotFound("Image not found")
	}
	return ctx.File(path)
}

// ServeVideoStream answers range requests one chunk at a time. Clients
// without a Range header get a 400 so they retry as a partial request.
func (c *StaticController) ServeVideoStream(ctx echo.Context) error {
	rangeHeader := ctx.Request().Header.Get("Range")
	if rangeHeader == "" {
		return apperror.NewStatus(http.StatusBadRequest, "Requires Range header")
	}

	path, err := c.mediaService.VideoPath(ctx.Param("name"))
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return apperror.NotFound("Video not found")
	}
	size := info.Size()

	start, err := strconv.ParseInt(nonDigits.ReplaceAllString(rangeHeader, ""), 10, 64)
	if err != nil || start >= size {
		return apperror.NewStatus(http.StatusRequestedRangeNotSatisfiable, "Range is not satisfiable")
	}

	end := start + videoChunkSize
	if end > size-1 {
		end = size - 1
	}
	contentLength := end - start + 1

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.Seek(start, io.SeekStart); err != nil {
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "video/mp4"
	}

	h := ctx.Response().Header()
	h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size-1))
	h.Set("Accept-Ranges", "bytes")
	h.Set("Content-Length", strconv.FormatInt(contentLength, 10))
	h.Set(echo.HeaderContentType, contentType)
	ctx.Response().WriteHeader(http.StatusPartialContent)

	_, err = io.CopyN(ctx.Response(), file, contentLength)
	return err
}
