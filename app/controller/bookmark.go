package controller

import (
	"net/http"

	"github.com/chirper-app/chirper/app/apperror"
	dto "github.com/chirper-app/chirper/app/dto/http"
	"github.com/chirper-app/chirper/app/middleware"
	"github.com/chirper-app/chirper/app/service"

	"github.com/labstack/echo/v4"
)

type BookmarkController struct {
	bookmarkService *service.BookmarkService
}

func NewBookmarkController(bookmarkService *service.BookmarkService) *BookmarkController {
	return &BookmarkController{bookmarkService: bookmarkService}
}

func (c *BookmarkController) Bookmark(ctx echo.Context) error {
	var req dto.BookmarkRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	p := middleware.PrincipalFrom(ctx)
	if err := c.bookmarkService.Bookmark(ctx.Request().Context(), p.UserID, req.TweetID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgBookmarkSuccess})
}

func (c *BookmarkController) Unbookmark(ctx echo.Context) error {
	tweetID := ctx.Param("tweet_id")
	if err := (&dto.BookmarkRequest{TweetID: tweetID}).Validate(); err != nil {
		return err
	}

	p := middleware.PrincipalFrom(ctx)
	if err := c.bookmarkService.Unbookmark(ctx.Request().Context(), p.UserID, tweetID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgUnbookmarkSuccess})
}

func (c *BookmarkController) Like(ctx echo.Context) error {
	var req dto.LikeRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	p := middleware.PrincipalFrom(ctx)
	if err := c.bookmarkService.Like(ctx.Request().Context(), p.UserID, req.TweetID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgLikeSuccess})
}

func (c *BookmarkController) Unlike(ctx echo.Context) error {
	tweetID := ctx.Param("tweet_id")
	if err := (&dto.LikeRequest{TweetID: tweetID}).Validate(); err != nil {
		return err
	}

	p := middleware.PrincipalFrom(ctx)
	if err := c.bookmarkService.Unlike(ctx.Request().Context(), p.UserID, tweetID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgUnlikeSuccess})
}
