package controller

import (
	"net/http"

	"github.com/chirper-app/chirper/app/apperror"
	dto "github.com/chirper-app/chirper/app/dto/http"
	"github.com/chirper-app/chirper/app/middleware"
	"github.com/chirper-app/chirper/app/service"

	"github.com/labstack/echo/v4"
)

type TweetController struct {
	tweetService *service.TweetService
}

func NewTweetController(tweetService *service.TweetService) *TweetController {
	return &TweetController{tweetService: tweetService}
}

func (c *TweetController) Create(ctx echo.Context) error {
	var req dto.CreateTweetRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	p := middleware.PrincipalFrom(ctx)
	detail, err := c.tweetService.Create(ctx.Request().Context(), p.UserID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.TweetResponse{
		Message: service.MsgCreateTweetSuccess,
		Result:  dto.NewTweetDetail(detail),
	})
}

func (c *TweetController) Get(ctx echo.Context) error {
	tweetID := ctx.Param("tweet_id")
	if err := (&dto.BookmarkRequest{TweetID: tweetID}).Validate(); err != nil {
		return err
	}

	var viewer *service.TokenClaims
	if p := middleware.PrincipalFrom(ctx); p != nil {
		viewer = &service.TokenClaims{UserID: p.UserID, Verify: p.Verify}
	}

	detail, err := c.tweetService.Get(ctx.Request().Context(), tweetID, viewer)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.TweetResponse{
		Message: service.MsgGetTweetSuccess,
		Result:  dto.NewTweetDetail(detail),
	})
}
