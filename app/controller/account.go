package controller

import (
	"net/http"

	"github.com/chirper-app/chirper/app/apperror"
	dto "github.com/chirper-app/chirper/app/dto/http"
	"github.com/chirper-app/chirper/app/middleware"
	"github.com/chirper-app/chirper/app/service"
	"github.com/chirper-app/chirper/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AccountController struct {
	accountService *service.AccountService
	passwordPolicy config.PasswordPolicy
}

func NewAccountController(accountService *service.AccountService, passwordPolicy config.PasswordPolicy) *AccountController {
	return &AccountController{
		accountService: accountService,
		passwordPolicy: passwordPolicy,
	}
}

func (c *AccountController) Register(ctx echo.Context) error {
	var req dto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(c.passwordPolicy); err != nil {
		logrus.WithField("email", req.Email).Debug("Register validation failed")
		return err
	}

	logrus.WithField("email", req.Email).Info("Register request received")
	pair, err := c.accountService.Register(ctx.Request().Context(), &req)
	if err != nil {
		logrus.WithError(err).WithField("email", req.Email).Warn("Register failed")
		return err
	}

	logrus.WithField("email", req.Email).Info("User registered")
	return ctx.JSON(http.StatusOK, dto.TokenPairResponse{
		Message:      service.MsgRegisterSuccess,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (c *AccountController) Login(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Login validation failed")
		return err
	}

	pair, err := c.accountService.Login(ctx.Request().Context(), &req)
	if err != nil {
		logrus.WithField("email", req.Email).Warn("Login failed")
		return err
	}

	logrus.WithField("email", req.Email).Info("Login successful")
	return ctx.JSON(http.StatusOK, dto.TokenPairResponse{
		Message:      service.MsgLoginSuccess,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (c *AccountController) OAuthGoogle(ctx echo.Context) error {
	code := ctx.QueryParam("code")
	if code == "" {
		return apperror.NewStatus(http.StatusBadRequest, "Code is required")
	}

	pair, newUser, err := c.accountService.OAuthGoogle(ctx.Request().Context(), code)
	if err != nil {
		logrus.WithError(err).Warn("Google OAuth failed")
		return err
	}

	logrus.WithField("new_user", newUser).Info("Google OAuth successful")
	return ctx.JSON(http.StatusOK, dto.OAuthResponse{
		Message:      service.MsgOAuthSuccess,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		NewUser:      newUser,
	})
}

func (c *AccountController) Logout(ctx echo.Context) error {
	var req dto.LogoutRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := c.accountService.Logout(ctx.Request().Context(), req.RefreshToken); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgLogoutSuccess})
}

func (c *AccountController) RefreshToken(ctx echo.Context) error {
	var req dto.RefreshTokenRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	pair, err := c.accountService.RefreshToken(ctx.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.TokenPairResponse{
		Message:      service.MsgRefreshTokenSuccess,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (c *AccountController) VerifyEmail(ctx echo.Context) error {
	var req dto.VerifyEmailRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	pair, err := c.accountService.VerifyEmail(ctx.Request().Context(), req.EmailVerifyToken)
	if err != nil {
		return err
	}
	if pair == nil {
		return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgEmailAlreadyVerified})
	}

	return ctx.JSON(http.StatusOK, dto.TokenPairResponse{
		Message:      service.MsgEmailVerifySuccess,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (c *AccountController) ResendVerifyEmail(ctx echo.Context) error {
	p := middleware.PrincipalFrom(ctx)

	message, err := c.accountService.ResendVerifyEmail(ctx.Request().Context(), p.UserID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

func (c *AccountController) ForgotPassword(ctx echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	logrus.WithField("email", req.Email).Info("Forgot password request received")
	if err := c.accountService.ForgotPassword(ctx.Request().Context(), req.Email); err != nil {
		logrus.WithField("email", req.Email).Warn("Forgot password failed")
		return err
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgCheckEmailToResetPassword})
}

func (c *AccountController) VerifyForgotPassword(ctx echo.Context) error {
	var req dto.VerifyForgotPasswordRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := c.accountService.VerifyForgotPassword(ctx.Request().Context(), req.ForgotPasswordToken); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgVerifyForgotPasswordSuccess})
}

func (c *AccountController) ResetPassword(ctx echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(c.passwordPolicy); err != nil {
		return err
	}

	if err := c.accountService.ResetPassword(ctx.Request().Context(), &req); err != nil {
		logrus.WithError(err).Warn("Reset password failed")
		return err
	}

	logrus.Info("Password reset successful")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgResetPasswordSuccess})
}

func (c *AccountController) ChangePassword(ctx echo.Context) error {
	var req dto.ChangePasswordRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(c.passwordPolicy); err != nil {
		return err
	}

	p := middleware.PrincipalFrom(ctx)
	if err := c.accountService.ChangePassword(ctx.Request().Context(), p.UserID, &req); err != nil {
		logrus.WithField("user_id", p.UserID).Warn("Change password failed")
		return err
	}

	logrus.WithField("user_id", p.UserID).Info("Password changed")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.MsgChangePasswordSuccess})
}

func (c *AccountController) GetMe(ctx echo.Context) error {
	p := middleware.PrincipalFrom(ctx)

	user, err := c.accountService.GetMe(ctx.Request().Context(), p.UserID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.UserProfileResponse{
		Message: service.MsgGetMeSuccess,
		Result:  dto.NewUserProfile(user),
	})
}

func (c *AccountController) UpdateMe(ctx echo.Context) error {
	var req dto.UpdateMeRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	p := middleware.PrincipalFrom(ctx)
	user, err := c.accountService.UpdateMe(ctx.Request().Context(), p.UserID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.UserProfileResponse{
		Message: service.MsgUpdateMeSuccess,
		Result:  dto.NewUserProfile(user),
	})
}

func (c *AccountController) GetProfile(ctx echo.Context) error {
	username := ctx.Param("username")

	user, err := c.accountService.GetProfile(ctx.Request().Context(), username)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.UserProfileResponse{
		Message: service.MsgGetProfileSuccess,
		Result:  dto.NewUserProfile(user),
	})
}

func (c *AccountController) Follow(ctx echo.Context) error {
	var req dto.FollowRequest
	if err := ctx.Bind(&req); err != nil {
		return apperror.NewStatus(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	p := middleware.PrincipalFrom(ctx)
	message, err := c.accountService.Follow(ctx.Request().Context(), p.UserID, req.FollowedUserID)
	if err != nil {
		logrus.WithField("user_id", p.UserID).Warn("Follow failed")
		return err
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

func (c *AccountController) Unfollow(ctx echo.Context) error {
	followedUserID := ctx.Param("user_id")
	if err := (&dto.FollowRequest{FollowedUserID: followedUserID}).Validate(); err != nil {
		return err
	}

	p := middleware.PrincipalFrom(ctx)
	message, err := c.accountService.Unfollow(ctx.Request().Context(), p.UserID, followedUserID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}
