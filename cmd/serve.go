package cmd

import (
	"database/sql"
	"errors"
	"net"
	"net/http"

	"github.com/chirper-app/chirper/app/apperror"
	"github.com/chirper-app/chirper/app/controller"
	dto "github.com/chirper-app/chirper/app/dto/http"
	"github.com/chirper-app/chirper/app/middleware"
	"github.com/chirper-app/chirper/app/repository"
	"github.com/chirper-app/chirper/app/service"
	"github.com/chirper-app/chirper/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP (Echo) server for the social backend.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	followerRepo := repository.NewFollowerRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	hashtagRepo := repository.NewHashtagRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	tokenService := service.NewTokenService(cfg)
	mailer := service.NewSMTPMailer(cfg)
	googleOAuth := service.NewGoogleOAuth(cfg)
	accountService := service.NewAccountService(cfg, userRepo, refreshTokenRepo, followerRepo, tokenService, mailer, googleOAuth)
	tweetService := service.NewTweetService(tweetRepo, hashtagRepo, userRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, likeRepo, tweetRepo)
	mediaService, err := service.NewMediaService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to prepare upload directories")
	}

	startHTTPServer(cfg, accountService, tweetService, bookmarkService, mediaService, tokenService)
}

func startHTTPServer(
	cfg *config.Config,
	accountService *service.AccountService,
	tweetService *service.TweetService,
	bookmarkService *service.BookmarkService,
	mediaService *service.MediaService,
	tokenService *service.TokenService,
) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	accountController := controller.NewAccountController(accountService, cfg.PasswordPolicy)
	tweetController := controller.NewTweetController(tweetService)
	bookmarkController := controller.NewBookmarkController(bookmarkService)
	mediaController := controller.NewMediaController(mediaService)
	staticController := controller.NewStaticController(mediaService)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	users := e.Group("/users")
	users.POST("/register", accountController.Register)
	users.POST("/login", accountController.Login)
	users.GET("/oauth/google", accountController.OAuthGoogle)
	users.POST("/refresh-token", accountController.RefreshToken)
	users.POST("/forgot-password", accountController.ForgotPassword)
	users.POST("/verify-forgot-password", accountController.VerifyForgotPassword)
	users.POST("/reset-password", accountController.ResetPassword)
	users.GET("/:username", accountController.GetProfile)

	usersAuth := users.Group("")
	usersAuth.Use(authMiddleware.RequireAccessToken)
	usersAuth.POST("/logout", accountController.Logout)
	usersAuth.POST("/verify-email", accountController.VerifyEmail)
	usersAuth.POST("/resend-verify-email", accountController.ResendVerifyEmail)
	usersAuth.GET("/me", accountController.GetMe)

	usersVerified := users.Group("")
	usersVerified.Use(authMiddleware.RequireAccessToken, authMiddleware.RequireVerifiedUser)
	usersVerified.PATCH("/me", accountController.UpdateMe)
	usersVerified.PUT("/change-password", accountController.ChangePassword)
	usersVerified.POST("/follow", accountController.Follow)
	usersVerified.DELETE("/follow/:user_id", accountController.Unfollow)

	tweets := e.Group("/tweets")
	tweets.POST("", tweetController.Create, authMiddleware.RequireAccessToken, authMiddleware.RequireVerifiedUser)
	tweets.GET("/:tweet_id", tweetController.Get, authMiddleware.OptionalAccessToken)

	bookmarks := e.Group("/bookmarks")
	bookmarks.Use(authMiddleware.RequireAccessToken, authMiddleware.RequireVerifiedUser)
	bookmarks.POST("", bookmarkController.Bookmark)
	bookmarks.DELETE("/:tweet_id", bookmarkController.Unbookmark)

	likes := e.Group("/likes")
	likes.Use(authMiddleware.RequireAccessToken, authMiddleware.RequireVerifiedUser)
	likes.POST("", bookmarkController.Like)
	likes.DELETE("/:tweet_id", bookmarkController.Unlike)

	medias := e.Group("/medias")
	medias.POST("/upload-image", mediaController.UploadImage)
	medias.POST("/upload-video", mediaController.UploadVideo)

	static := e.Group("/static")
	static.GET("/image/:name", staticController.ServeImage)
	static.GET("/videos-stream/:name", staticController.ServeVideoStream)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}

// httpErrorHandler maps the error taxonomy onto responses: validation
// failures carry field details at 422, status errors keep their message, and
// anything else becomes a bare 500 with the detail logged server-side only.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		validationErr *apperror.ValidationError
		statusErr     *apperror.StatusError
		echoErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		_ = c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Message: validationErr.Message,
			Errors:  validationErr.Errors,
		})
	case errors.As(err, &statusErr):
		_ = c.JSON(statusErr.Status, dto.ErrorResponse{Message: statusErr.Message})
	case errors.As(err, &echoErr):
		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		_ = c.JSON(echoErr.Code, dto.ErrorResponse{Message: message})
	default:
		logrus.WithError(err).WithField("uri", c.Request().RequestURI).Error("Unhandled error")
		_ = c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}
