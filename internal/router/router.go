package router

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"smapp/internal/config"
	apperrors "smapp/internal/errors"
	"smapp/internal/handler"
	"smapp/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	requireAuth echo.MiddlewareFunc,
	httpMetrics *metrics.HTTP,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	postHandler *handler.PostHandler,
) {
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	if httpMetrics != nil {
		e.Use(httpMetrics.Middleware())
	}
	e.Use(requestLogger())
	e.Use(middleware.Recover())

	if cfg.StaticDir != "" {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  cfg.StaticDir,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Request().URL.Path, "/api/")
			},
		}))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if httpMetrics != nil {
		e.GET("/metrics", httpMetrics.Handler())
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	users := api.Group("/users")
	users.GET("", userHandler.Test)
	users.POST("", userHandler.Register)

	authGroup := api.Group("/auth")
	authGroup.GET("", authHandler.Get, requireAuth)
	authGroup.POST("", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, requireAuth)

	profile := api.Group("/profile")
	profile.GET("", profileHandler.List)
	profile.POST("", profileHandler.Upsert, requireAuth)
	profile.DELETE("", profileHandler.DeleteAccount, requireAuth)
	profile.GET("/me", profileHandler.Me, requireAuth)
	profile.GET("/users/:user_id", profileHandler.ByUserID)
	profile.GET("/github/:username", profileHandler.GitHubRepos)
	profile.GET("/:username", profileHandler.ByUsername)
	profile.PUT("/experience", profileHandler.AddExperience, requireAuth)
	profile.PUT("/experience/:exp_id", profileHandler.UpdateExperience, requireAuth)
	profile.DELETE("/experience/:exp_id", profileHandler.DeleteExperience, requireAuth)
	profile.PUT("/education", profileHandler.AddEducation, requireAuth)
	profile.PUT("/education/:edu_id", profileHandler.UpdateEducation, requireAuth)
	profile.DELETE("/education/:edu_id", profileHandler.DeleteEducation, requireAuth)

	posts := api.Group("/posts", requireAuth)
	posts.POST("", postHandler.Create)
	posts.GET("", postHandler.List)
	posts.GET("/:post_id", postHandler.Get)
	posts.DELETE("/:post_id", postHandler.Delete)
	posts.PUT("/like/:post_id", postHandler.Like)
	posts.PUT("/unlike/:post_id", postHandler.Unlike)
	posts.POST("/comment/:post_id", postHandler.Comment)
	posts.DELETE("/comment/:post_id/:comment_id", postHandler.DeleteComment)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			slog.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

// ErrorHandler writes every error as JSON: validation failures as an error
// list, everything else as {"msg": ...}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var status int
	var body interface{}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		body = apperrors.MessageResponse{Msg: msg}
	} else {
		mapped := apperrors.MapErrorToHTTP(err)
		status, body = mapped.StatusCode, mapped.Body
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		slog.Error("write error response", "error", err)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds a validator that reports fields by their JSON name.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface. Failed fields are reported with
// the message from their `msg` tag.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	typ := reflect.Indirect(reflect.ValueOf(i)).Type()
	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Error()
		if sf, ok := typ.FieldByName(fe.StructField()); ok {
			if tagged := sf.Tag.Get("msg"); tagged != "" {
				msg = tagged
			}
		}
		field := apperrors.FieldError{Msg: msg, Param: fe.Field(), Location: "body"}
		if fe.Field() != "password" {
			field.Value = fe.Value()
		}
		fields = append(fields, field)
	}
	return &apperrors.ValidationError{Fields: fields}
}
