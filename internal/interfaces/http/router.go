package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Middleware struct {
	Auth          echo.MiddlewareFunc
	XRay          echo.MiddlewareFunc
	RequestLogger echo.MiddlewareFunc
}

func NewRouter(jobs *JobsHandler, users *UsersHandler, auth *AuthHandler, testimonials *TestimonialsHandler, contacts *ContactFormsHandler, m Middleware) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if m.XRay != nil {
		e.Use(m.XRay)
	}
	if m.RequestLogger != nil {
		e.Use(m.RequestLogger)
	}
	requireAuth := m.Auth
	if requireAuth == nil {
		requireAuth = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	api := e.Group("/api")

	api.POST("/auth/signin", auth.SignIn)

	api.POST("/users", users.Signup)
	api.GET("/users", users.List)
	api.GET("/users/:id", users.Get, requireAuth)
	api.PUT("/users/:id", users.Update, requireAuth)
	api.DELETE("/users/:id", users.Delete, requireAuth)

	jobsGroup := api.Group("/jobs", requireAuth)
	jobsGroup.POST("", jobs.Create)
	jobsGroup.GET("", jobs.List)
	jobsGroup.GET("/:id", jobs.Get)
	jobsGroup.PUT("/:id", jobs.Update)
	jobsGroup.DELETE("/:id", jobs.Delete)

	api.GET("/testimonials", testimonials.List)
	api.POST("/testimonials", testimonials.Create, requireAuth)

	api.POST("/contact-forms", contacts.Create)

	return e
}
