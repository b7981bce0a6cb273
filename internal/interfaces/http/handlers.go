package http

import (
	"errors"
	stdhttp "net/http"
	"time"

	"github.com/labstack/echo/v4"
	"jobtracker/internal/application"
	"jobtracker/internal/domain"
	infraauth "jobtracker/internal/infrastructure/auth"
	"jobtracker/internal/ports"
)

func identityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(infraauth.IdentityKey).(domain.Identity)
	if !ok || identity.ID == "" {
		return domain.Identity{}, false
	}
	return identity, true
}

// handleError maps the domain error taxonomy onto HTTP statuses. Unknown
// errors are logged with full detail and surfaced with a generic body.
func handleError(c echo.Context, logger ports.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": "authentication required"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(stdhttp.StatusForbidden, map[string]string{"error": "permission denied"})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(stdhttp.StatusNotFound, map[string]string{"error": "not found"})
	default:
		logger.Error(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
		return c.JSON(stdhttp.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

type JobsHandler struct {
	service *application.JobService
	logger  ports.Logger
}

func NewJobsHandler(service *application.JobService, logger ports.Logger) *JobsHandler {
	return &JobsHandler{service: service, logger: logger}
}

func (h *JobsHandler) Create(c echo.Context) error {
	caller, ok := identityFrom(c)
	if !ok {
		return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
	var req struct {
		Company     string     `json:"company"`
		Role        string     `json:"role"`
		Status      string     `json:"status"`
		AppliedDate *time.Time `json:"appliedDate"`
		Link        string     `json:"link"`
		Notes       string     `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	job, err := h.service.Create(c.Request().Context(), caller, application.JobInput{
		Company:     req.Company,
		Role:        req.Role,
		Status:      req.Status,
		AppliedDate: req.AppliedDate,
		Link:        req.Link,
		Notes:       req.Notes,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusCreated, job)
}

func (h *JobsHandler) List(c echo.Context) error {
	caller, ok := identityFrom(c)
	if !ok {
		return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
	jobs, err := h.service.ListByOwner(c.Request().Context(), caller)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusOK, jobs)
}

func (h *JobsHandler) Get(c echo.Context) error {
	caller, ok := identityFrom(c)
	if !ok {
		return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
	job, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusOK, job)
}

func (h *JobsHandler) Update(c echo.Context) error {
	caller, ok := identityFrom(c)
	if !ok {
		return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
	var req struct {
		Company     *string    `json:"company"`
		Role        *string    `json:"role"`
		Status      *string    `json:"status"`
		AppliedDate *time.Time `json:"appliedDate"`
		Link        *string    `json:"link"`
		Notes       *string    `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	job, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), application.JobPatch{
		Company:     req.Company,
		Role:        req.Role,
		Status:      req.Status,
		AppliedDate: req.AppliedDate,
		Link:        req.Link,
		Notes:       req.Notes,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusOK, job)
}

func (h *JobsHandler) Delete(c echo.Context) error {
	caller, ok := identityFrom(c)
	if !ok {
		return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusOK, map[string]string{"message": "job application removed"})
}

type UsersHandler struct {
	service *application.UserService
	logger  ports.Logger
}

func NewUsersHandler(service *application.UserService, logger ports.Logger) *UsersHandler {
	return &UsersHandler{service: service, logger: logger}
}

func (h *UsersHandler) Signup(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	user, err := h.service.Signup(c.Request().Context(), application.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusCreated, user)
}

func (h *UsersHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusOK, users)
}

func (h *UsersHandler) Get(c echo.Context) error {
	if _, ok := identityFrom(c); !ok {
		return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusOK, user)
}

func (h *UsersHandler) Update(c echo.Context) error {
	caller, ok := identityFrom(c)
	if !ok {
		return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	user, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), application.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusOK, user)
}

func (h *UsersHandler) Delete(c echo.Context) error {
	caller, ok := identityFrom(c)
	if !ok {
		return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusOK, map[string]string{"message": "user removed"})
}

type AuthHandler struct {
	service *application.AuthService
	logger  ports.Logger
}

func NewAuthHandler(service *application.AuthService, logger ports.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	token, user, err := h.service.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		}
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusOK, map[string]any{"token": token, "user": user})
}

type TestimonialsHandler struct {
	service *application.TestimonialService
	logger  ports.Logger
}

func NewTestimonialsHandler(service *application.TestimonialService, logger ports.Logger) *TestimonialsHandler {
	return &TestimonialsHandler{service: service, logger: logger}
}

func (h *TestimonialsHandler) List(c echo.Context) error {
	testimonials, err := h.service.List(c.Request().Context())
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusOK, testimonials)
}

func (h *TestimonialsHandler) Create(c echo.Context) error {
	caller, ok := identityFrom(c)
	if !ok {
		return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
	var req struct {
		Author string `json:"author"`
		Quote  string `json:"quote"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	testimonial, err := h.service.Create(c.Request().Context(), caller, req.Author, req.Quote)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusCreated, testimonial)
}

type ContactFormsHandler struct {
	service *application.ContactService
	logger  ports.Logger
}

func NewContactFormsHandler(service *application.ContactService, logger ports.Logger) *ContactFormsHandler {
	return &ContactFormsHandler{service: service, logger: logger}
}

func (h *ContactFormsHandler) Create(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	message, err := h.service.Create(c.Request().Context(), req.Name, req.Email, req.Message)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(stdhttp.StatusCreated, message)
}
