package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todo-server/internal/domain"
	"todo-server/internal/metrics"
	"todo-server/internal/repository"
	"todo-server/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	todos    service.TodoService
	auth     service.AuthService
	metrics  *metrics.Collector
	logger   *logrus.Logger
	origins  []string
	tokenTTL time.Duration
}

func NewHandler(todos service.TodoService, auth service.AuthService, collector *metrics.Collector, logger *logrus.Logger, allowedOrigins []string, tokenTTL time.Duration) *Handler {
	return &Handler{
		todos:    todos,
		auth:     auth,
		metrics:  collector,
		logger:   logger,
		origins:  allowedOrigins,
		tokenTTL: tokenTTL,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(h.origins))
	router.Use(accessLog(h.logger))
	if h.metrics != nil {
		router.Use(recordMetrics(h.metrics))
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}
	router.Use(sessionResolver(h.auth, h.logger))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello from Todo API!"})
	})
	router.GET("/me", requireAuth(), h.me)

	auth := router.Group("/api/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
		auth.POST("/sign-out", requireAuth(), h.signOut)
	}

	todos := router.Group("/api/todos")
	todos.Use(requireAuth())
	{
		todos.GET("", h.listTodos)
		todos.POST("", h.createTodo)
		todos.GET("/:id", h.getTodo)
		todos.PATCH("/:id", h.updateTodo)
		todos.DELETE("/:id", h.deleteTodo)
	}
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createTodoRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
}

type updateTodoRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": userToResponse(currentUser(c))})
}

func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.auth.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"user": userToResponse(user), "token": token})
}

func (h *Handler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user), "token": token})
}

func (h *Handler) signOut(c *gin.Context) {
	session := currentSession(c)
	if err := h.auth.SignOut(c.Request.Context(), session.ID); err != nil {
		h.renderError(c, err)
		return
	}

	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) listTodos(c *gin.Context) {
	user := currentUser(c)

	todos, err := h.todos.List(c.Request.Context(), user.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]TodoResponse, len(todos))
	for i := range todos {
		resp[i] = todoToResponse(todos[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createTodo(c *gin.Context) {
	user := currentUser(c)

	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), user.ID, req.Title, req.Description)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, todoToResponse(*todo))
}

func (h *Handler) getTodo(c *gin.Context) {
	user := currentUser(c)

	todo, err := h.todos.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) updateTodo(c *gin.Context) {
	user := currentUser(c)

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todos.Update(c.Request.Context(), user.ID, c.Param("id"), domain.TodoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) deleteTodo(c *gin.Context) {
	user := currentUser(c)

	if err := h.todos.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// renderError maps service and repository errors onto the API's error
// contract. Ownership misses surface as the same 404 as true absence.
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		h.logger.Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	// secure flag is left to the reverse proxy; the API itself serves http
	c.SetCookie(sessionCookieName, token, int(h.tokenTTL.Seconds()), "/", "", false, true)
}

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type TodoResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	UserID      string  `json:"userId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func userToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func todoToResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		UserID:      todo.UserID,
		CreatedAt:   todo.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   todo.UpdatedAt.Format(time.RFC3339),
	}
}
