package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/warden/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

// APIError is rendered as {"error": Message} with status Code.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func BadRequest(msg string) *APIError { return &APIError{Code: http.StatusBadRequest, Message: msg} }
func NotFound(msg string) *APIError   { return &APIError{Code: http.StatusNotFound, Message: msg} }
func Forbidden() *APIError            { return &APIError{Code: http.StatusForbidden, Message: "forbidden"} }
func Internal(msg string) *APIError {
	return &APIError{Code: http.StatusInternalServerError, Message: msg}
}

type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// Created wraps a result to be rendered with 201 instead of 200.
type Created struct {
	Body any
}

func render(ctx *gin.Context, result any, apiErr *APIError) {
	if apiErr != nil {
		ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}
	if c, ok := result.(Created); ok {
		ctx.JSON(http.StatusCreated, c.Body)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		result, apiErr := h(ctx, user)
		render(ctx, result, apiErr)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		render(ctx, result, apiErr)
	}
}

// Controller is the route group a Module mounts its endpoints on.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, h HandlerFuncWithAuth, mw ...gin.HandlerFunc) {
	c.handle(http.MethodGet, path, h, mw)
}

func (c *Controller) POST(path string, h HandlerFuncWithAuth, mw ...gin.HandlerFunc) {
	c.handle(http.MethodPost, path, h, mw)
}

func (c *Controller) PUT(path string, h HandlerFuncWithAuth, mw ...gin.HandlerFunc) {
	c.handle(http.MethodPut, path, h, mw)
}

func (c *Controller) PATCH(path string, h HandlerFuncWithAuth, mw ...gin.HandlerFunc) {
	c.handle(http.MethodPatch, path, h, mw)
}

func (c *Controller) DELETE(path string, h HandlerFuncWithAuth, mw ...gin.HandlerFunc) {
	c.handle(http.MethodDelete, path, h, mw)
}

func (c *Controller) PUBLIC_GET(path string, h HandlerFunc) {
	c.Group.GET(path, ResolveEndpoint(h))
}

func (c *Controller) PUBLIC_POST(path string, h HandlerFunc) {
	c.Group.POST(path, ResolveEndpoint(h))
}

func (c *Controller) handle(method, path string, h HandlerFuncWithAuth, mw []gin.HandlerFunc) {
	chain := append(append([]gin.HandlerFunc{}, mw...), ResolveEndpointWithAuth(h))
	c.Group.Handle(method, path, chain...)
}
