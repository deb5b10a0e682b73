package rbac

import (
	"net/http"

	"go-leavedesk/internal/domain"
	"go-leavedesk/internal/middleware"
	"go-leavedesk/internal/shared/apperror"
	"go-leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

type PermissionsResponse struct {
	UserID      string       `json:"userId"`
	Role        string       `json:"role"`
	Permissions []Permission `json:"permissions"`
}

// Me returns what the caller's role may do.
func (h *Handler) Me(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
		return
	}

	perms, err := h.service.Permissions(p.Role)
	if err != nil {
		h.logger.Error("list permissions failed", zap.String("role", p.Role.String()), zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, PermissionsResponse{
		UserID:      p.UserID,
		Role:        p.Role.String(),
		Permissions: perms,
	}, nil)
}

// Enforce checks a resource/action pair for the caller's own role.
func (h *Handler) Enforce(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
		return
	}

	var req struct {
		Resource string `json:"resource" binding:"required"`
		Action   string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		details := apperror.ToHTTP(apperror.MapValidationError(err)).Message
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", details)
		return
	}

	allowed, err := h.service.Enforce(domain.EnforceRequest{
		Role:     p.Role.String(),
		Resource: req.Resource,
		Action:   req.Action,
	})
	if err != nil {
		h.logger.Error("enforce failed", zap.String("role", p.Role.String()), zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed}, nil)
}
