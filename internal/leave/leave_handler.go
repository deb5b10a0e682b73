package leave

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
	}
	return p, ok
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("leave request validation failed", zap.String("path", c.FullPath()), zap.Error(err))
	details := apperror.ToHTTP(apperror.MapValidationError(err)).Message
	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", details)
}

func (h *Handler) Validate(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	var req ValidateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Validate(c.Request.Context(), p, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	h.logger.Debug("http create leave", zap.String("user_id", p.UserID))

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Act(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	var req LeaveActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	h.act(c, p, req)
}

func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, DecisionApprove)
}

func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, DecisionReject)
}

// decide backs the /:id/approve and /:id/reject shortcuts. The acting role
// defaults to the caller's own role when the body is empty.
func (h *Handler) decide(c *gin.Context, decision Decision) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	actingRole := p.Role.String()
	if c.Request.ContentLength > 0 {
		var body DecisionRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			h.writeBindError(c, err)
			return
		}
		actingRole = body.ActingRole
	}

	h.act(c, p, LeaveActionRequest{
		LeaveRequestID: c.Param("id"),
		ActingRole:     actingRole,
		Decision:       string(decision),
	})
}

func (h *Handler) act(c *gin.Context, p domain.Principal, req LeaveActionRequest) {
	resp, err := h.service.Act(c.Request.Context(), p, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), p, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id"), "cancelled": true}, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMine(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	resp, err := h.service.GetMine(c.Request.Context(), p)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPending(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	resp, err := h.service.GetPending(c.Request.Context(), p)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	start, end, pageSize := response.PageWindow(len(resp), page, pageSize)
	total := int64(len(resp))

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetStats(c *gin.Context) {
	resp, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
