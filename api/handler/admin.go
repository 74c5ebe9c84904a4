package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/judgmentfleet/site/api/transport"
	"github.com/judgmentfleet/site/pkg/httpcontext"
	authUC "github.com/judgmentfleet/site/usecase/auth"
)

// AdminHandler manages who may edit the site.
type AdminHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAdminHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List admins, oldest first
// @Tags admin
// @Router /api/v1/admin/admins [get]
func (h *AdminHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	admins, err := h.uc.ListAdmins(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, admins)
}

// @Summary Grant admin rights
// @Tags admin
// @Router /api/v1/admin/admins [post]
func (h *AdminHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.AdminRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	admin, err := h.uc.AddAdmin(stdCtx, req.ID, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.logger.Info("admin added",
		zap.String("admin_id", admin.ID),
		zap.String("by", httpcontext.AdminID(stdCtx)))
	h.respondSuccess(ctx, http.StatusCreated, admin)
}

// @Summary Enable or disable an admin
// @Tags admin
// @Router /api/v1/admin/admins/{id}/active [patch]
func (h *AdminHandler) SetActive(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.AdminActiveRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	admin, err := h.uc.SetAdminActive(stdCtx, httpcontext.AdminID(stdCtx), id, req.Active)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, admin)
}

// @Summary Change an admin password
// @Tags admin
// @Router /api/v1/admin/admins/{id}/password [put]
func (h *AdminHandler) SetPassword(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.PasswordRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetPassword(stdCtx, httpcontext.AdminID(stdCtx), id, req.Current, req.New); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Revoke admin rights
// @Tags admin
// @Router /api/v1/admin/admins/{id} [delete]
func (h *AdminHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteAdmin(stdCtx, httpcontext.AdminID(stdCtx), id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
