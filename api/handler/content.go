package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/judgmentfleet/site/pkg/httpcontext"
	contentUC "github.com/judgmentfleet/site/usecase/content"
)

// ContentHandler serves the public, localized site content.
type ContentHandler struct {
	baseHandler
	uc *contentUC.UseCase
}

func NewContentHandler(uc *contentUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Team roster
// @Tags content
// @Router /api/v1/members [get]
func (h *ContentHandler) Members(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	members, err := h.uc.PublicMembers(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, members)
}

// @Summary Highlighted games
// @Tags content
// @Router /api/v1/games [get]
func (h *ContentHandler) Games(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	locale := httpcontext.Locale(stdCtx)
	games, err := h.uc.PublicGames(stdCtx, locale)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondLocalized(ctx, locale, games)
}

// @Summary Active FAQs
// @Tags content
// @Router /api/v1/faqs [get]
func (h *ContentHandler) FAQs(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	locale := httpcontext.Locale(stdCtx)
	faqs, err := h.uc.PublicFAQs(stdCtx, locale)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondLocalized(ctx, locale, faqs)
}

// @Summary Footer links grouped by category
// @Tags content
// @Router /api/v1/footer-resources [get]
func (h *ContentHandler) FooterResources(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	locale := httpcontext.Locale(stdCtx)
	resources, err := h.uc.PublicResources(stdCtx, locale)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondLocalized(ctx, locale, resources)
}
