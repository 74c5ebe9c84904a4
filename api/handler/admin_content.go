package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/judgmentfleet/site/api/transport"
	"github.com/judgmentfleet/site/pkg/httpcontext"
	contentUC "github.com/judgmentfleet/site/usecase/content"
)

// AdminContentHandler exposes the back-office CRUD for site content.
type AdminContentHandler struct {
	baseHandler
	uc *contentUC.UseCase
}

func NewAdminContentHandler(uc *contentUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AdminContentHandler {
	return &AdminContentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

func memberInput(req transport.MemberRequest) contentUC.MemberInput {
	return contentUC.MemberInput{
		Name:             req.Name,
		Image:            req.Image,
		Role:             req.Role,
		JoinDate:         req.JoinDate,
		Achievements:     req.Achievements,
		AchievementsText: req.AchievementsText,
	}
}

func gameInput(req transport.GameRequest) contentUC.GameInput {
	return contentUC.GameInput{
		Format:        req.Format,
		Phase:         req.Phase,
		Tournament:    req.Tournament,
		ImageURL:      req.ImageURL,
		ReplayURL:     req.ReplayURL,
		Players:       req.Players,
		DescriptionIT: req.DescriptionIT,
		DescriptionEN: req.DescriptionEN,
	}
}

func faqInput(req transport.FAQRequest) contentUC.FAQInput {
	return contentUC.FAQInput{
		QuestionIT: req.QuestionIT,
		QuestionEN: req.QuestionEN,
		AnswerIT:   req.AnswerIT,
		AnswerEN:   req.AnswerEN,
	}
}

func resourceInput(req transport.FooterResourceRequest) contentUC.ResourceInput {
	return contentUC.ResourceInput{
		TitleIT:  req.TitleIT,
		TitleEN:  req.TitleEN,
		URL:      req.URL,
		Icon:     req.Icon,
		Category: req.Category,
	}
}

// @Summary Create member
// @Tags admin
// @Router /api/v1/admin/members [post]
func (h *AdminContentHandler) CreateMember(ctx *fasthttp.RequestCtx) {
	var req transport.MemberRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	member, err := h.uc.CreateMember(stdCtx, memberInput(req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, member)
}

// @Summary Update member
// @Tags admin
// @Router /api/v1/admin/members/{id} [put]
func (h *AdminContentHandler) UpdateMember(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.MemberRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	member, err := h.uc.UpdateMember(stdCtx, id, memberInput(req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, member)
}

// @Summary Delete member
// @Tags admin
// @Router /api/v1/admin/members/{id} [delete]
func (h *AdminContentHandler) DeleteMember(ctx *fasthttp.RequestCtx) {
	h.remove(ctx, h.uc.DeleteMember)
}

// @Summary Create game
// @Tags admin
// @Router /api/v1/admin/games [post]
func (h *AdminContentHandler) CreateGame(ctx *fasthttp.RequestCtx) {
	var req transport.GameRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	game, err := h.uc.CreateGame(stdCtx, gameInput(req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, game)
}

// @Summary Update game
// @Tags admin
// @Router /api/v1/admin/games/{id} [put]
func (h *AdminContentHandler) UpdateGame(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.GameRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	game, err := h.uc.UpdateGame(stdCtx, id, gameInput(req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, game)
}

// @Summary Delete game
// @Tags admin
// @Router /api/v1/admin/games/{id} [delete]
func (h *AdminContentHandler) DeleteGame(ctx *fasthttp.RequestCtx) {
	h.remove(ctx, h.uc.DeleteGame)
}

// @Summary All FAQs including hidden ones
// @Tags admin
// @Router /api/v1/admin/faqs [get]
func (h *AdminContentHandler) ListFAQs(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	faqs, err := h.uc.ListFAQs(stdCtx, false)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, faqs)
}

// @Summary Create FAQ
// @Tags admin
// @Router /api/v1/admin/faqs [post]
func (h *AdminContentHandler) CreateFAQ(ctx *fasthttp.RequestCtx) {
	var req transport.FAQRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	faq, err := h.uc.CreateFAQ(stdCtx, faqInput(req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, faq)
}

// @Summary Update FAQ
// @Tags admin
// @Router /api/v1/admin/faqs/{id} [put]
func (h *AdminContentHandler) UpdateFAQ(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.FAQRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	faq, err := h.uc.UpdateFAQ(stdCtx, id, faqInput(req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, faq)
}

// @Summary Show or hide FAQ
// @Tags admin
// @Router /api/v1/admin/faqs/{id}/active [patch]
func (h *AdminContentHandler) ToggleFAQ(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	faq, err := h.uc.ToggleFAQ(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, faq)
}

// @Summary Delete FAQ
// @Tags admin
// @Router /api/v1/admin/faqs/{id} [delete]
func (h *AdminContentHandler) DeleteFAQ(ctx *fasthttp.RequestCtx) {
	h.remove(ctx, h.uc.DeleteFAQ)
}

// @Summary All footer resources including hidden ones
// @Tags admin
// @Router /api/v1/admin/footer-resources [get]
func (h *AdminContentHandler) ListResources(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	resources, err := h.uc.ListResources(stdCtx, false)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, resources)
}

// @Summary Create footer resource
// @Tags admin
// @Router /api/v1/admin/footer-resources [post]
func (h *AdminContentHandler) CreateResource(ctx *fasthttp.RequestCtx) {
	var req transport.FooterResourceRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	resource, err := h.uc.CreateResource(stdCtx, resourceInput(req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, resource)
}

// @Summary Update footer resource
// @Tags admin
// @Router /api/v1/admin/footer-resources/{id} [put]
func (h *AdminContentHandler) UpdateResource(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.FooterResourceRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	resource, err := h.uc.UpdateResource(stdCtx, id, resourceInput(req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, resource)
}

// @Summary Show or hide footer resource
// @Tags admin
// @Router /api/v1/admin/footer-resources/{id}/active [patch]
func (h *AdminContentHandler) ToggleResource(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	resource, err := h.uc.ToggleResource(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, resource)
}

// @Summary Delete footer resource
// @Tags admin
// @Router /api/v1/admin/footer-resources/{id} [delete]
func (h *AdminContentHandler) DeleteResource(ctx *fasthttp.RequestCtx) {
	h.remove(ctx, h.uc.DeleteResource)
}
