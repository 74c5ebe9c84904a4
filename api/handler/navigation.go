package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/judgmentfleet/site/api/transport"
	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/pkg/httpcontext"
	"github.com/judgmentfleet/site/usecase/navigation"
)

type NavigationHandler struct {
	baseHandler
}

func NewNavigationHandler(adapter *httpcontext.Adapter, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{baseHandler: newBaseHandler(adapter, logger)}
}

type activeSectionResponse struct {
	Section  domain.Section `json:"section"`
	Changed  bool           `json:"changed"`
	Fragment string         `json:"fragment,omitempty"`
}

// @Summary Anchor ids in priority order
// @Tags navigation
// @Router /api/v1/navigation/anchors [get]
func (h *NavigationHandler) Anchors(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"anchors": domain.AnchorOrder,
		"default": domain.DefaultSection,
	})
}

// @Summary Compute the highlighted navbar section
// @Tags navigation
// @Router /api/v1/navigation/active-section [post]
//
// An explicit navigation wins over a deep link, which wins over the scroll
// geometry. Only the first two return a fragment for the URL.
func (h *NavigationHandler) ActiveSection(ctx *fasthttp.RequestCtx) {
	var req transport.ActiveSectionRequest
	if !h.decode(ctx, &req) {
		return
	}

	tracker := navigation.Resume(req.Current)
	if target, ok := domain.ParseSection(req.NavigateTo); ok {
		changed := target != tracker.Current()
		fragment := tracker.Activate(target)
		h.respondSuccess(ctx, http.StatusOK, activeSectionResponse{
			Section:  tracker.Current(),
			Changed:  changed,
			Fragment: fragment,
		})
		return
	}
	if _, ok := domain.ParseSection(req.Fragment); ok {
		section, changed := tracker.Reconcile(req.Fragment)
		h.respondSuccess(ctx, http.StatusOK, activeSectionResponse{
			Section:  section,
			Changed:  changed,
			Fragment: section.Fragment(),
		})
		return
	}

	geometry := navigation.Geometry{
		ScrollY:        req.ScrollY,
		ViewportHeight: req.ViewportHeight,
		Anchors:        make(map[domain.Section]float64, len(req.Anchors)),
	}
	for id, top := range req.Anchors {
		section, ok := domain.ParseSection(id)
		if !ok {
			continue
		}
		if req.AnchorsRelative {
			top = navigation.DocumentOffset(top, req.ScrollY)
		}
		geometry.Anchors[section] = top
	}

	section, changed := tracker.Update(geometry)
	h.respondSuccess(ctx, http.StatusOK, activeSectionResponse{Section: section, Changed: changed})
}
