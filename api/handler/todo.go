package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/judgmentfleet/site/api/transport"
	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/pkg/httpcontext"
	"github.com/judgmentfleet/site/usecase/todo"
)

type TodoHandler struct {
	baseHandler
	store *todo.Store
}

func NewTodoHandler(store *todo.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
	}
}

// todoResult reports whether a mutation matched an item.
type todoResult struct {
	Applied bool             `json:"applied"`
	Item    *domain.TodoItem `json:"item,omitempty"`
}

type todoList struct {
	Category domain.Category   `json:"category"`
	Items    []domain.TodoItem `json:"items"`
}

func result(item domain.TodoItem, ok bool) todoResult {
	if !ok {
		return todoResult{}
	}
	return todoResult{Applied: true, Item: &item}
}

// @Summary List the todos of a category
// @Tags todos
// @Router /api/v1/todos [get]
func (h *TodoHandler) List(ctx *fasthttp.RequestCtx) {
	category := h.store.ActiveCategory()
	if raw := string(ctx.QueryArgs().Peek("category")); raw != "" {
		parsed, ok := domain.ParseCategory(raw)
		if !ok {
			h.respondInvalid(ctx, "unknown category")
			return
		}
		category = parsed
	}
	h.respondSuccess(ctx, http.StatusOK, todoList{Category: category, Items: h.store.View(category)})
}

// @Summary Count todos per category
// @Tags todos
// @Router /api/v1/todos/counts [get]
func (h *TodoHandler) Counts(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.store.Counts())
}

// @Summary Add a todo to the active category
// @Tags todos
// @Router /api/v1/todos [post]
func (h *TodoHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.TodoCreateRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	item, ok := h.store.Add(stdCtx, req.Text)
	if !ok {
		h.respondInvalid(ctx, "text is required")
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, result(item, true))
}

// @Summary Toggle completion
// @Tags todos
// @Router /api/v1/todos/{id}/toggle [post]
func (h *TodoHandler) Toggle(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, result(h.store.Toggle(stdCtx, id)))
}

// @Summary Move a todo to another category
// @Tags todos
// @Router /api/v1/todos/{id}/category [put]
func (h *TodoHandler) Move(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.CategoryRequest
	if !h.decode(ctx, &req) {
		return
	}
	category, ok := domain.ParseCategory(req.Category)
	if !ok {
		h.respondInvalid(ctx, "unknown category")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, result(h.store.Move(stdCtx, id, category)))
}

// @Summary Delete a todo
// @Tags todos
// @Router /api/v1/todos/{id} [delete]
func (h *TodoHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, todoResult{Applied: h.store.Delete(stdCtx, id)})
}

// @Summary Get the selected category
// @Tags todos
// @Router /api/v1/todos/active-category [get]
func (h *TodoHandler) ActiveCategory(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, transport.CategoryRequest{Category: string(h.store.ActiveCategory())})
}

// @Summary Select a category
// @Tags todos
// @Router /api/v1/todos/active-category [put]
func (h *TodoHandler) SetActiveCategory(ctx *fasthttp.RequestCtx) {
	var req transport.CategoryRequest
	if !h.decode(ctx, &req) {
		return
	}
	category, ok := domain.ParseCategory(req.Category)
	if !ok {
		h.respondInvalid(ctx, "unknown category")
		return
	}
	h.store.SetActiveCategory(category)
	h.respondSuccess(ctx, http.StatusOK, req)
}
