package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/judgmentfleet/site/pkg/httpcontext"
	appLogger "github.com/judgmentfleet/site/pkg/logger"
	"github.com/judgmentfleet/site/repository"
)

const keepAliveInterval = 25 * time.Second

// ChangesHandler streams content changes as server-sent events.
type ChangesHandler struct {
	baseHandler
	feed repository.ChangeFeed
}

func NewChangesHandler(feed repository.ChangeFeed, adapter *httpcontext.Adapter, logger *zap.Logger) *ChangesHandler {
	return &ChangesHandler{
		baseHandler: newBaseHandler(adapter, logger),
		feed:        feed,
	}
}

// @Summary Subscribe to content changes
// @Tags realtime
// @Router /api/v1/changes [get]
func (h *ChangesHandler) Stream(ctx *fasthttp.RequestCtx) {
	streamCtx, cancel := h.streamContext(ctx)
	events, closeSub, err := h.feed.Subscribe(streamCtx)
	if err != nil {
		cancel()
		h.respondError(ctx, err)
		return
	}
	log := appLogger.WithRequestID(streamCtx, h.logger)

	ctx.Response.Header.SetContentType("text/event-stream")
	ctx.Response.Header.Set("Cache-Control", "no-cache")
	ctx.Response.Header.Set("Connection", "keep-alive")
	ctx.Response.Header.Set("X-Accel-Buffering", "no")
	ctx.SetStatusCode(http.StatusOK)

	ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer func() {
			if err := closeSub(); err != nil {
				log.Debug("closing change subscription", zap.Error(err))
			}
		}()

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		fmt.Fprint(w, "retry: 3000\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case <-streamCtx.Done():
				return
			case <-ticker.C:
				fmt.Fprint(w, ": keep-alive\n\n")
			case ev, ok := <-events:
				if !ok {
					return
				}
				payload, err := json.Marshal(ev)
				if err != nil {
					log.Warn("encoding change event", zap.Error(err))
					continue
				}
				fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.ID, ev.Table, payload)
			}
			// a failed flush means the client went away
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
}
