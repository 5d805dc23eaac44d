package realtime

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blogcraft/blogcraft/domain"
	"github.com/blogcraft/blogcraft/internal/api"
	apperrors "github.com/blogcraft/blogcraft/internal/errors"
	"github.com/blogcraft/blogcraft/internal/middleware"
	"github.com/blogcraft/blogcraft/internal/realtime"
	"github.com/blogcraft/blogcraft/internal/util"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 15 * time.Second

// Handler exposes the realtime stream and room endpoints.
type Handler struct {
	hub      *realtime.Hub
	registry *realtime.Registry
}

// NewHandler creates the realtime handler.
func NewHandler(hub *realtime.Hub, registry *realtime.Registry) *Handler {
	return &Handler{hub: hub, registry: registry}
}

// Register mounts the realtime routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	rt := r.Group("/api/realtime", middleware.Auth())
	rt.GET("/stream", h.stream)
	rt.POST("/rooms/:id/join", h.joinRoom)
	rt.POST("/rooms/:id/leave", h.leaveRoom)
}

// stream serves one SSE connection. The first event is the handshake
// carrying the connection id; afterwards every published domain event is
// relayed until the client goes away.
func (h *Handler) stream(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		apperrors.HandleError(c, apperrors.New(apperrors.ErrInternal, "streaming unsupported"))
		return
	}

	connID, events := h.hub.Subscribe()
	defer func() {
		h.hub.Unsubscribe(connID)
		h.registry.Drop(connID)
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	fmt.Fprintf(c.Writer, "event: connected\ndata: {\"connectionId\":%q}\n\n", connID)
	flusher.Flush()

	util.Logger.Info("stream opened",
		zap.String("conn", connID),
		zap.String("user", middleware.CurrentUserID(c)))

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			util.Logger.Info("stream closed", zap.String("conn", connID))
			return
		case <-heartbeat.C:
			fmt.Fprint(c.Writer, ": ping\n\n")
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				return
			}
			data, err := domain.EncodeEvent(ev)
			if err != nil {
				util.Logger.Warn("encode event failed",
					zap.String("event", string(ev.Type())), zap.Error(err))
				continue
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Type(), data)
			flusher.Flush()
		}
	}
}

type roomRequest struct {
	ConnectionID string `json:"connectionId" binding:"required"`
}

func (h *Handler) joinRoom(c *gin.Context) {
	var req roomRequest
	if err := api.BindJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.registry.Join(req.ConnectionID, c.Param("id"))
	apperrors.HandleSuccess(c, http.StatusOK, nil, "joined")
}

func (h *Handler) leaveRoom(c *gin.Context) {
	var req roomRequest
	if err := api.BindJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.registry.Leave(req.ConnectionID, c.Param("id"))
	apperrors.HandleSuccess(c, http.StatusOK, nil, "left")
}
