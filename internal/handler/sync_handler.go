package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamevault/backend/internal/library"
)

// LibrarySyncer imports storefront libraries.
type LibrarySyncer interface {
	SyncSteam(ctx context.Context) (*library.Result, error)
	SyncGOG(ctx context.Context) (*library.Result, error)
	SyncEpic(ctx context.Context) (*library.Result, error)
}

type SyncHandler struct {
	syncer LibrarySyncer
	logger *slog.Logger
}

func NewSyncHandler(syncer LibrarySyncer, logger *slog.Logger) *SyncHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncHandler{syncer: syncer, logger: logger}
}

// RegisterRoutes mounts the sync routes on an admin-protected group.
func (h *SyncHandler) RegisterRoutes(admin *gin.RouterGroup) {
	sync := admin.Group("/sync")
	{
		sync.POST("/steam", h.run("Steam", h.syncer.SyncSteam))
		sync.POST("/gog", h.run("GOG", h.syncer.SyncGOG))
		sync.POST("/epic", h.run("Epic", h.syncer.SyncEpic))
	}
}

// run executes one storefront sync.
//
// @Summary      Sync a storefront library
// @Description  Upserts games from the storefront into the library. Runs are throttled.
// @Tags         admin-sync
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} SyncResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      429 {object} ErrorResponse "Sync throttled"
// @Failure      503 {object} ErrorResponse "Source not configured"
// @Failure      500 {object} ErrorResponse
// @Router       /admin/sync/steam [post]
// @Router       /admin/sync/gog [post]
// @Router       /admin/sync/epic [post]
func (h *SyncHandler) run(label string, sync func(context.Context) (*library.Result, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := sync(c.Request.Context())
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, SyncResponse{
			Success:  true,
			Message:  fmt.Sprintf("%s sync: %d created, %d updated", label, res.Created, res.Updated),
			Platform: res.Platform,
			Created:  res.Created,
			Updated:  res.Updated,
			Games:    newGameResponses(res.Games),
		})
	}
}
