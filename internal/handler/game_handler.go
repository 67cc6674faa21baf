package handler

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gamevault/backend/internal/catalog"
	"gamevault/backend/internal/models"
)

// GameService is what the game routes need from the service layer.
type GameService interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	GetGame(ctx context.Context, id uint) (*models.Game, error)
	GetGameByGameID(ctx context.Context, gameID string) (*models.Game, error)
	SearchGames(ctx context.Context, filters catalog.Filters) ([]models.Game, error)
	UpdateRating(ctx context.Context, id uint, rating *float64) (*models.Game, error)
	Cards(ctx context.Context, page, limit int) ([]catalog.Card, int64, error)
}

// GameHandler serves the game routes.
type GameHandler struct {
	svc    GameService
	logger *slog.Logger
}

func NewGameHandler(svc GameService, logger *slog.Logger) *GameHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GameHandler{svc: svc, logger: logger}
}

func (h *GameHandler) RegisterRoutes(rg *gin.RouterGroup) {
	games := rg.Group("/games")
	{
		games.GET("", h.ListGames)
		games.GET("/search", h.SearchGames)
		games.GET("/cards", h.GetGameCards)
		games.GET("/external/:gameId", h.GetGameByExternalID)
		games.GET("/:id", h.GetGameByID)
		games.PUT("/:id/rating", h.UpdateRating)
	}
}

// region --- Query parsing ---

func optionalString(c *gin.Context, key string) *string {
	if v, ok := c.GetQuery(key); ok {
		return &v
	}
	return nil
}

// optionalFloat ignores malformed values, including NaN and infinities.
func optionalFloat(c *gin.Context, key string) *float64 {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func optionalBool(c *gin.Context, key string) *bool {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func filtersFromQuery(c *gin.Context) catalog.Filters {
	return catalog.Filters{
		Search:    optionalString(c, "search"),
		Platform:  optionalString(c, "platform"),
		Genre:     optionalString(c, "genre"),
		Tag:       optionalString(c, "tag"),
		Developer: optionalString(c, "developer"),
		Publisher: optionalString(c, "publisher"),
		MinScore:  optionalFloat(c, "minScore"),
		MaxScore:  optionalFloat(c, "maxScore"),
		HasRating: optionalBool(c, "hasRating"),
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// endregion

// region --- Handlers ---

// ListGames godoc
// @Summary      List games
// @Description  Returns every game with all associations, ordered by title.
// @Tags         games
// @Produce      json
// @Success      200 {array}  GameResponse
// @Failure      500 {object} ErrorResponse
// @Router       /games [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.svc.ListGames(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponses(games))
}

// SearchGames godoc
// @Summary      Search games
// @Description  Filters games. Every parameter is optional and they combine with AND. Malformed numbers are ignored.
// @Tags         games
// @Produce      json
// @Param        search    query string false "Substring of title or summary"
// @Param        platform  query string false "Substring of platform"
// @Param        genre     query string false "Substring of any genre name"
// @Param        tag       query string false "Substring of any tag name"
// @Param        developer query string false "Substring of any developer name"
// @Param        publisher query string false "Substring of any publisher name"
// @Param        minScore  query number false "Inclusive lower bound on criticsScore"
// @Param        maxScore  query number false "Inclusive upper bound on criticsScore"
// @Param        hasRating query bool   false "Only games with a personal rating"
// @Success      200 {array}  GameResponse
// @Failure      500 {object} ErrorResponse
// @Router       /games/search [get]
func (h *GameHandler) SearchGames(c *gin.Context) {
	games, err := h.svc.SearchGames(c.Request.Context(), filtersFromQuery(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponses(games))
}

// GetGameCards godoc
// @Summary      Library grid cards
// @Description  Returns a page of condensed game cards for the library grid.
// @Tags         games
// @Produce      json
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(24)
// @Success      200 {object} PaginatedResponse[catalog.Card]
// @Failure      500 {object} ErrorResponse
// @Router       /games/cards [get]
func (h *GameHandler) GetGameCards(c *gin.Context) {
	page, limit := pageParams(c, defaultCardLimit)
	cards, total, err := h.svc.Cards(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(cards, total, page, limit))
}

// GetGameByID godoc
// @Summary      Get a game
// @Description  Retrieves one game by internal ID.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      500 {object} ErrorResponse
// @Router       /games/{id} [get]
func (h *GameHandler) GetGameByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgGameNotFound})
		return
	}
	game, err := h.svc.GetGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(*game))
}

// GetGameByExternalID godoc
// @Summary      Get a game by storefront ID
// @Description  Retrieves one game by its storefront identifier.
// @Tags         games
// @Produce      json
// @Param        gameId path string true "Storefront game ID"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      500 {object} ErrorResponse
// @Router       /games/external/{gameId} [get]
func (h *GameHandler) GetGameByExternalID(c *gin.Context) {
	game, err := h.svc.GetGameByGameID(c.Request.Context(), c.Param("gameId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(*game))
}

// UpdateRating godoc
// @Summary      Set the personal rating
// @Description  Sets or clears (null) the personal rating and marks the game as modified by the user.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id    path int         true "Game ID"
// @Param        input body RatingInput true "Rating between 0 and 10, or null"
// @Success      200 {object} GameResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      500 {object} ErrorResponse
// @Router       /games/{id}/rating [put]
func (h *GameHandler) UpdateRating(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgGameNotFound})
		return
	}

	var input RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.svc.UpdateRating(c.Request.Context(), id, input.Rating)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(*game))
}

// endregion
