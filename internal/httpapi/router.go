package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chess-backend/uci-arbiter/configs"
	"github.com/chess-backend/uci-arbiter/internal/handlers"
	"github.com/chess-backend/uci-arbiter/internal/middleware"
)

// New builds the gin engine serving the arbiter's HTTP surface: engine
// listing, match start/status/event-stream, and health/stats, wired the
// way the teacher's cmd/server/main.go wires its own router (gin.New +
// Logger + Recovery, cors.New, middleware.RateLimit, a /api group).
func New(cfg *configs.Config, roster configs.EngineRoster, log *logrus.Entry) *gin.Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	manager := NewManager(roster, cfg.Match, log)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RateLimit(cfg.RateLimit))

	healthHandler := handlers.NewHealthHandler()
	h := &apiHandler{manager: manager, log: log}

	api := router.Group("/api")
	{
		api.GET("/engines", h.listEngines)

		matches := api.Group("/matches")
		{
			matches.POST("", h.startMatch)
			matches.GET("/:id", h.getMatch)
			matches.GET("/:id/events", h.streamMatchEvents)
		}

		api.GET("/health", healthHandler.Health)
		api.GET("/stats", healthHandler.Stats)
	}

	return router
}

type apiHandler struct {
	manager *Manager
	log     *logrus.Entry
}

func (h *apiHandler) listEngines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"engines": h.manager.EngineNicknames()})
}

func (h *apiHandler) startMatch(c *gin.Context) {
	var req StartMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.manager.StartMatch(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": rec.ID, "white": rec.White, "black": rec.Black})
}

func (h *apiHandler) getMatch(c *gin.Context) {
	rec, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such match"})
		return
	}
	status, winner, events := rec.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"id":     rec.ID,
		"white":  rec.White,
		"black":  rec.Black,
		"status": status,
		"winner": winner,
		"events": events,
	})
}

// streamMatchEvents serves the match's event log as Server-Sent Events:
// replaying what has already happened, then forwarding live events
// until the match finishes or the client disconnects.
func (h *apiHandler) streamMatchEvents(c *gin.Context) {
	rec, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such match"})
		return
	}

	_, _, backlog := rec.Snapshot()
	live, unsubscribe := rec.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	for _, ev := range backlog {
		writeSSE(c, ev)
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-live:
			if !ok {
				return false
			}
			writeSSE(c, ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func writeSSE(c *gin.Context, payload json.RawMessage) {
	c.SSEvent("message", string(payload))
	c.Writer.Flush()
}
