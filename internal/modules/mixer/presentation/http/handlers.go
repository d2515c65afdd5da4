package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mlvaren/tonic/internal/modules/mixer/application/ports"
	"github.com/mlvaren/tonic/internal/modules/mixer/application/usecases"
	"github.com/mlvaren/tonic/internal/modules/mixer/domain"
)

// Handler exposes mix generation and the track library over REST.
type Handler struct {
	mixes   *usecases.MixService
	library ports.TrackLibrary
	writer  ports.TrackWriter
}

func NewHandler(mixes *usecases.MixService, library ports.TrackLibrary, writer ports.TrackWriter) *Handler {
	return &Handler{mixes: mixes, library: library, writer: writer}
}

// RegisterRoutes mounts the mixer endpoints on the shared API group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/mixes", h.generateMix)
	api.POST("/mixes/save", h.saveMix)
	api.GET("/tracks", h.listTracks)
	api.PUT("/tracks/:id", h.putTrack)
}

type mixRequest struct {
	SeedTrackIDs          []string `json:"seedTrackIds"`
	Mood                  string   `json:"mood"`
	Genre                 string   `json:"genre"`
	TargetDurationMinutes float64  `json:"targetDurationMinutes"`
	Diversity             string   `json:"diversity"`
	IncludeRecentlyPlayed bool     `json:"includeRecentlyPlayed"`
	ExcludeSkipped        bool     `json:"excludeSkipped"`
}

type trackResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Artist    string  `json:"artist"`
	Album     string  `json:"album,omitempty"`
	Genre     string  `json:"genre,omitempty"`
	Duration  float64 `json:"duration"`
	PlayCount int     `json:"playCount"`
}

type mixResponse struct {
	Tracks      []trackResponse `json:"tracks"`
	Description string          `json:"description"`
	ColorTag    string          `json:"colorTag"`
	Reason      string          `json:"reason,omitempty"`
	Duration    float64         `json:"durationSeconds"`
}

func (h *Handler) generateMix(c *gin.Context) {
	var req mixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	domainReq, err := toDomainRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.mixes.GenerateSmartMix(c.Request.Context(), domainReq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toMixResponse(result))
}

type saveMixRequest struct {
	Name string     `json:"name"`
	Mix  mixPayload `json:"mix"`
}

type mixPayload struct {
	TrackIDs    []string `json:"trackIds"`
	Description string   `json:"description"`
	ColorTag    string   `json:"colorTag"`
}

func (h *Handler) saveMix(c *gin.Context) {
	var req saveMixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Resolve ids to current library entries so a stale id cannot be saved.
	mix := domain.MixResult{Description: req.Mix.Description, ColorTag: req.Mix.ColorTag}
	for _, id := range req.Mix.TrackIDs {
		track, err := h.library.GetTrackByID(c.Request.Context(), domain.TrackID(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if track == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown track id " + id})
			return
		}
		mix.Tracks = append(mix.Tracks, *track)
	}

	playlist, err := h.mixes.SaveMix(c.Request.Context(), req.Name, mix)
	if err != nil {
		if errors.Is(err, usecases.ErrEmptyPlaylistName) || errors.Is(err, usecases.ErrEmptyMix) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        playlist.ID,
		"name":      playlist.Name,
		"createdAt": playlist.CreatedAt.Format(time.RFC3339),
	})
}

func (h *Handler) listTracks(c *gin.Context) {
	tracks, err := h.library.GetAllTracks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]trackResponse, len(tracks))
	for i, track := range tracks {
		out[i] = toTrackResponse(track)
	}
	c.JSON(http.StatusOK, gin.H{"tracks": out})
}

type trackRequest struct {
	Title      string     `json:"title"`
	Artist     string     `json:"artist"`
	Album      string     `json:"album"`
	Genre      string     `json:"genre"`
	Duration   float64    `json:"duration"`
	PlayCount  int        `json:"playCount"`
	LastPlayed *time.Time `json:"lastPlayed"`
}

// putTrack upserts a library entry keyed by the path id.
func (h *Handler) putTrack(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	track := domain.Track{
		ID:         domain.TrackID(c.Param("id")),
		Title:      req.Title,
		Artist:     req.Artist,
		Album:      req.Album,
		Genre:      req.Genre,
		Duration:   req.Duration,
		PlayCount:  req.PlayCount,
		LastPlayed: req.LastPlayed,
		DateAdded:  time.Now().UTC(),
	}
	if !track.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "track needs an id and a title"})
		return
	}

	if err := h.writer.SaveTrack(c.Request.Context(), track); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toTrackResponse(track))
}

func toDomainRequest(req mixRequest) (domain.MixRequest, error) {
	out := domain.MixRequest{
		Genre:                 req.Genre,
		TargetDurationMinutes: req.TargetDurationMinutes,
		Diversity:             domain.DiversityLevel(req.Diversity),
		IncludeRecentlyPlayed: req.IncludeRecentlyPlayed,
		ExcludeSkipped:        req.ExcludeSkipped,
	}

	if req.Mood != "" {
		mood, ok := domain.ParseMood(req.Mood)
		if !ok {
			return domain.MixRequest{}, errors.New("unknown mood " + req.Mood)
		}
		out.Mood = mood
	}

	for _, id := range req.SeedTrackIDs {
		out.SeedTrackIDs = append(out.SeedTrackIDs, domain.TrackID(id))
	}
	return out, nil
}

func toMixResponse(result domain.MixResult) mixResponse {
	out := mixResponse{
		Tracks:      make([]trackResponse, len(result.Tracks)),
		Description: result.Description,
		ColorTag:    result.ColorTag,
		Reason:      result.Reason,
		Duration:    result.TotalDuration().Seconds(),
	}
	for i, track := range result.Tracks {
		out.Tracks[i] = toTrackResponse(track)
	}
	return out
}

func toTrackResponse(track domain.Track) trackResponse {
	return trackResponse{
		ID:        string(track.ID),
		Title:     track.Title,
		Artist:    track.Artist,
		Album:     track.Album,
		Genre:     track.Genre,
		Duration:  track.Duration,
		PlayCount: track.PlayCount,
	}
}
