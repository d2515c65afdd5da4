package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mlvaren/tonic/internal/modules/engine/application/ports"
	"github.com/mlvaren/tonic/internal/modules/engine/application/usecases"
	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

// Handler exposes the signal chain controls over REST.
type Handler struct {
	graph *usecases.GraphService
}

func NewHandler(graph *usecases.GraphService) *Handler {
	return &Handler{graph: graph}
}

// RegisterRoutes mounts the engine endpoints on the shared API group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/equalizer", h.getEqualizer)
	api.PUT("/equalizer/bands/:index", h.putBandGain)
	api.PUT("/equalizer/preset", h.putPreset)

	api.GET("/effects/compressor", h.getCompressor)
	api.PUT("/effects/compressor", h.putCompressor)
	api.GET("/effects/spatial", h.getSpatial)
	api.PUT("/effects/spatial", h.putSpatial)

	api.GET("/playback/rate", h.getRate)
	api.PUT("/playback/rate", h.putRate)

	api.GET("/volume", h.getVolume)
	api.PUT("/volume", h.putVolume)

	api.GET("/analysis", h.getAnalysis)
}

type equalizerResponse struct {
	Frequencies []float64 `json:"frequencies"`
	Gains       []float64 `json:"gains"`
	Presets     []string  `json:"presets"`
}

func (h *Handler) getEqualizer(c *gin.Context) {
	gains := h.graph.BandGains()
	c.JSON(http.StatusOK, equalizerResponse{
		Frequencies: domain.BandFrequencies[:],
		Gains:       gains[:],
		Presets:     domain.PresetNames(),
	})
}

type bandGainRequest struct {
	GainDB float64 `json:"gainDb"`
}

func (h *Handler) putBandGain(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || !domain.ValidBand(index) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "band index out of range"})
		return
	}

	var req bandGainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.graph.SetBandGain(index, req.GainDB)

	gains := h.graph.BandGains()
	c.JSON(http.StatusOK, gin.H{"index": index, "gainDb": gains[index]})
}

type presetRequest struct {
	Name string `json:"name"`
}

func (h *Handler) putPreset(c *gin.Context) {
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.graph.ApplyPreset(req.Name); err != nil {
		if errors.Is(err, usecases.ErrUnknownPreset) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	gains := h.graph.BandGains()
	c.JSON(http.StatusOK, gin.H{"preset": req.Name, "gains": gains[:]})
}

func (h *Handler) getCompressor(c *gin.Context) {
	c.JSON(http.StatusOK, h.graph.Compressor())
}

func (h *Handler) putCompressor(c *gin.Context) {
	// Start from the current settings so partial bodies only touch the
	// fields they name.
	settings := h.graph.Compressor()
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.graph.ConfigureCompressor(settings)
	c.JSON(http.StatusOK, h.graph.Compressor())
}

func (h *Handler) getSpatial(c *gin.Context) {
	c.JSON(http.StatusOK, h.graph.Spatial())
}

func (h *Handler) putSpatial(c *gin.Context) {
	settings := h.graph.Spatial()
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.graph.ConfigureSpatial(settings.Enabled, settings.RolloffFactor)
	c.JSON(http.StatusOK, h.graph.Spatial())
}

type rateResponse struct {
	Speed         float64 `json:"speed"`
	PitchShift    float64 `json:"pitchShift"`
	PitchLocked   bool    `json:"pitchLocked"`
	EffectiveRate float64 `json:"effectiveRate"`
}

func (h *Handler) getRate(c *gin.Context) {
	c.JSON(http.StatusOK, h.rateState())
}

type rateRequest struct {
	Speed       *float64 `json:"speed"`
	PitchShift  *float64 `json:"pitchShift"`
	PitchLocked *bool    `json:"pitchLocked"`
}

func (h *Handler) putRate(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Speed != nil {
		h.graph.SetSpeed(*req.Speed)
	}
	if req.PitchShift != nil {
		h.graph.SetPitchShift(*req.PitchShift)
	}
	if req.PitchLocked != nil {
		h.graph.SetPitchLocked(*req.PitchLocked)
	}

	c.JSON(http.StatusOK, h.rateState())
}

func (h *Handler) rateState() rateResponse {
	return rateResponse{
		Speed:         h.graph.Speed(),
		PitchShift:    h.graph.PitchShift(),
		PitchLocked:   h.graph.PitchLocked(),
		EffectiveRate: h.graph.EffectiveRate(),
	}
}

func (h *Handler) getVolume(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"volume": h.graph.MasterVolume()})
}

type volumeRequest struct {
	Volume      float64 `json:"volume"`
	FadeSeconds float64 `json:"fadeSeconds"`
}

func (h *Handler) putVolume(c *gin.Context) {
	var req volumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.graph.SetMasterVolume(req.Volume, req.FadeSeconds)
	c.JSON(http.StatusOK, gin.H{"volume": h.graph.MasterVolume()})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysis, err := h.graph.AnalysisSnapshot()
	if err != nil {
		if errors.Is(err, usecases.ErrNotInitialized) ||
			errors.Is(err, ports.ErrAnalysisUnsupported) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysis)
}
