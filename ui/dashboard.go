package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"detectlab/app"
	"detectlab/internal"
	"detectlab/ports"
)

// Dashboard is the browser-facing surface of the lab. It renders the
// summary report as HTML and exposes the small status endpoints the
// page polls, while Server carries the JSON API.
type Dashboard struct {
	router      *gin.Engine
	analysis    *app.AnalysisService
	experiments *app.ExperimentService
	logger      *internal.Logger
}

// NewDashboard creates the dashboard around the lab services
func NewDashboard(analysis *app.AnalysisService, experiments *app.ExperimentService, logger *internal.Logger) *Dashboard {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	d := &Dashboard{
		router:      gin.Default(),
		analysis:    analysis,
		experiments: experiments,
		logger:      logger,
	}
	d.setupRoutes()
	return d
}

// Router returns the configured engine for mounting or serving
func (d *Dashboard) Router() http.Handler {
	return d.router
}

// Start begins serving the dashboard on the given address
func (d *Dashboard) Start(addr string) error {
	d.logger.Info("dashboard listening on %s", addr)
	return d.router.Run(addr)
}

func (d *Dashboard) setupRoutes() {
	d.router.GET("/", d.handleIndex)
	d.router.GET("/api/lab/status", d.handleLabStatus)
	d.router.GET("/api/lab/categories", d.handleCategories)
}

func (d *Dashboard) handleIndex(c *gin.Context) {
	signalSummary, err := d.analysis.SignalSummary(c.Request.Context(), ports.SignalFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resultSummary, err := d.experiments.ResultSummary(c.Request.Context(), ports.ResultFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", RenderReportHTML(signalSummary, resultSummary))
}

func (d *Dashboard) handleLabStatus(c *gin.Context) {
	signalSummary, err := d.analysis.SignalSummary(c.Request.Context(), ports.SignalFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resultSummary, err := d.experiments.ResultSummary(c.Request.Context(), ports.ResultFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"signals":         signalSummary.Total,
		"high_priority":   signalSummary.HighPriority,
		"mean_confidence": signalSummary.MeanConfidence,
		"experiments":     resultSummary.TotalExperiments,
		"high_anomaly":    resultSummary.HighAnomalyCount,
	})
}

func (d *Dashboard) handleCategories(c *gin.Context) {
	signalSummary, err := d.analysis.SignalSummary(c.Request.Context(), ports.SignalFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": signalSummary.ByCategory})
}
