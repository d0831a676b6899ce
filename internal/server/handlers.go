package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salescope/internal/dataset"
	"salescope/internal/narrative"
	"salescope/internal/pipeline"
	"salescope/internal/render"
)

const placeholder = "—"

// handleUpload replaces the session with an uploaded CSV (multipart field
// "file") or, with ?sample=1, the configured local sample file.
func (s *Server) handleUpload(c *gin.Context) {
	var t *dataset.Table
	if c.Query("sample") != "" {
		loaded, err := dataset.ReadCSVFile(s.cfg.SamplePath)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("sample file not found: upload a CSV or place it at %s", s.cfg.SamplePath),
			})
			return
		}
		t = loaded
	} else {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing multipart field 'file'"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("open upload: %v", err)})
			return
		}
		defer f.Close()
		loaded, err := dataset.ReadCSV(f, fh.Filename, 0)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("parse csv: %v", err)})
			return
		}
		t = loaded
	}

	s.mu.Lock()
	s.session.Load(t)
	resp := gin.H{
		"id":        s.session.ID.String(),
		"name":      s.session.Name,
		"rows":      len(s.session.Records),
		"columns":   s.session.Columns,
		"products":  s.session.Products,
		"regions":   s.session.Regions,
		"locations": s.session.Locations,
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleOptions(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session.Empty() {
		c.JSON(http.StatusConflict, gin.H{"error": "no dataset loaded; POST a CSV to /api/dataset first"})
		return
	}
	from, to, _ := s.session.DateBounds()
	c.JSON(http.StatusOK, gin.H{
		"products":  s.session.Products,
		"regions":   s.session.Regions,
		"locations": s.session.Locations,
		"from":      from,
		"to":        to,
	})
}

func criteriaFromQuery(c *gin.Context) pipeline.Criteria {
	return pipeline.Criteria{
		Product:  c.Query("product"),
		Region:   c.Query("region"),
		Location: c.Query("location"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	}
}

// aggregate runs one filter + aggregate pass under the read lock.
func (s *Server) aggregate(crit pipeline.Criteria) *pipeline.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pipeline.Aggregate(pipeline.Filter(s.session.Records, crit))
}

func (s *Server) handleSummary(c *gin.Context) {
	res := s.aggregate(criteriaFromQuery(c))
	cur := s.cfg.Currency
	kpi := func(value float64, display string) gin.H {
		return gin.H{"value": value, "display": display}
	}
	resp := gin.H{
		"orders": res.Orders,
	}
	if res.Orders == 0 {
		resp["revenue"] = kpi(0, placeholder)
		resp["units"] = kpi(0, placeholder)
		resp["aov"] = kpi(0, placeholder)
		resp["revenue_per_unit"] = kpi(0, placeholder)
	} else {
		resp["revenue"] = kpi(res.Revenue, render.Money(res.Revenue, cur))
		resp["units"] = kpi(res.Units, render.Count(res.Units))
		resp["aov"] = kpi(res.AOV, render.Money(res.AOV, cur))
		resp["revenue_per_unit"] = kpi(res.RevenuePerUnit, render.Money(res.RevenuePerUnit, cur))
	}
	resp["products"] = calloutJSON(res.Products, cur)
	resp["reps"] = calloutJSON(res.Reps, cur)
	c.JSON(http.StatusOK, resp)
}

func calloutJSON(cs pipeline.Callouts, cur string) gin.H {
	one := func(c *pipeline.Callout) gin.H {
		if c == nil {
			return gin.H{"key": placeholder, "display": placeholder}
		}
		return gin.H{"key": c.Key, "value": c.Value, "display": render.Money(c.Value, cur)}
	}
	return gin.H{
		"top_revenue": one(cs.TopRevenue),
		"low_revenue": one(cs.LowRevenue),
		"top_avg":     one(cs.TopAvg),
		"low_avg":     one(cs.LowAvg),
	}
}

func (s *Server) handleCharts(c *gin.Context) {
	res := s.aggregate(criteriaFromQuery(c))
	c.JSON(http.StatusOK, gin.H{"charts": pipeline.Charts(res)})
}

type narrativeRequest struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Product  string `json:"product"`
	Region   string `json:"region"`
	Location string `json:"location"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// handleNarrative composes a narrative for the requested filter. Remote
// failures are cosmetic: the error text is returned as the narrative with
// status 200. A request superseded by a newer one still gets its own
// response, but its result is not stored as the latest narrative.
func (s *Server) handleNarrative(c *gin.Context) {
	var req narrativeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("parse request: %v", err)})
			return
		}
	}
	rt, ok := s.runtimeFor(req.Provider, req.Model)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown provider %q", req.Provider)})
		return
	}
	res := s.aggregate(pipeline.Criteria{
		Product: req.Product, Region: req.Region, Location: req.Location,
		From: req.From, To: req.To,
	})

	ticket := s.gen.Add(1)
	composer := &narrative.Composer{Runtime: rt, Currency: s.cfg.Currency}
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(s.cfg.HTTPTimeoutSec)*time.Second)
	defer cancel()
	text, err := composer.Compose(ctx, res)
	if err != nil {
		text = narrative.RenderError(err)
	}

	stale := ticket != s.gen.Load()
	if !stale {
		s.narrativeMu.Lock()
		s.lastNarrative = text
		s.narrativeMu.Unlock()
	}
	c.JSON(http.StatusOK, gin.H{"narrative": text, "generation": ticket, "stale": stale})
}

func (s *Server) handleLastNarrative(c *gin.Context) {
	s.narrativeMu.RLock()
	defer s.narrativeMu.RUnlock()
	c.JSON(http.StatusOK, gin.H{"narrative": s.lastNarrative})
}
