package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/yuin/goldmark"

	"missionlens/internal/analytics"
	"missionlens/internal/dataset"
	"missionlens/internal/ml"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

//go:embed notes.md
var modelNotes string

var md = goldmark.New()

// Server serves the analytics API and dashboard over the engineered dataset
// and the cached model. The dataset may be empty (degraded mode); every
// aggregate then renders as an empty collection.
type Server struct {
	data  dataset.Dataset
	model *ml.Cache
	pages map[string]*template.Template
	mux   *http.ServeMux
}

// New creates a new Server.
func New(data dataset.Dataset, model *ml.Cache) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"percent":  func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	}

	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	pageNames := []string{"index.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{data: data, model: model, pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/dashboard", s.handleDashboard)

	s.mux.HandleFunc("/api/", s.handleAPIRoot)
	s.mux.HandleFunc("/api/growth_trend", s.handleGrowthTrend)
	s.mux.HandleFunc("/api/success_rates", s.handleSuccessRates)
	s.mux.HandleFunc("/api/strategic_focus", s.handleStrategicFocus)
	s.mux.HandleFunc("/api/orbit_complexity", s.handleOrbitComplexity)
	s.mux.HandleFunc("/api/model_performance", s.handleModelPerformance)
	s.mux.HandleFunc("/api/feature_importance", s.handleFeatureImportance)
	s.mux.HandleFunc("/api/predict_mission", s.handlePredict)
	s.mux.HandleFunc("/api/kpi_total_success_rate", s.handleKPI)
	s.mux.HandleFunc("/api/options", s.handleOptions)
}

func (s *Server) handleAPIRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/" {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "missionlens mission analyzer API"})
}

func (s *Server) handleGrowthTrend(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, analytics.GrowthTrend(s.data))
}

func (s *Server) handleSuccessRates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, analytics.SuccessRates(s.data))
}

func (s *Server) handleStrategicFocus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, analytics.StrategicFocus(s.data))
}

func (s *Server) handleOrbitComplexity(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, analytics.OrbitComplexity(s.data))
}

func (s *Server) handleModelPerformance(w http.ResponseWriter, r *http.Request) {
	model, err := s.model.Get()
	if err != nil {
		// Degraded: the dashboard still renders without metrics.
		s.writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	s.writeJSON(w, http.StatusOK, model.Metrics())
}

func (s *Server) handleFeatureImportance(w http.ResponseWriter, r *http.Request) {
	model, err := s.model.Get()
	if err != nil {
		log.Printf("feature importance unavailable: %v", err)
		s.writeJSON(w, http.StatusOK, []ml.FeatureWeight{})
		return
	}
	s.writeJSON(w, http.StatusOK, model.Importances())
}

type predictRequest struct {
	Vehicle string `json:"vehicle"`
	Orbit   string `json:"orbit"`
}

type predictResponse struct {
	Probability float64 `json:"prediction_probability"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}
	model, err := s.model.Get()
	if err != nil {
		if !errors.Is(err, ml.ErrModelNotReady) {
			log.Printf("predict: %v", err)
		}
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "model not trained or available"})
		return
	}
	s.writeJSON(w, http.StatusOK, predictResponse{Probability: model.Predict(req.Vehicle, req.Orbit)})
}

func (s *Server) handleKPI(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]float64{"success_rate": analytics.OverallSuccessRate(s.data)})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{
		"vehicles": s.data.Vehicles(),
		"orbits":   s.data.Orbits(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := map[string]any{
		"Empty":        s.data.Empty(),
		"MissionCount": len(s.data),
		"SuccessRate":  analytics.OverallSuccessRate(s.data),
		"Trend":        analytics.GrowthTrend(s.data),
		"Rates":        analytics.SuccessRates(s.data),
		"Focus":        analytics.StrategicFocus(s.data),
		"Vehicles":     s.data.Vehicles(),
		"Orbits":       s.data.Orbits(),
		"Notes":        modelNotes,
	}

	if model, err := s.model.Get(); err == nil {
		data["Metrics"] = model.Metrics()
		data["Importances"] = model.Importances()
	}

	s.render(w, "index.html", data)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// Serve starts the HTTP server on the given port.
func Serve(data dataset.Dataset, model *ml.Cache, port int) error {
	srv, err := New(data, model)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
