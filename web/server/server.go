package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits shared by the render and inspect endpoints
const (
	minImageSize = 16
	maxImageSize = 2000
	maxDepth     = 16
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string // Directory scanned for .json scenes; "" disables file scenes
	console   *Console
}

// NewServer creates a new web server serving scene files from the first
// scenes directory found near the working directory
func NewServer(port int) *Server {
	return NewServerWithScenes(port, scene.FindScenesDir())
}

// NewServerWithScenes creates a new web server serving scene files from scenesDir
func NewServerWithScenes(port int, scenesDir string) *Server {
	return &Server{
		port:      port,
		scenesDir: scenesDir,
		console:   NewConsole(200),
	}
}

// Handler returns the HTTP handler with all routes registered
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/console", s.handleConsole)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns a scene's recommended render settings and the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]int{
			"width":    sceneObj.Settings.Width,
			"height":   sceneObj.Settings.Height,
			"maxDepth": sceneObj.Settings.MaxDepth,
		},
		"limits": map[string]map[string]int{
			"width":    {"min": minImageSize, "max": maxImageSize},
			"height":   {"min": minImageSize, "max": maxImageSize},
			"maxDepth": {"min": 0, "max": maxDepth},
		},
	})
}

// handleConsole returns recent render log messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": s.console.Messages(),
	})
}

// createScene resolves a built-in scene ID or a "file:<name>" ID listed in the scenes directory.
// Only listed files can be loaded, so request values never reach the filesystem directly.
func (s *Server) createScene(id string) (*scene.Scene, error) {
	if scene.IsBuiltinScene(id) {
		return scene.NewBuiltinScene(id)
	}

	if strings.HasPrefix(id, "file:") {
		files, err := scene.ListFileScenes(s.scenesDir)
		if err != nil {
			return nil, err
		}
		for _, info := range files {
			if info.ID == id {
				return loaders.LoadScene(info.FilePath)
			}
		}
	}

	return nil, fmt.Errorf("unknown scene: %s", id)
}

// sceneRequest holds the parameters shared by render and inspect
type sceneRequest struct {
	Scene    string `json:"scene"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MaxDepth int    `json:"maxDepth"`
}

// parseSceneRequest parses the scene and size parameters, taking unset sizes from the scene
func (s *Server) parseSceneRequest(r *http.Request) (*sceneRequest, *scene.Scene, error) {
	query := r.URL.Query()

	req := &sceneRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, nil, err
	}

	if req.Width, err = parseIntParam(query, "width", sceneObj.Settings.Width, minImageSize, maxImageSize); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(query, "height", sceneObj.Settings.Height, minImageSize, maxImageSize); err != nil {
		return nil, nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", sceneObj.Settings.MaxDepth, 0, maxDepth); err != nil {
		return nil, nil, err
	}

	return req, sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
