package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/google/uuid"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles finished so far (1-based)
	TotalTiles int    `json:"totalTiles"`
}

// RenderComplete is the final SSE event of a streamed render
type RenderComplete struct {
	ImageData       string  `json:"imageData"` // Base64 encoded PNG of the full image
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	RenderTimeMs    int64   `json:"renderTimeMs"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
	Luminance       float64 `json:"luminance"`
}

// SSEEvent represents a single Server-Sent Event
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene. By default the response is the PNG itself;
// with stream=true tiles are streamed as SSE events while they finish.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.parseSceneRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	config := renderer.DefaultRenderConfig()
	config.MaxDepth = req.MaxDepth
	renderID := "render-" + uuid.NewString()

	if r.URL.Query().Get("stream") == "true" {
		s.streamRender(w, r, req, sceneObj, config, renderID)
		return
	}

	rt := renderer.NewRaytracer(sceneObj, req.Width, req.Height, config, s.console.Logger(renderID))
	img, _, err := rt.RenderContext(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write(buf.Bytes())
}

// streamRender runs the render on the request goroutine and writes each event as it happens
func (s *Server) streamRender(w http.ResponseWriter, r *http.Request, req *sceneRequest, sceneObj *scene.Scene, config renderer.RenderConfig, renderID string) {
	s.setSSEHeaders(w)

	consoleChan := make(chan ConsoleMessage, 50)
	rt := renderer.NewRaytracer(sceneObj, req.Width, req.Height, config, NewWebLogger(renderID, consoleChan))
	rt.SetTileCallback(func(progress renderer.TileProgress) {
		s.flushConsole(w, consoleChan)
		s.sendTileUpdate(w, progress)
	})

	img, stats, err := rt.RenderContext(r.Context())
	s.flushConsole(w, consoleChan)
	if err != nil {
		s.writeSSEEvent(w, SSEEvent{Type: "error", Data: err.Error()})
		return
	}

	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		s.writeSSEEvent(w, SSEEvent{Type: "error", Data: err.Error()})
		return
	}

	data, err := json.Marshal(RenderComplete{
		ImageData:       imageData,
		Width:           req.Width,
		Height:          req.Height,
		RenderTimeMs:    stats.Duration.Milliseconds(),
		PixelsPerSecond: stats.PixelsPerSecond(),
		Luminance:       renderer.CalculateAverageLuminance(img),
	})
	if err != nil {
		log.Printf("Error marshaling completion event: %v", err)
		return
	}
	s.writeSSEEvent(w, SSEEvent{Type: "complete", Data: string(data)})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvent writes one event and flushes it to the client
func (s *Server) writeSSEEvent(w http.ResponseWriter, event SSEEvent) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// flushConsole forwards pending console messages to the client and the shared console
func (s *Server) flushConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.console.Record(msg)
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}
			s.writeSSEEvent(w, SSEEvent{Type: "console", Data: string(data)})
		default:
			return
		}
	}
}

// sendTileUpdate encodes a finished tile and sends it as a tile event
func (s *Server) sendTileUpdate(w http.ResponseWriter, progress renderer.TileProgress) {
	bounds := progress.Tile.Bounds
	tileData, err := s.imageToBase64PNG(progress.Image.SubImage(bounds))
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", bounds.Min.X, bounds.Min.Y, err)
		return
	}

	data, err := json.Marshal(TileUpdate{
		TileX:      bounds.Min.X,
		TileY:      bounds.Min.Y,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		ImageData:  tileData,
		TileNumber: progress.Completed,
		TotalTiles: progress.Total,
	})
	if err != nil {
		log.Printf("Error marshaling tile update: %v", err)
		return
	}
	s.writeSSEEvent(w, SSEEvent{Type: "tile", Data: string(data)})
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
