package server

import (
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	U            float64                `json:"u"`
	V            float64                `json:"v"`
	Color        [3]float64             `json:"color"` // Traced color before clamping, 0-255 scale
	Pixel        [3]uint8               `json:"pixel"` // Final pixel value
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult holds the primary hit through one pixel
type InspectResult struct {
	Hit     bool
	Surface geometry.Surface
	Record  *core.Intersection
	Color   core.Vec3
}

// inspectPixel casts the primary ray through pixel (x, y) and traces it like the renderer does
func inspectPixel(sceneObj *scene.Scene, width, height, maxDepth, pixelX, pixelY int) InspectResult {
	aspectRatio := float64(width) / float64(height)
	ray := sceneObj.Camera.GetRay(pixelX, pixelY, width, height, aspectRatio)

	result := InspectResult{Color: renderer.TraceRay(sceneObj, ray, 0, maxDepth)}
	result.Surface, result.Record, result.Hit = sceneObj.Intersect(ray)
	return result
}

// extractMaterialInfo describes the coefficients and maps of a material
func (s *Server) extractMaterialInfo(mat *material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color":        vecArray(mat.Color),
		"diffuse":      mat.DiffuseCoeff,
		"specular":     mat.SpecularCoeff,
		"glossiness":   mat.Glossiness,
		"reflectivity": mat.Reflectivity,
	}

	switch tex := mat.Texture.(type) {
	case nil:
	case *material.Checkerboard:
		properties["texture"] = map[string]interface{}{"type": "checkerboard", "dim": tex.Dim}
	case *material.ImageTexture:
		properties["texture"] = map[string]interface{}{"type": "image", "width": tex.Width, "height": tex.Height}
	default:
		properties["texture"] = map[string]interface{}{"type": "unknown"}
	}

	if mat.NormalMap != nil {
		properties["normalMap"] = mat.NormalMap.Params()
	}
	if mat.DisplacementMap != nil {
		properties["displacementMap"] = mat.DisplacementMap.Params()
	}

	return properties
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(surface geometry.Surface) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := surface.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties
	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
		return "plane", properties
	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.parseSceneRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, req.MaxDepth, pixelX, pixelY)

	r8, g8, b8 := result.Color.ToRGB()
	response := InspectResponse{
		Hit:   result.Hit,
		Color: vecArray(result.Color),
		Pixel: [3]uint8{r8, g8, b8},
	}
	if !result.Hit {
		writeJSON(w, http.StatusOK, response)
		return
	}

	geometryType, geometryProps := s.extractGeometryInfo(result.Surface)
	hit := result.Record
	response.GeometryType = geometryType
	response.Point = vecArray(hit.Point)
	response.Normal = vecArray(hit.Normal)
	response.Distance = hit.Dist
	response.U, response.V = hit.U, hit.V
	response.Properties = map[string]interface{}{
		"geometry": geometryProps,
	}
	if mat := result.Surface.GetMaterial(); mat != nil {
		response.Properties["material"] = s.extractMaterialInfo(mat)
	}

	writeJSON(w, http.StatusOK, response)
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
