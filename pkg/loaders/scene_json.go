package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Errors returned while building a scene from a description, matched with errors.Is
var (
	ErrMaterialNotFound   = errors.New("material not found")
	ErrTextureNotFound    = errors.New("texture not found")
	ErrUnsupportedSurface = errors.New("unsupported surface type")
	ErrUnsupportedTexture = errors.New("unsupported texture type")
)

// vec3JSON is a vector written as a three-element array
type vec3JSON [3]float64

func (v vec3JSON) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneFile is the JSON scene description
type SceneFile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`

	Camera       *CameraCfg             `json:"camera"`
	AmbientCoeff float64                `json:"ambient_coeff"`
	AmbientColor *vec3JSON              `json:"ambient_color"` // Defaults to white
	Settings     *SettingsCfg           `json:"settings"`
	Textures     map[string]TextureCfg  `json:"textures"`
	Materials    map[string]MaterialCfg `json:"materials"`
	Surfaces     []SurfaceCfg           `json:"surfaces"`
	Lights       []LightCfg             `json:"lights"`
}

// CameraCfg places the camera. Exactly one of LookAt or Dir is used, LookAt first.
type CameraCfg struct {
	Pos    vec3JSON  `json:"pos"`
	LookAt *vec3JSON `json:"lookat"`
	Dir    *vec3JSON `json:"dir"`
	Up     *vec3JSON `json:"up"` // Defaults to +Y
}

// SettingsCfg overrides the scene's recommended render settings
type SettingsCfg struct {
	Width    int  `json:"width"`
	Height   int  `json:"height"`
	MaxDepth *int `json:"max_depth"`
}

// TextureCfg describes a named texture
type TextureCfg struct {
	Type string  `json:"type"` // "checkerboard" or "image"
	Dim  float64 `json:"dim"`  // checkerboard
	Path string  `json:"path"` // image, relative to the scene file
}

// MaterialCfg describes a named material
type MaterialCfg struct {
	Color           vec3JSON        `json:"color"`
	Diffuse         float64         `json:"diffuse"`
	Specular        float64         `json:"specular"`
	Glossiness      float64         `json:"glossiness"`
	Reflectivity    float64         `json:"reflectivity"`
	Texture         string          `json:"texture"`
	NormalMap       json.RawMessage `json:"normal_map"`       // Noise parameters, unset fields take defaults
	DisplacementMap json.RawMessage `json:"displacement_map"` // Noise parameters, unset fields take defaults
}

// SurfaceCfg describes one surface
type SurfaceCfg struct {
	Type     string    `json:"type"` // "sphere" or "plane"
	Material string    `json:"material"`
	Center   *vec3JSON `json:"center"` // sphere
	Radius   float64   `json:"radius"` // sphere
	Point    *vec3JSON `json:"point"`  // plane
	Normal   *vec3JSON `json:"normal"` // plane
}

// LightCfg describes a point light
type LightCfg struct {
	Position  vec3JSON  `json:"position"`
	Color     *vec3JSON `json:"color"` // Defaults to white
	Intensity float64   `json:"intensity"`
}

// LoadScene reads a JSON scene file. Image texture paths are resolved
// against the directory of the scene file.
func LoadScene(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file, filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ParseScene decodes a JSON scene description and builds the scene.
// All textures are loaded before it returns.
func ParseScene(reader io.Reader, baseDir string) (*scene.Scene, error) {
	var desc SceneFile
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return BuildScene(&desc, baseDir)
}

// BuildScene resolves the named textures and materials of desc and builds the scene
func BuildScene(desc *SceneFile, baseDir string) (*scene.Scene, error) {
	camera, err := buildCamera(desc.Camera)
	if err != nil {
		return nil, err
	}

	// Textures are loaded once and shared by every material naming them
	textures := make(map[string]material.Texture, len(desc.Textures))
	for name, cfg := range desc.Textures {
		tex, err := buildTexture(cfg, baseDir)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
		textures[name] = tex
	}

	materials := make(map[string]*material.Material, len(desc.Materials))
	for name, cfg := range desc.Materials {
		mat, err := buildMaterial(cfg, textures)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	surfaces := make([]geometry.Surface, 0, len(desc.Surfaces))
	for i, cfg := range desc.Surfaces {
		surface, err := buildSurface(cfg, materials)
		if err != nil {
			return nil, fmt.Errorf("surface %d: %w", i, err)
		}
		surfaces = append(surfaces, surface)
	}

	ambientColor := core.NewVec3(255, 255, 255)
	if desc.AmbientColor != nil {
		ambientColor = desc.AmbientColor.vec()
	}

	s := scene.NewScene(surfaces, nil, desc.AmbientCoeff, ambientColor, camera)
	for _, light := range desc.Lights {
		color := core.NewVec3(255, 255, 255)
		if light.Color != nil {
			color = light.Color.vec()
		}
		s.AddPointLight(light.Position.vec(), color, light.Intensity)
	}

	if desc.Settings != nil {
		if err := applySettings(&s.Settings, desc.Settings); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func buildCamera(cfg *CameraCfg) (*geometry.Camera, error) {
	if cfg == nil {
		return nil, fmt.Errorf("scene has no camera")
	}

	up := core.NewVec3(0, 1, 0)
	if cfg.Up != nil {
		up = cfg.Up.vec()
	}

	switch {
	case cfg.LookAt != nil:
		return geometry.NewCameraLookAt(cfg.Pos.vec(), cfg.LookAt.vec(), up), nil
	case cfg.Dir != nil:
		return geometry.NewCamera(cfg.Pos.vec(), cfg.Dir.vec(), up), nil
	default:
		return nil, fmt.Errorf("camera needs either lookat or dir")
	}
}

func buildTexture(cfg TextureCfg, baseDir string) (material.Texture, error) {
	switch strings.ToLower(cfg.Type) {
	case "checkerboard":
		if cfg.Dim <= 0 {
			return nil, fmt.Errorf("checkerboard dim must be positive, got %g", cfg.Dim)
		}
		return material.NewCheckerboard(cfg.Dim), nil
	case "image":
		if cfg.Path == "" {
			return nil, fmt.Errorf("image texture needs a path")
		}
		path := cfg.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		return LoadImageTexture(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTexture, cfg.Type)
	}
}

func buildMaterial(cfg MaterialCfg, textures map[string]material.Texture) (*material.Material, error) {
	mat := material.NewMaterial(cfg.Color.vec(), cfg.Diffuse, cfg.Specular, cfg.Glossiness, cfg.Reflectivity)

	if cfg.Texture != "" {
		tex, ok := textures[cfg.Texture]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrTextureNotFound, cfg.Texture)
		}
		mat.Texture = tex
	}

	if len(cfg.NormalMap) > 0 {
		params, err := parseNoiseParams(cfg.NormalMap)
		if err != nil {
			return nil, fmt.Errorf("normal_map: %w", err)
		}
		mat.NormalMap = material.NewNormalMap(params)
	}

	if len(cfg.DisplacementMap) > 0 {
		params, err := parseNoiseParams(cfg.DisplacementMap)
		if err != nil {
			return nil, fmt.Errorf("displacement_map: %w", err)
		}
		mat.DisplacementMap = material.NewDisplacementMap(params)
	}

	return mat, nil
}

// parseNoiseParams decodes noise parameters over the defaults
func parseNoiseParams(raw json.RawMessage) (material.NoiseParams, error) {
	params := material.DefaultNoiseParams()
	if err := json.Unmarshal(raw, &params); err != nil {
		return params, err
	}
	if params.Octaves < 1 {
		return params, fmt.Errorf("octaves must be at least 1, got %d", params.Octaves)
	}
	if params.Wavelength <= 0 {
		return params, fmt.Errorf("wavelength must be positive, got %g", params.Wavelength)
	}
	return params, nil
}

func buildSurface(cfg SurfaceCfg, materials map[string]*material.Material) (geometry.Surface, error) {
	mat, ok := materials[cfg.Material]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMaterialNotFound, cfg.Material)
	}

	switch strings.ToLower(cfg.Type) {
	case "sphere":
		if cfg.Center == nil {
			return nil, fmt.Errorf("sphere needs a center")
		}
		if cfg.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %g", cfg.Radius)
		}
		return geometry.NewSphere(cfg.Center.vec(), cfg.Radius, mat), nil
	case "plane":
		if cfg.Point == nil || cfg.Normal == nil {
			return nil, fmt.Errorf("plane needs a point and a normal")
		}
		if cfg.Normal.vec().LengthSquared() == 0 {
			return nil, fmt.Errorf("plane normal must be non-zero")
		}
		return geometry.NewPlane(cfg.Point.vec(), cfg.Normal.vec(), mat), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSurface, cfg.Type)
	}
}

func applySettings(settings *scene.RenderSettings, cfg *SettingsCfg) error {
	if cfg.Width < 0 || cfg.Height < 0 {
		return fmt.Errorf("settings: width and height must not be negative")
	}
	if cfg.Width > 0 {
		settings.Width = cfg.Width
	}
	if cfg.Height > 0 {
		settings.Height = cfg.Height
	}
	if cfg.MaxDepth != nil {
		if *cfg.MaxDepth < 0 {
			return fmt.Errorf("settings: max_depth must not be negative")
		}
		settings.MaxDepth = *cfg.MaxDepth
	}
	return nil
}
