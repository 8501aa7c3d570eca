// Package scene is the reference globe scene graph: an ocean sphere plus
// one surface patch per entity region, built in the background.
package scene

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-globe/internal/catalog"
	"github.com/Faultbox/midgard-globe/internal/engine/camera"
	"github.com/Faultbox/midgard-globe/internal/globe/picking"
)

// Options controls tessellation and picking.
type Options struct {
	Background   string  // ocean mesh name
	OceanRadius  float32 // globe radius
	RegionRadius float32 // regions float just above the ocean
	Stacks       int
	Slices       int
	Rings        int
	Segments     int
	// TrianglePicking hit-tests regions against their tessellation instead
	// of the analytic cap.
	TrianglePicking bool
}

// DefaultOptions returns the stock tessellation.
func DefaultOptions() Options {
	return Options{
		Background:   "Ocean",
		OceanRadius:  1,
		RegionRadius: 1.005,
		Stacks:       48,
		Slices:       96,
		Rings:        8,
		Segments:     48,
	}
}

// Scene holds the globe's meshes, its orientation and the camera. Load
// runs on a background goroutine; every other method belongs to the frame
// loop.
type Scene struct {
	opts Options
	cam  *camera.GlobeCamera
	log  *zap.Logger
	rot  mgl32.Quat

	loaded   atomic.Bool
	meshes   []picking.Mesh
	geometry []Geometry
	regions  []Region
}

// New creates an empty scene viewed through cam.
func New(cam *camera.GlobeCamera, opts Options, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		opts: opts,
		cam:  cam,
		log:  log,
		rot:  mgl32.QuatIdent(),
	}
}

// Load builds the ocean and the entity regions in parallel. The scene
// reports Loaded only once everything is built.
func (s *Scene) Load(ctx context.Context, entities []catalog.Entity) error {
	if s.loaded.Load() {
		return fmt.Errorf("scene already loaded")
	}
	regions := Regions(entities)

	meshes := make([]picking.Mesh, len(regions)+1)
	geometry := make([]Geometry, len(regions)+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	g.Go(func() error {
		meshes[0] = &picking.Sphere{Label: s.opts.Background, Radius: s.opts.OceanRadius}
		geometry[0] = UVSphere(s.opts.Background, s.opts.OceanRadius, s.opts.Stacks, s.opts.Slices)
		return nil
	})
	for i, r := range regions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, geo, err := s.buildRegion(r)
			if err != nil {
				return fmt.Errorf("region %s: %w", r.ID, err)
			}
			meshes[i+1], geometry[i+1] = m, geo
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	s.meshes = meshes
	s.geometry = geometry
	s.regions = regions
	s.loaded.Store(true)

	var vertices int
	for _, geo := range geometry {
		vertices += len(geo.Vertices)
	}
	s.log.Info("scene loaded",
		zap.Int("regions", len(regions)),
		zap.Int("skipped", len(entities)-len(regions)),
		zap.Int("vertices", vertices))
	return nil
}

func (s *Scene) buildRegion(r Region) (picking.Mesh, Geometry, error) {
	axis := r.Axis()
	if axis.Len() < 0.5 {
		return nil, Geometry{}, fmt.Errorf("degenerate axis %v", axis)
	}
	geo := CapGeometry(r.ID, axis, r.Angle(), s.opts.RegionRadius, s.opts.Rings, s.opts.Segments)
	if s.opts.TrianglePicking {
		return picking.NewTriangleMesh(r.ID, geo.Triangles()), geo, nil
	}
	return &picking.Cap{Label: r.ID, Axis: axis, Angle: r.Angle(), Radius: s.opts.RegionRadius}, geo, nil
}

// Loaded reports whether Load has finished.
func (s *Scene) Loaded() bool { return s.loaded.Load() }

// SetOrientation sets the globe rotation.
func (s *Scene) SetOrientation(q mgl32.Quat) { s.rot = q }

// SetCameraDistance moves the camera.
func (s *Scene) SetCameraDistance(d float32) { s.cam.SetDistance(d) }

// ViewProjection returns the camera matrices.
func (s *Scene) ViewProjection() (mgl32.Mat4, mgl32.Mat4) {
	return s.cam.ViewMatrix(), s.cam.ProjectionMatrix()
}

// Model returns the globe transform.
func (s *Scene) Model() mgl32.Mat4 { return s.rot.Mat4() }

// Walk visits the selectable meshes, ocean first.
func (s *Scene) Walk(visit func(picking.Mesh) bool) {
	if !s.loaded.Load() {
		return
	}
	for _, m := range s.meshes {
		if !visit(m) {
			return
		}
	}
}

// Geometry returns the built meshes for rendering, or nil before Load
// finishes.
func (s *Scene) Geometry() []Geometry {
	if !s.loaded.Load() {
		return nil
	}
	return s.geometry
}

// Regions returns the entity regions, or nil before Load finishes.
func (s *Scene) Regions() []Region {
	if !s.loaded.Load() {
		return nil
	}
	return s.regions
}

// Camera returns the scene camera.
func (s *Scene) Camera() *camera.GlobeCamera { return s.cam }
