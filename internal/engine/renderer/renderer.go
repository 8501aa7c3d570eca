// Package renderer draws the globe scene with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/engine/shader"
	"github.com/Faultbox/midgard-globe/internal/scene"
)

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;

void main() {
	vNormal = mat3(uModel) * normalize(aPos);
	gl_Position = uProjection * uView * uModel * vec4(aPos, 1.0);
}
`

const fragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec3 uColor;
uniform vec3 uLightDir;

out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
	FragColor = vec4(uColor * (0.35 + 0.65 * diffuse), 1.0);
}
`

// defaultLight shines from over the viewer's left shoulder.
var defaultLight = mgl32.Vec3{-0.4, -0.3, -1}

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background mgl32.Vec3
}

// mesh is an uploaded Geometry.
type mesh struct {
	name  string
	vao   uint32
	vbo   uint32
	ebo   uint32
	count int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	log     *zap.Logger
	program *shader.Program
	meshes  []mesh
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{config: cfg, log: log}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.MULTISAMPLE)
	bg := cfg.Background
	gl.ClearColor(bg.X(), bg.Y(), bg.Z(), 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.New(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	r.meshes = nil
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles framebuffer resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Uploaded reports whether scene geometry has been sent to the GPU.
func (r *Renderer) Uploaded() bool { return len(r.meshes) > 0 }

// Upload sends the scene meshes to the GPU. Ocean and regions share one
// vertex layout: a position that doubles as the normal.
func (r *Renderer) Upload(geometry []scene.Geometry) {
	for _, g := range geometry {
		if len(g.Vertices) == 0 || len(g.Indices) == 0 {
			continue
		}
		m := mesh{name: g.Name, count: int32(len(g.Indices))}

		gl.GenVertexArrays(1, &m.vao)
		gl.BindVertexArray(m.vao)

		gl.GenBuffers(1, &m.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*3*4, unsafe.Pointer(&g.Vertices[0]), gl.STATIC_DRAW)

		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
		gl.EnableVertexAttribArray(0)

		gl.BindVertexArray(0)
		r.meshes = append(r.meshes, m)
	}
	r.log.Debug("scene uploaded", zap.Int("meshes", len(r.meshes)))
}

// Frame is everything needed to draw one frame.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Model      mgl32.Mat4
	// LightDir is the world-space direction light travels in. Zero selects
	// the fixed lamp.
	LightDir mgl32.Vec3
	// Color returns the colour of the mesh called name.
	Color func(name string) mgl32.Vec3
}

// Draw clears the screen and draws every uploaded mesh.
func (r *Renderer) Draw(f Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if len(r.meshes) == 0 {
		return
	}

	r.program.Use()
	r.program.SetMat4("uView", f.View)
	r.program.SetMat4("uProjection", f.Projection)
	r.program.SetMat4("uModel", f.Model)
	light := f.LightDir
	if light.Len() == 0 {
		light = defaultLight
	}
	r.program.SetVec3("uLightDir", light.Normalize())

	for _, m := range r.meshes {
		r.program.SetVec3("uColor", f.Color(m.name))
		gl.BindVertexArray(m.vao)
		gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

// ReadPixels reads back the drawn frame as RGBA, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
