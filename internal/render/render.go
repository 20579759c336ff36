// Package render is the raylib adapter for the procedural kernels: it
// uploads mcubes meshes to the GPU, owns the lit materials, and draws
// particle emitters from their instance buffers. All conversion between the
// kernels' neutral value types and raylib types happens here; the kernels
// never see a raylib type.
package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"strata/internal/mcubes"
	"strata/internal/particles"
)

// maxMeshVertices is raylib's index limit: mesh indices are unsigned shorts.
const maxMeshVertices = 1 << 16

// MeshHandle owns a GPU-uploaded mesh and the Go-side buffers backing it.
// The handle must outlive every draw call that uses it: raylib reads the
// vertex arrays from these slices.
type MeshHandle struct {
	mesh     rl.Mesh
	vertices []float32
	normals  []float32
	indices  []uint16
}

// Renderer holds the shared lit material and per-frame view state.
// GPU resources are created lazily on first use, after the window and GL
// context exist.
type Renderer struct {
	viewPos  [3]float32
	lightDir [3]float32

	litMtl   rl.Material
	litReady bool

	particleMesh  rl.Mesh
	particleMtl   rl.Material
	particleReady bool
}

// New returns a renderer with the default light direction (from above-right).
func New() *Renderer {
	return &Renderer{lightDir: [3]float32{0.5, 1, 0.5}}
}

// SetView sets the camera position and direction-to-light for this frame.
// Call once per frame before drawing so lit surfaces get correct shading.
func (r *Renderer) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// Upload copies an mcubes mesh into a raylib mesh and uploads it to the GPU.
// Must be called after the window exists. Meshes above the 16-bit index
// limit are rejected; generate at a lower resolution or in chunks.
func (r *Renderer) Upload(m *mcubes.Mesh) (*MeshHandle, error) {
	if m == nil || m.VertexCount() == 0 {
		return nil, fmt.Errorf("render: empty mesh")
	}
	if m.VertexCount() >= maxMeshVertices {
		return nil, fmt.Errorf("render: mesh has %d vertices, raylib indices are 16-bit (max %d)", m.VertexCount(), maxMeshVertices-1)
	}

	h := &MeshHandle{
		vertices: make([]float32, len(m.Positions)),
		normals:  make([]float32, len(m.Normals)),
		indices:  make([]uint16, len(m.Indices)),
	}
	copy(h.vertices, m.Positions)
	copy(h.normals, m.Normals)
	for i, idx := range m.Indices {
		h.indices[i] = uint16(idx)
	}

	h.mesh = rl.Mesh{
		VertexCount:   int32(m.VertexCount()),
		TriangleCount: int32(m.TriangleCount()),
	}
	h.mesh.Vertices = &h.vertices[0]
	h.mesh.Normals = &h.normals[0]
	h.mesh.Indices = &h.indices[0]
	rl.UploadMesh(&h.mesh, false)
	return h, nil
}

// DrawMesh draws an uploaded mesh with the shared lit material at the given
// position. Must be called between BeginMode3D and EndMode3D.
func (r *Renderer) DrawMesh(h *MeshHandle, position [3]float32, tint rl.Color) {
	r.ensureLit()
	if albedo := r.litMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setLitUniforms(r.litMtl.Shader)
	transform := rl.MatrixTranslate(position[0], position[1], position[2])
	rl.DrawMesh(h.mesh, r.litMtl, transform)
}

// DrawEmitter draws every active particle of the emitter using its instance
// buffers: one small billboard-ish quad per particle, transform from the
// kernel, tint interpolated to transparent over the particle's age.
// palette maps the kernel's color indices to colors; empty palette draws white.
// Must be called between BeginMode3D and EndMode3D.
func (r *Renderer) DrawEmitter(e *particles.Emitter, palette []rl.Color) {
	r.ensureParticle()
	transforms := e.Transforms()
	instances := e.Instances()
	for i := range transforms {
		inst := instances[i]
		tint := rl.White
		if len(palette) > 0 {
			tint = palette[int(inst.ColorIndex)%len(palette)]
		}
		// Fade out over the lifetime; the kernel supplies the age fraction.
		tint.A = uint8(float32(tint.A) * (1 - inst.AgeFraction))
		if albedo := r.particleMtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = tint
		}
		rl.DrawMesh(r.particleMesh, r.particleMtl, toRlMatrix(transforms[i]))
	}
}

// toRlMatrix converts a column-major mgl32 matrix to raylib's matrix struct.
func toRlMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// ensureLit creates the lit material on first use.
func (r *Renderer) ensureLit() {
	if r.litReady {
		return
	}
	r.litMtl = rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		r.litMtl.Shader = shader
	}
	r.litReady = true
}

// ensureParticle creates the shared particle quad and unlit material on first use.
func (r *Renderer) ensureParticle() {
	if r.particleReady {
		return
	}
	// Unit plane; per-particle scale comes from the kernel's transform.
	r.particleMesh = rl.GenMeshPlane(1, 1, 1, 1)
	r.particleMtl = rl.LoadMaterialDefault()
	r.particleReady = true
}

// setLitUniforms pushes viewPos, lightDir, and the fixed light terms
// (cgo-safe: local arrays).
func (r *Renderer) setLitUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := defaultAmbient
	lightColor := defaultLightColor
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
}

// defaultAmbient is dim so shadowed terrain isn't pure black.
var defaultAmbient = [4]float32{0.2, 0.22, 0.26, 1.0}

// defaultLightColor is a soft warm white.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

// defaultLightIntensity scales the directional diffuse term.
const defaultLightIntensity = float32(0.8)

// Directional light + ambient, same vertex attributes as raylib meshes.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  finalColor = vec4(amb + diffuse, colDiffuse.a);
}
`
)
