// Package render owns the raylib side of terrain streaming: it uploads built
// chunk meshes to the GPU and draws the resident models each frame.
package render

import (
	"fmt"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"silly-roads/internal/terrain"
)

// ChunkRenderer implements terrain.Uploader. Mesh buffers are copied into
// raylib-allocated memory so UnloadModel later frees the CPU and GPU sides
// together; nothing here retains Go slices past Upload.
type ChunkRenderer struct {
	models map[terrain.Coord]chunkModel
}

type chunkModel struct {
	model  rl.Model
	origin rl.Vector3
}

// NewChunkRenderer returns an empty renderer. The GL context must exist
// before the first Upload.
func NewChunkRenderer() *ChunkRenderer {
	return &ChunkRenderer{models: make(map[terrain.Coord]chunkModel)}
}

// Upload copies the mesh into raylib memory, uploads it to the GPU, and
// registers the resulting model at the chunk's world origin.
func (r *ChunkRenderer) Upload(c terrain.Coord, mesh *terrain.MeshData, originX, originZ float32) error {
	rm := rl.Mesh{
		VertexCount:   int32(mesh.VertexCount),
		TriangleCount: int32(mesh.TriangleCount),
	}
	rm.Vertices = copyToRaylib(mesh.Vertices)
	rm.Normals = copyToRaylib(mesh.Normals)
	rm.Texcoords = copyToRaylib(mesh.TexCoords)
	rm.Colors = copyToRaylib(mesh.Colors)
	rm.Indices = copyToRaylib(mesh.Indices)

	rl.UploadMesh(&rm, false)
	if rm.VaoID == 0 {
		return fmt.Errorf("GPU upload failed for chunk (%d, %d)", c.X, c.Z)
	}

	r.models[c] = chunkModel{
		model:  rl.LoadModelFromMesh(rm),
		origin: rl.NewVector3(originX, 0, originZ),
	}
	return nil
}

// Release unloads the chunk's model, freeing both the GPU buffers and the
// raylib-allocated CPU copies.
func (r *ChunkRenderer) Release(c terrain.Coord) {
	cm, ok := r.models[c]
	if !ok {
		return
	}
	rl.UnloadModel(cm.model)
	delete(r.models, c)
}

// Draw renders every resident chunk at its world offset. Must run between
// BeginMode3D and EndMode3D.
func (r *ChunkRenderer) Draw() {
	for _, cm := range r.models {
		rl.DrawModel(cm.model, cm.origin, 1, rl.White)
	}
}

// Close releases every remaining model. Call before the window is destroyed.
func (r *ChunkRenderer) Close() {
	for c := range r.models {
		r.Release(c)
	}
}

// copyToRaylib clones a Go buffer into raylib's allocator so raylib owns its
// lifetime from here on.
func copyToRaylib[T float32 | uint8 | uint16](src []T) *T {
	if len(src) == 0 {
		return nil
	}
	var zero T
	ptr := rl.MemAlloc(uint32(len(src)) * uint32(unsafe.Sizeof(zero)))
	dst := unsafe.Slice((*T)(ptr), len(src))
	copy(dst, src)
	return (*T)(ptr)
}
