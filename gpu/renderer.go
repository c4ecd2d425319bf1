//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/quad"
	"github.com/gogpu/quad/shader"
)

// TextureID identifies a texture registered with a renderer. IDs are
// never reused within a renderer's lifetime.
type TextureID uint32

// ErrTextureNotFound is returned when a draw command references an
// unregistered or removed texture.
var ErrTextureNotFound = errors.New("quad-gpu: texture not found")

// ErrTextureDataSize is returned when texel data does not match the
// declared dimensions.
var ErrTextureDataSize = errors.New("quad-gpu: texel data size mismatch")

// ScissorRect is a clip rectangle in framebuffer pixels.
type ScissorRect struct {
	X, Y          uint32
	Width, Height uint32
}

// DrawCommand is one batched quad draw: a contiguous index range drawn
// with one texture and an optional scissor rectangle.
type DrawCommand struct {
	Texture    TextureID
	IndexStart uint32
	IndexCount uint32

	// Scissor clips the draw when non-nil. Nil leaves the previous
	// scissor state untouched.
	Scissor *ScissorRect
}

// Mesh holds uploaded vertex and index buffers for one frame's quads.
type Mesh struct {
	vertexBuf  hal.Buffer
	indexBuf   hal.Buffer
	indexCount uint32
}

// IndexCount returns the number of uploaded indices.
func (m *Mesh) IndexCount() uint32 { return m.indexCount }

// texEntry is one registered texture with its per-texture bind group.
type texEntry struct {
	texture hal.Texture
	view    hal.TextureView
	bind    hal.BindGroup
}

// Renderer owns a quad pipeline, the transform uniform, and a texture
// registry, and records draws into a caller-provided render pass.
type Renderer struct {
	dev        *Device
	ownsDevice bool
	pipeline   *Pipeline

	uniformBuf hal.Buffer

	// uniformBind is the texture-independent bind group. Nil when the
	// layout is unified: then every bind group references a texture and
	// lives in the registry.
	uniformBind hal.BindGroup

	textures map[TextureID]*texEntry
	nextID   TextureID
}

// NewRenderer creates a renderer on an already opened device.
func NewRenderer(dev *Device, cfg Config) (*Renderer, error) {
	pipeline, err := NewPipeline(dev.Device, dev.Queue, cfg)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		dev:      dev,
		pipeline: pipeline,
		textures: make(map[TextureID]*texEntry),
		nextID:   1,
	}
	if err := r.createUniform(); err != nil {
		r.Close()
		return nil, err
	}

	quad.Logger().Info("quad renderer created",
		"format", cfg.Format,
		"unifiedBindings", cfg.Caps.UnifiedBindings)

	return r, nil
}

// NewRendererFromProvider creates a renderer on a device shared by a
// host application. The provider must implement gpucontext.HalProvider.
func NewRendererFromProvider(provider any, cfg Config) (*Renderer, error) {
	dev, err := deviceFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return NewRenderer(dev, cfg)
}

// OpenRenderer opens a standalone device and creates a renderer on it.
// Close releases the device too.
func OpenRenderer(cfg Config) (*Renderer, error) {
	dev, err := OpenDevice()
	if err != nil {
		return nil, err
	}
	r, err := NewRenderer(dev, cfg)
	if err != nil {
		dev.Close()
		return nil, err
	}
	r.ownsDevice = true
	return r, nil
}

// createUniform allocates the transform uniform buffer, seeds it with
// the identity matrix, and builds the texture-independent bind group if
// the layout has one.
func (r *Renderer) createUniform() error {
	buf, err := r.dev.Device.CreateBuffer(&hal.BufferDescriptor{
		Label: "quad_transform",
		Size:  quad.TransformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create transform buffer: %w", err)
	}
	r.uniformBuf = buf

	m := quad.Identity()
	r.dev.Queue.WriteBuffer(buf, 0, m.Bytes())

	if r.pipeline.config.Caps.UnifiedBindings {
		return nil
	}

	bind, err := r.dev.Device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "quad_transform_bind",
		Layout: r.pipeline.groupLayout[0],
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: quad.TransformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create transform bind group: %w", err)
	}
	r.uniformBind = bind

	return nil
}

// SetTransform uploads the projection matrix. Typically quad.Ortho of
// the current surface size, set once per resize rather than per frame.
func (r *Renderer) SetTransform(m quad.Mat4) {
	r.dev.Queue.WriteBuffer(r.uniformBuf, 0, m.Bytes())
}

// AddTextureRGBA8 uploads RGBA8 texel data (row-major, 4 bytes per
// texel) and registers it for use in draw commands.
func (r *Renderer) AddTextureRGBA8(width, height uint32, texels []byte) (TextureID, error) {
	if uint32(len(texels)) != width*height*4 {
		return 0, fmt.Errorf("%w: %dx%d needs %d bytes, got %d",
			ErrTextureDataSize, width, height, width*height*4, len(texels))
	}

	tex, err := r.dev.Device.CreateTexture(&hal.TextureDescriptor{
		Label: "quad_texture",
		Size: hal.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return 0, fmt.Errorf("create texture: %w", err)
	}

	r.dev.Queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{},
			Aspect:   gputypes.TextureAspectAll,
		},
		texels,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&hal.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := r.dev.Device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "quad_texture_view",
	})
	if err != nil {
		r.dev.Device.DestroyTexture(tex)
		return 0, fmt.Errorf("create texture view: %w", err)
	}

	bind, err := r.createTextureBindGroup(view)
	if err != nil {
		r.dev.Device.DestroyTextureView(view)
		r.dev.Device.DestroyTexture(tex)
		return 0, err
	}

	id := r.nextID
	r.nextID++
	r.textures[id] = &texEntry{texture: tex, view: view, bind: bind}

	quad.Logger().Debug("texture registered", "id", id, "width", width, "height", height)

	return id, nil
}

// createTextureBindGroup builds the bind group of the layout group that
// contains the texture. With split bindings that is group 1 (texture +
// sampler); with unified bindings it is group 0 and also carries the
// transform uniform.
func (r *Renderer) createTextureBindGroup(view hal.TextureView) (hal.BindGroup, error) {
	layout := r.pipeline.layout
	texBinding, _ := layout.Find(shader.BindingTexture)

	var entries []gputypes.BindGroupEntry
	for _, b := range layout.Bindings {
		if b.Group != texBinding.Group {
			continue
		}
		entry := gputypes.BindGroupEntry{Binding: b.Index}
		switch b.Kind {
		case shader.BindingUniform:
			entry.Resource = gputypes.BufferBinding{
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: quad.TransformSize,
			}
		case shader.BindingTexture:
			entry.Resource = gputypes.TextureViewBinding{TextureView: view.NativeHandle()}
		case shader.BindingSampler:
			entry.Resource = gputypes.SamplerBinding{Sampler: r.pipeline.sampler.NativeHandle()}
		}
		entries = append(entries, entry)
	}

	bind, err := r.dev.Device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "quad_texture_bind",
		Layout:  r.pipeline.groupLayout[texBinding.Group],
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture bind group: %w", err)
	}
	return bind, nil
}

// RemoveTexture unregisters a texture and releases its GPU resources.
// Removing an unknown ID is a no-op.
func (r *Renderer) RemoveTexture(id TextureID) {
	entry, ok := r.textures[id]
	if !ok {
		return
	}
	delete(r.textures, id)
	r.dev.Device.DestroyBindGroup(entry.bind)
	r.dev.Device.DestroyTextureView(entry.view)
	r.dev.Device.DestroyTexture(entry.texture)
}

// UploadMesh packs vertices and indices into GPU buffers. The caller
// destroys the mesh with DestroyMesh once the frame's command buffer
// has been submitted.
func (r *Renderer) UploadMesh(vertices []quad.Vertex, indices []uint16) (*Mesh, error) {
	vertexData := quad.BuildVertexData(vertices)
	indexData := quad.BuildIndexData(indices)

	vertBuf, err := r.dev.Device.CreateBuffer(&hal.BufferDescriptor{
		Label: "quad_vertices",
		Size:  uint64(len(vertexData)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}
	r.dev.Queue.WriteBuffer(vertBuf, 0, vertexData)

	idxBuf, err := r.dev.Device.CreateBuffer(&hal.BufferDescriptor{
		Label: "quad_indices",
		Size:  uint64(len(indexData)),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		r.dev.Device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create index buffer: %w", err)
	}
	r.dev.Queue.WriteBuffer(idxBuf, 0, indexData)

	return &Mesh{
		vertexBuf:  vertBuf,
		indexBuf:   idxBuf,
		indexCount: uint32(len(indices)),
	}, nil
}

// DestroyMesh releases a mesh's buffers.
func (r *Renderer) DestroyMesh(m *Mesh) {
	if m == nil {
		return
	}
	if m.indexBuf != nil {
		r.dev.Device.DestroyBuffer(m.indexBuf)
		m.indexBuf = nil
	}
	if m.vertexBuf != nil {
		r.dev.Device.DestroyBuffer(m.vertexBuf)
		m.vertexBuf = nil
	}
}

// RecordDraws records the draw commands into an already begun render
// pass. Pipeline, transform, and mesh buffers are bound once; the
// texture bind group and scissor change per command.
func (r *Renderer) RecordDraws(rp hal.RenderPassEncoder, mesh *Mesh, commands []DrawCommand) error {
	if mesh == nil || mesh.indexCount == 0 || len(commands) == 0 {
		return nil
	}

	rp.SetPipeline(r.pipeline.pipeline)
	if r.uniformBind != nil {
		rp.SetBindGroup(0, r.uniformBind, nil)
	}
	rp.SetVertexBuffer(0, mesh.vertexBuf, 0)
	rp.SetIndexBuffer(mesh.indexBuf, gputypes.IndexFormatUint16, 0)

	texBinding, _ := r.pipeline.layout.Find(shader.BindingTexture)

	for _, cmd := range commands {
		entry, ok := r.textures[cmd.Texture]
		if !ok {
			return fmt.Errorf("%w: id %d", ErrTextureNotFound, cmd.Texture)
		}
		if cmd.Scissor != nil {
			rp.SetScissorRect(cmd.Scissor.X, cmd.Scissor.Y, cmd.Scissor.Width, cmd.Scissor.Height)
		}
		rp.SetBindGroup(texBinding.Group, entry.bind, nil)
		rp.DrawIndexed(cmd.IndexCount, 1, cmd.IndexStart, 0, 0)
	}

	return nil
}

// Close releases all renderer resources: registered textures, the
// uniform, the pipeline, and the device when the renderer opened it.
func (r *Renderer) Close() {
	for id := range r.textures {
		r.RemoveTexture(id)
	}
	if r.uniformBind != nil {
		r.dev.Device.DestroyBindGroup(r.uniformBind)
		r.uniformBind = nil
	}
	if r.uniformBuf != nil {
		r.dev.Device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.pipeline != nil {
		r.pipeline.Destroy()
		r.pipeline = nil
	}
	if r.ownsDevice {
		r.dev.Close()
		r.ownsDevice = false
	}
}
