//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/quad"
	"github.com/gogpu/quad/shader"
)

// Config holds pipeline configuration.
type Config struct {
	// Format is the color attachment format the pipeline renders to.
	// Default: BGRA8Unorm.
	Format gputypes.TextureFormat

	// SampleCount is the MSAA sample count. Default: 1.
	SampleCount uint32

	// Caps selects the generator profile for the shader source and the
	// binding layout. Default: shader.NativeCaps().
	Caps shader.Caps
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Format:      gputypes.TextureFormatBGRA8Unorm,
		SampleCount: 1,
		Caps:        shader.NativeCaps(),
	}
}

// Pipeline owns the GPU objects of the quad render pipeline: shader
// module, bind group layouts (one per logical binding group), pipeline
// layout, render pipeline, and the default sampler.
type Pipeline struct {
	device hal.Device
	queue  hal.Queue
	config Config
	layout shader.Layout

	shader      hal.ShaderModule
	groupLayout []hal.BindGroupLayout
	pipeLayout  hal.PipelineLayout
	pipeline    hal.RenderPipeline
	sampler     hal.Sampler
}

// NewPipeline compiles the generated quad shader and creates the render
// pipeline for the given configuration.
func NewPipeline(device hal.Device, queue hal.Queue, cfg Config) (*Pipeline, error) {
	p := &Pipeline{
		device: device,
		queue:  queue,
		config: cfg,
		layout: shader.BindingLayout(cfg.Caps),
	}
	if err := p.create(); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

// create builds all GPU objects. The bind group layouts are derived from
// the same declarative layout the shader generator consumed.
func (p *Pipeline) create() error {
	source := shader.WGSL(p.config.Caps)

	module, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "quad_shader",
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return fmt.Errorf("compile quad shader: %w", err)
	}
	p.shader = module

	for _, group := range p.layout.Groups() {
		bgl, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("quad_group%d_layout", group),
			Entries: groupLayoutEntries(p.layout, group),
		})
		if err != nil {
			return fmt.Errorf("create bind group layout %d: %w", group, err)
		}
		p.groupLayout = append(p.groupLayout, bgl)
	}

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "quad_pipe_layout",
		BindGroupLayouts: p.groupLayout,
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "quad_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}
	p.sampler = sampler

	blend := alphaBlend()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "quad_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.config.Format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: p.config.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create quad pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times.
func (p *Pipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	for _, bgl := range p.groupLayout {
		if bgl != nil {
			p.device.DestroyBindGroupLayout(bgl)
		}
	}
	p.groupLayout = nil
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// groupLayoutEntries converts one logical binding group of the
// declarative layout into bind group layout entries. The transform
// uniform is vertex-stage only; texture and sampler are fragment-stage.
func groupLayoutEntries(layout shader.Layout, group uint32) []gputypes.BindGroupLayoutEntry {
	var entries []gputypes.BindGroupLayoutEntry
	for _, b := range layout.Bindings {
		if b.Group != group {
			continue
		}
		entry := gputypes.BindGroupLayoutEntry{Binding: b.Index}
		switch b.Kind {
		case shader.BindingUniform:
			entry.Visibility = gputypes.ShaderStageVertex
			entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
		case shader.BindingTexture:
			entry.Visibility = gputypes.ShaderStageFragment
			entry.Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		case shader.BindingSampler:
			entry.Visibility = gputypes.ShaderStageFragment
			entry.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
		}
		entries = append(entries, entry)
	}
	return entries
}

// vertexLayout returns the vertex buffer layout. Matches VertexInput in
// the generated shaders:
//
//	location 0: position  (vec2<f32>)
//	location 1: tex_coord (vec2<f32>)
//	location 2: color     (u32)
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quad.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: quad.PositionOffset, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: quad.TexCoordOffset, ShaderLocation: 1},
				{Format: gputypes.VertexFormatUint32, Offset: quad.ColorOffset, ShaderLocation: 2},
			},
		},
	}
}

// alphaBlend returns the src-alpha / one-minus-src-alpha blend state the
// calling renderer is expected to pair with straight-alpha vertex colors.
func alphaBlend() gputypes.BlendState {
	component := gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorSrcAlpha,
		DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		Operation: gputypes.BlendOperationAdd,
	}
	return gputypes.BlendState{
		Color: component,
		Alpha: component,
	}
}
