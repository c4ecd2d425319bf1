//go:build !nogpu

// Package gpu provides the wgpu/hal plumbing around the quad shading
// core: render pipeline construction, bind groups, texture registry,
// and draw recording.
//
// The bind group layouts are built from the same declarative
// shader.BindingLayout the generators consume, so pipeline resources and
// shader text cannot drift apart. The pipeline ships the generated WGSL
// by default; callers targeting the legacy SPIR-V ingestion path can
// select it through Config.Caps.
//
// A device can be shared from a host application through any provider
// implementing gpucontext.HalProvider (see NewRendererFromProvider), or
// opened standalone with OpenDevice.
package gpu
