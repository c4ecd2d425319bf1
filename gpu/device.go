//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/quad"
)

// DeviceHandle is the integration seam for host applications that own
// the GPU device. The host implements gpucontext.DeviceProvider and
// hands it to NewRendererFromProvider; the renderer never creates a
// competing device. For direct HAL access the provider must also
// implement HalDevice() any and HalQueue() any returning hal.Device
// and hal.Queue.
type DeviceHandle = gpucontext.DeviceProvider

// Device bundles an opened hal device/queue pair with the instance that
// owns it, when the renderer opened the device itself.
type Device struct {
	Device hal.Device
	Queue  hal.Queue

	// instance is non-nil only for self-opened devices.
	instance hal.Instance
}

// OpenDevice opens a standalone GPU device through the Vulkan HAL
// backend, preferring discrete over integrated adapters. Use this only
// when no host application device is available to share.
func OpenDevice() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	quad.Logger().Info("GPU device opened", "adapter", selected.Info.Name)

	return &Device{
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		instance: instance,
	}, nil
}

// Close destroys the device and, for self-opened devices, the instance.
// Safe to call on a device obtained from a provider: shared devices are
// left untouched.
func (d *Device) Close() {
	if d.instance == nil {
		return
	}
	if d.Device != nil {
		d.Device.Destroy()
		d.Device = nil
		d.Queue = nil
	}
	d.instance.Destroy()
	d.instance = nil
}

// deviceFromProvider extracts the HAL device/queue pair from a host
// provider. The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func deviceFromProvider(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("quad-gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("quad-gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("quad-gpu: provider HalQueue is not hal.Queue")
	}
	return &Device{Device: device, Queue: queue}, nil
}
