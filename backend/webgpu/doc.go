// Package webgpu maps display list rendering modes to WebGPU pipeline state.
//
// It holds no device. A GPU Canvas implementation uses it to pick the
// fixed-function blend state for a paint's blend mode and the sampler
// configuration for images and image color sources:
//
//	if state, ok := webgpu.BlendState(paint.BlendMode); ok {
//		target.Blend = &state
//	} else {
//		// Advanced blend modes read the destination in a shader.
//	}
//
// Blend states assume premultiplied color, matching
// gputypes.BlendStatePremultiplied for SrcOver.
package webgpu
