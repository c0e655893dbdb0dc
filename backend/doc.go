// Package backend defines the Canvas contract that display lists are played
// back into, and a registry of Canvas implementations.
//
// A dispatcher (see package dispatch) turns display list ops into Canvas
// calls, resolving list attributes into a Paint per draw. Implementations
// register themselves by name from init, following the database/sql driver
// pattern:
//
//	import _ "github.com/gogpu/displaylist/backend/raster"
//
//	c, err := backend.NewCanvas("raster", 800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Shadows
//
// DrawShadow takes already resolved ambient and spot colors. Dispatchers
// compute them with ComputeTonalColors, which keeps the ambient shadow grey
// and tints the spot shadow by the luminance of its color.
//
// # Available Canvases
//
//   - "raster": CPU rendering with gg coverage (package backend/raster)
//
// Package backend/webgpu maps display list blend, tile and sampling modes
// to WebGPU pipeline state for GPU implementations.
package backend
