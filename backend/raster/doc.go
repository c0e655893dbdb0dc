// Package raster is the CPU canvas backend.
//
// Importing the package registers the canvas as "raster":
//
//	import _ "github.com/gogpu/displaylist/backend/raster"
//
//	c, err := backend.NewCanvas("raster", 800, 600)
//
// or create one directly with NewCanvas and read the result with Image,
// EncodePNG or SavePNG.
//
// Path coverage comes from gg's software rasterizer. Clipping, layers and
// all 29 blend modes are applied by the canvas in premultiplied float
// precision and stored back as straight 8-bit RGBA.
//
// # Limitations
//
//   - Transforms are 2D affine; perspective terms are dropped.
//   - Text is drawn at the mapped origin without scale or rotation.
//   - Matrix image filters are ignored. Blur, dilate, erode, color filter
//     and compose filters are supported.
//   - Shadows never cut out the occluder.
//
// Unsupported features are reported at debug level through
// displaylist.Logger.
package raster
