// Package imaging prepares raster images for insertion: it validates and
// decodes source files, crops by fractional rectangles, downscales with
// Catmull-Rom resampling and stores the result as a temporary PNG.
package imaging
