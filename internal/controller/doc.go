// Package controller drives a running HWP word processor: it owns the
// automation session and the typing context, and turns high-level
// requests (text, equations, boxes, tables, templates, images,
// placeholders) into command cascades.
//
// A Controller is not safe for concurrent use.
package controller
