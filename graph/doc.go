// Package graph lays out and draws a smoothed line graph.
//
// A Chart maps a series of points onto two milestone axes, insets the
// drawable area so that labels and markers fit on the canvas, joins
// consecutive points with horizontal-tangent cubic Bezier segments and fills
// the area below them. Drawing goes through the Surface interface so the
// same geometry can be rendered by Gio or into an image.
//
// Nothing is cached between renders and every function is safe to call
// from multiple goroutines on distinct values.
package graph
