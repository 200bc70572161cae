// Package export renders saved trails to image files: a hand-written SVG
// path document, or any format gonum/plot can save.
package export
