// Package markup serializes area and tree layouts into TikZ pictures for a
// LaTeX document pipeline. It performs no geometry of its own beyond
// midpoints and label placement.
package markup
