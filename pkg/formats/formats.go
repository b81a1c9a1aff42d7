// Package formats reads and writes the files a scenario is exchanged in:
// semantic bitmaps, route and collision point lists, and draw.io diagrams.
package formats
