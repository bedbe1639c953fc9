// Package stitchboard is an interactive image-composition board for
// [Ebitengine].
//
// Pictures are placed on an infinite board, moved, resized, reordered,
// deformed with a quad mesh, snapped edge to edge, stitched into rows or
// columns, and exported as one flat image.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	board := stitchboard.NewBoard(stitchboard.Rect{Width: 1280, Height: 800})
//	board.LoadFile("a.png")
//	board.LoadFile("b.png")
//	stitchboard.Run(board, stitchboard.RunConfig{
//		Title: "Stitch", Width: 1280, Height: 800,
//	})
//
// Files dropped onto the window are loaded as a batch.
//
// # Headless use
//
// Every operation is available without a window. Pointer input goes through
// [Interaction.Handle], a single transition function over [PointerEvent]
// values in screen space:
//
//	in := stitchboard.NewInteraction(board)
//	for _, ev := range stitchboard.DragEvents(100, 100, 300, 120, 8, stitchboard.MouseButtonLeft, 0) {
//		in.Handle(ev)
//	}
//	board.Exec(stitchboard.CmdStitchHorizontal)
//	img, err := board.Export()
//
// # Coordinates
//
// World units are board units; the [Camera] maps the world point (X, Y) to
// the centre of its viewport and scales by Zoom. Screen-space tolerances
// (handle sizes, snap distance) are divided by the zoom before hit-testing.
//
// # Deformation
//
// Each [Picture] carries four corner offsets and four edge-midpoint offsets.
// [Surface] maps the unit square onto the warped shape; rendering and export
// subdivide it into textured triangles ([BuildMesh]).
//
// # Undo
//
// Gestures and geometry commands push one [Snapshot] before their first
// change, so [Board.Undo] reverts a whole drag at once. Adding and deleting
// pictures is not undoable.
//
// # Logging
//
// stitchboard is silent by default. Call [SetLogger] with a [log/slog]
// logger to see picture lifecycle, stitch and export events.
//
// [Ebitengine]: https://ebitengine.org
package stitchboard
