// Package stroke converts stroked paths into the filled outlines they cover.
//
// A stroke becomes a fill path made of two offset paths: the forward path
// offset by -width/2 along the normal and the backward path offset by
// +width/2. For an open subpath the forward path is followed by the end cap,
// the reversed backward path and the start cap. A closed subpath yields two
// closed loops instead, one per side.
//
// Curves are flattened to polylines within the expander tolerance before
// offsetting, so the expanded outline deviates from the exact offset curve
// by at most that tolerance.
//
// Zero-length subpaths that contain a drawing command are painted as a dot
// for round caps and as an axis-aligned square for square caps; butt caps
// paint nothing.
//
// The algorithm follows tiny-skia (path/src/stroker.rs) and kurbo
// (src/stroke.rs).
package stroke
