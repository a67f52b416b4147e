// Package scene holds the retained drawing model a chart renders into.
//
// A [Surface] is a fixed-size canvas with an inner offset (the chart
// margins). It owns named [Layer]s of rectangular [Shape]s and any number of
// [Axis] generators. Charts never draw directly: they compute the desired
// shapes for a data set and hand them to [Layer.Apply], which joins them
// against the shapes already present by key.
//
// # Data Join
//
// [Join] splits two key sequences into entering, retained and exiting keys.
// Apply uses it to create entering shapes, update retained ones and drop
// exiting ones. When a [Transition] is supplied, retained shapes remember
// their previous geometry in [Shape.From] so that sinks can animate the
// change; without one the new geometry simply replaces the old.
//
// # Transitions
//
// Transitions are declarative. A [Transition] carries a duration and an
// easing function; [Transition.Sample] produces eased progress values that a
// sink turns into keyframes, and [Interpolate] computes intermediate
// rectangles.
//
// Surfaces are plain values: [Surface.Clone] returns a deep copy that can be
// serialized while the owning chart keeps rendering.
package scene
