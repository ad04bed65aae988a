// Package model describes a spectrum as a smooth background plus discrete
// peaks.
//
// Every component is a parameterised function of the x-axis (usually
// energy). A fitting routine only needs the small contract shared by all
// components: how many parameters a component has, how to replace them, and
// what the component contributes at a set of x values. [Peak] adds the area
// under the component.
//
// Components own their parameter vectors. They are mutated only through
// UpdateParams, which replaces all values at once or, on a length mismatch,
// none of them. Instances are not safe for concurrent mutation; independent
// fits must use independent instances.
//
// A [Decomposition] is one [Background] plus zero or more peaks. It lays the
// members' parameters out end to end, background first, so a fitter can work
// with one flat vector.
package model
