// Package search locates the element of a sorted sequence closest to a query.
//
// Spectra are sampled on a discrete, ascending axis (channel energies), so a
// query such as "the channel at 661.7 keV" almost never matches a sample
// exactly. The functions here return the index of the closest sample instead:
//
//   - [Nearest]:       flat []float64 sorted ascending
//   - [NearestKey]:    records sorted by a key extracted with a function
//   - [NearestColumn]: rows sorted by the value at a fixed column
//
// Ties between two equally close samples resolve to the lower index.
// Inputs shorter than five elements are scanned linearly; longer inputs are
// narrowed by a bounds-clamped binary search in O(log n).
package search
