// Package analysis computes offline level and spectral statistics of
// rendered audio: peak, RMS, crest factor, DC offset, spectral centroid and
// harmonic distortion of a test tone.
package analysis
