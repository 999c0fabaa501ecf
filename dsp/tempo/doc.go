// Package tempo maps host tempo and transport position to barber-pole
// rotation rates and phases.
//
// Rates are expressed in cycles per beat. The table holds 61 entries:
// triplet, straight and dotted variants of ten note values in both
// directions around a central "freeze" entry. A note value X names a period
// of X times eight beats, so "1/8" turns once per beat and "1/64T" turns
// twelve times per beat; the "-" variants turn backwards.
package tempo
