// Package orgs lays out and draws the radial orgs chart.
//
// Every org is a disc placed down the page, alternating left and right.
// Roles are concentric rings, the first role outermost. On each ring the
// left half shows the years-of-experience distribution and the right half
// the salary distribution, both as radial areas whose thickness is the
// share of respondents. Below, a bar arc per role shows primary and
// secondary counts with the total at its end.
package orgs
