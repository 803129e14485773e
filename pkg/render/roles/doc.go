// Package roles lays out and draws the cartesian roles chart.
//
// Roles sit on a horizontal axis as circles sized by respondent count. Below
// each circle, two mirrored areas show how experience is distributed for
// primary (left) and secondary (right) respondents. Above, org boxes are
// joined to the roles they employ by curved links.
//
// Layout and drawing are separate steps, as for the other charts:
//
//	l, err := roles.Build(ds, cfg.Roles)
//	doc := roles.Render(l, roles.WithTheme(cfg.Theme))
//
// Either input table may be missing: without role records only the org row
// and links are drawn, without the connect table only the roles.
package roles
