// Package survey defines the view-model records behind the survey charts and
// reads them from JSON.
//
// A dataset is split across three files, any of which may be absent:
//
//   - yoe.json: []Role, one record per role with per-primary experience
//     distributions. Drives the roles chart.
//   - connect.json: a [Connect] node/link table of org to role flows.
//     Drives the link layer of the roles chart and the network chart.
//   - metrics.json: []Org, the same roles grouped per org with salary
//     distributions and aggregate bars. Drives the orgs chart.
//
// Records are identified by array position only; the iRole and iOrg fields
// are layout indices, not keys. Values are taken as-is: the charts do not
// validate that percentages sum to one or that indices are dense.
//
// The primary flag appears as a JSON bool or as the strings "True"/"False"
// depending on the exporter, so [Flag] accepts both.
package survey
