// Package server serves datasets and their live bar charts over HTTP.
//
// Each stored dataset gets a live chart that is created on first request.
// Replacing a dataset with PUT runs an animated update on that chart, so a
// subsequent chart.svg shows bars entering, moving and leaving. Every update
// gets a new revision, which doubles as the ETag of the chart endpoints and
// as part of the chart cache key.
//
// Routes:
//
//	GET    /healthz
//	GET    /datasets
//	GET    /datasets/{name}
//	PUT    /datasets/{name}
//	DELETE /datasets/{name}
//	GET    /datasets/{name}/chart.{svg,json,html}
//	GET    /datasets/{name}/nearest?x=
package server
