// Package dataset loads chart data from files and stores named datasets.
//
// [Load] and [Read] accept JSON, CSV and XLSX. Bins may be numbers or date
// strings in any common layout (parsed with dateparse, in UTC); a dataset
// with date bins is a time series whose bins hold Unix milliseconds.
//
// [Store] persists datasets for the HTTP server. [MemoryStore] keeps them
// in process and [MongoStore] in a MongoDB collection with one document per
// dataset.
package dataset
