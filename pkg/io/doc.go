// Package io reads and writes timetables as JSON, YAML or TOML documents.
//
// All three formats share one document shape:
//
//	name = "Valley line"
//
//	[[stations]]
//	id = "A"
//	name = "Aberdale"
//	km = 0.0
//	tracks = ["1", "2"]
//
//	[[trains]]
//	id = "RB 12"
//
//	[[trains.stops]]
//	station = "A"
//	track = "2"
//	depart = "08:02"
//
//	[[trains.stops]]
//	station = "B"
//	pass = "08:09"
//
// A station without tracks gets a single track "1". A stop without a track
// uses the first track of its station. A stop with pass becomes a passage;
// otherwise arrive and depart become an arrival and a departure, and either
// may be omitted. Times are "HH:MM" or "HH:MM:SS" since the start of the
// service day; hours past 23 continue into the next day.
//
// [Read] validates the decoded timetable before returning it. [Write]
// produces a document that reads back into an equivalent timetable, which
// also makes its JSON output a canonical form for cache keys.
package io
