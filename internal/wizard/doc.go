// Package wizard drives the multi-step document capture flow against the
// SEI upstreams.
//
// A session walks a fixed sequence of steps: search (pick managing unit,
// document type and reference date), select (choose pending integration
// records), metadata (attach department, observation, file name and access
// level) and finalize (optional block/annotation note), ending closed. Every
// remote call that depends on the user's fiscal id refuses to run until
// identity resolution has produced one.
package wizard
