// SPDX-License-Identifier: MPL-2.0

// Package buildgraph turns a resolved manifest, an aggregated dependency
// flag set, and a discovered source graph into an emittable BuildConfig: a
// topologically ordered set of Make variables and targets, rendered either
// as a Makefile or as a compile_commands.json compilation database.
package buildgraph
