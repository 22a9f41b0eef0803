// SPDX-License-Identifier: MPL-2.0

// Package manifest parses and validates cabinet.toml: package identity,
// editions, dependency declarations, build profiles, and lint filters.
package manifest
