// SPDX-License-Identifier: MPL-2.0

// Package config loads cabinet's small global configuration file (cache
// root override, default parallelism, color mode) from a
// platform-conventional directory, adapted from the teacher's CUE-based
// loader to the TOML format cabinet.toml itself uses.
package config
