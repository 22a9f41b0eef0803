// SPDX-License-Identifier: MPL-2.0

// Package depinstall resolves a manifest's Git, Path, and System
// dependencies into compiler and linker flags: cloning/checking out Git
// sources, recursively installing sibling Path projects, and shelling out
// to pkg-config for System libraries.
package depinstall
