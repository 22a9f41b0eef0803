// SPDX-License-Identifier: MPL-2.0

// Command cabinet is the CLI front-end: a thin cobra+fang driver over the
// manifest/dependency-installer/source-graph/build-config-emitter core.
package main

func main() {
	Execute()
}
