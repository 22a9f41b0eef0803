// SPDX-License-Identifier: MPL-2.0

package main

import "testing"

func TestDependencyTOMLShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func()
		want    string
		wantErr bool
	}{
		{
			name: "git without target",
			setup: func() {
				addGit, addRev, addTag, addBranch, addPath, addSystem, addVer, addDev = "https://example.com/fmt.git", "", "", "", "", false, "", false
			},
			want: "[dependencies.fmt]\ngit = \"https://example.com/fmt.git\"\n",
		},
		{
			name: "git with rev",
			setup: func() {
				addGit, addRev, addTag, addBranch, addPath, addSystem, addVer, addDev = "https://example.com/fmt.git", "abc123", "", "", "", false, "", false
			},
			want: "[dependencies.fmt]\ngit = \"https://example.com/fmt.git\"\nrev = \"abc123\"\n",
		},
		{
			name: "path dependency under dev-dependencies",
			setup: func() {
				addGit, addRev, addTag, addBranch, addPath, addSystem, addVer, addDev = "", "", "", "", "../fmt", false, "", true
			},
			want: "[dev-dependencies.fmt]\npath = \"../fmt\"\n",
		},
		{
			name: "system dependency requires version",
			setup: func() {
				addGit, addRev, addTag, addBranch, addPath, addSystem, addVer, addDev = "", "", "", "", "", true, "", false
			},
			wantErr: true,
		},
		{
			name: "system dependency with version",
			setup: func() {
				addGit, addRev, addTag, addBranch, addPath, addSystem, addVer, addDev = "", "", "", "", "", true, ">=1.0.0", false
			},
			want: "[dependencies.fmt]\nsystem = true\nversion = \">=1.0.0\"\n",
		},
		{
			name: "no shape selected",
			setup: func() {
				addGit, addRev, addTag, addBranch, addPath, addSystem, addVer, addDev = "", "", "", "", "", false, "", false
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			// Not t.Parallel(): mutates the package-level add* flag vars.
			tt.setup()
			got, err := dependencyTOML("fmt")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("dependencyTOML() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("dependencyTOML(): %v", err)
			}
			if got != tt.want {
				t.Errorf("dependencyTOML() = %q, want %q", got, tt.want)
			}
		})
	}
}
