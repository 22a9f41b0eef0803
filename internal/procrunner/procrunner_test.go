// SPDX-License-Identifier: MPL-2.0

package procrunner

import (
	"context"
	"os"
	"testing"
)

func TestRunSuccess(t *testing.T) {
	t.Parallel()
	res, err := Run(context.Background(), Command{Path: "true"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Status.Success() {
		t.Errorf("expected success, got %s", res.Status)
	}
}

func TestRunCapturesOutput(t *testing.T) {
	t.Parallel()
	res, err := Run(context.Background(), Command{Path: "echo", Args: []string{"hello"}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stdout != "hello\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "hello\n")
	}
}

func TestRunCheckedFailure(t *testing.T) {
	t.Parallel()
	_, err := RunChecked(context.Background(), Command{Path: "false"})
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
	var subErr *SubprocessError
	if !asSubprocessError(err, &subErr) {
		t.Fatalf("expected *SubprocessError, got %T: %v", err, err)
	}
	if subErr.Status.Code != 1 {
		t.Errorf("Code = %d, want 1", subErr.Status.Code)
	}
}

func asSubprocessError(err error, target **SubprocessError) bool {
	if se, ok := err.(*SubprocessError); ok {
		*target = se
		return true
	}
	return false
}

func TestMergeEnvOverridesAndAppends(t *testing.T) {
	t.Setenv("CABINET_TEST_VAR", "inherited")
	merged := mergeEnv([]string{"CABINET_TEST_VAR=explicit", "CABINET_NEW_VAR=1"})

	var sawExplicit, sawNew bool
	for _, kv := range merged {
		if kv == "CABINET_TEST_VAR=explicit" {
			sawExplicit = true
		}
		if kv == "CABINET_NEW_VAR=1" {
			sawNew = true
		}
		if kv == "CABINET_TEST_VAR=inherited" {
			t.Fatalf("inherited value should have been dropped: %v", merged)
		}
	}
	if !sawExplicit || !sawNew {
		t.Errorf("merged env missing explicit entries: %v", merged)
	}
	_ = os.Environ
}
