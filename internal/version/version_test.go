package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	origCommit, origDate := Commit, Date
	t.Cleanup(func() { Commit, Date = origCommit, origDate })

	Commit, Date = "0123456789abcdef", "2025-01-02T03:04:05Z"
	s := String()
	if !strings.HasPrefix(s, "colorfinder version ") {
		t.Errorf("String() = %q", s)
	}
	if !strings.Contains(s, "commit: 01234567,") {
		t.Errorf("commit should be shortened: %q", s)
	}

	Commit = "abc"
	if !strings.Contains(String(), "commit: abc,") {
		t.Errorf("short commits should be kept: %q", String())
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if info.GoVersion == "" || info.Platform == "" {
		t.Errorf("GetInfo() = %+v", info)
	}
	if Short() == "" {
		t.Error("Short() is empty")
	}
}
