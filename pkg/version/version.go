package version

import (
	"fmt"

	"github.com/carlmjohnson/versioninfo"
)

/* injected */

var release string

/* ** */

type GitInfo struct {
	Commit string `json:"commit"`
	Dirty  bool   `json:"dirty"`
}

type Info struct {
	Release string  `json:"release"`
	Git     GitInfo `json:"git"`
}

func (i Info) String() string {
	dirty := ""
	if i.Git.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("iwdscan %s (%s%s)", i.Release, i.Git.Commit, dirty)
}

func Get() Info {
	r := release
	if r == "" {
		r = versioninfo.Version
	}
	if r == "" {
		r = "unknown"
	}

	return Info{
		Release: r,
		Git: GitInfo{
			Commit: versioninfo.Revision,
			Dirty:  versioninfo.DirtyBuild,
		},
	}
}
