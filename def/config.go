package def

import (
	"regexp"
)

/*
	WorkunitConfig describes one workunit orchestration run.

	Clients maps role strings (or the literal "all") to ordered lists
	of workunit selectors.  Branch, Tag, and Sha1 pick the version of
	the workunit tree to fetch; at most one is normally given, and the
	precedence when several are present is branch > tag > sha1.
*/
type WorkunitConfig struct {
	Clients map[string][]string `json:"clients"`
	Branch  string              `json:"branch"`
	Tag     string              `json:"tag"`
	Sha1    string              `json:"sha1"`
	Timeout string              `json:"timeout"` // e.g. "3h"; "0" disables the bound
	Env     map[string]string   `json:"env"`
	Python  string              `json:"python"` // "2" or "3"; explicit interpreter dispatch
	Subdir  string              `json:"subdir"`
}

const (
	// Symbolic head ref used when no branch/tag/sha1 was configured.
	DefaultRefspec = "HEAD"

	// Per-workunit execution bound applied when none was configured.
	DefaultTimeout = "3h"
)

// Refspec resolves which ref to fetch: branch beats tag beats sha1,
// falling back to the symbolic head.
func (c *WorkunitConfig) Refspec() string {
	switch {
	case c.Branch != "":
		return c.Branch
	case c.Tag != "":
		return c.Tag
	case c.Sha1 != "":
		return c.Sha1
	default:
		return DefaultRefspec
	}
}

// ResolvedTimeout applies the default.  "0" comes back verbatim; the
// runner treats it as "no bound".
func (c *WorkunitConfig) ResolvedTimeout() string {
	if c.Timeout == "" {
		return DefaultTimeout
	}
	return c.Timeout
}

/*
	ApplyOverrides merges another config over this one.

	Mutates the original (and returns it for chaining).  Scalar fields
	are replaced when the override sets them; the Env and Clients maps
	are merged key-wise with the override winning on conflicts.
*/
func (c *WorkunitConfig) ApplyOverrides(o WorkunitConfig) *WorkunitConfig {
	if o.Branch != "" {
		c.Branch = o.Branch
	}
	if o.Tag != "" {
		c.Tag = o.Tag
	}
	if o.Sha1 != "" {
		c.Sha1 = o.Sha1
	}
	if o.Timeout != "" {
		c.Timeout = o.Timeout
	}
	if o.Python != "" {
		c.Python = o.Python
	}
	if o.Subdir != "" {
		c.Subdir = o.Subdir
	}
	if o.Env != nil {
		if c.Env == nil {
			c.Env = map[string]string{}
		}
		for k, v := range o.Env {
			c.Env[k] = v
		}
	}
	if o.Clients != nil {
		if c.Clients == nil {
			c.Clients = map[string][]string{}
		}
		for k, v := range o.Clients {
			c.Clients[k] = v
		}
	}
	return c
}

var timeoutPattern = regexp.MustCompile(`^[0-9]+[smhd]$`)

/*
	Validate checks a workunit config for irrecoverable errors.

	All of these fire before any remote interaction: a config that
	fails here has cost nothing but the time to read it.
*/
func (c *WorkunitConfig) Validate() {
	if len(c.Clients) == 0 {
		panic(ValidationError.New("configuration must contain a dictionary of clients"))
	}
	if c.Python != "" && c.Python != "2" && c.Python != "3" {
		panic(ValidationError.New("python version %q is not valid (want \"2\" or \"3\")", c.Python))
	}
	if c.Timeout != "" && c.Timeout != "0" && !timeoutPattern.MatchString(c.Timeout) {
		panic(ValidationError.New("timeout %q is not valid (want <number><s|m|h|d>, or \"0\" to disable)", c.Timeout))
	}
	for role := range c.Clients {
		if role == "all" {
			continue
		}
		Role(role).ClientID()
	}
}
