package def

/*
	LFNConfig drives the long-filename object check: for each
	combination of namespace and name length, synthesize NumObjects
	object names of exactly that length and walk them through a strict
	create, verify, delete, verify-absent sequence against a pool.
*/
type LFNConfig struct {
	Pool       string   `json:"pool"`
	Prefix     string   `json:"prefix"`
	Namespace  []string `json:"namespace"`
	NumObjects int      `json:"num_objects"`
	NameLength []int    `json:"name_length"`
}

// ParseLFNYaml reads an LFNConfig from yaml, via the same serial
// bounce the workunit config uses.
func ParseLFNYaml(ser []byte) *LFNConfig {
	var cfg LFNConfig
	bounce(ser, &cfg, "pool", "prefix")
	return &cfg
}

// Rectify fills defaults for anything unset.  Modifies the config.
func (c *LFNConfig) Rectify() {
	if c.Pool == "" {
		c.Pool = "data"
	}
	if len(c.Namespace) == 0 {
		c.Namespace = []string{""}
	}
	if c.NumObjects == 0 {
		c.NumObjects = 10
	}
	if len(c.NameLength) == 0 {
		c.NameLength = []int{400}
	}
}
