package def

import (
	"bytes"
	"strconv"

	"github.com/spacemonkeygo/errors"
	"github.com/ugorji/go/codec"
	yaml "gopkg.in/yaml.v2"
)

var codecBounceHandler = &codec.CborHandle{}

/*
	ParseWorkunitYaml reads a workunit task config from yaml.

	The serial form is bounced through a temporary cbor intermediate:
	the yaml library hands back untyped maps, and the codec library has
	no mechanism to decode from an in-memory tree, so we re-encode and
	let the struct-aware decoder do the real mapping.
*/
func ParseWorkunitYaml(ser []byte) *WorkunitConfig {
	var cfg WorkunitConfig
	bounce(ser, &cfg, "timeout", "python", "branch", "tag", "sha1")
	return &cfg
}

func bounce(ser []byte, target interface{}, scalarKeys ...string) {
	// Turn tabs into spaces so that tabs are acceptable inputs.
	ser = tab2space(ser)
	var raw interface{}
	if err := yaml.Unmarshal(ser, &raw); err != nil {
		panic(ParseError.New("could not parse config: %s", errors.GetMessage(err)))
	}
	raw = stringifyMapKeys(raw)
	if top, ok := raw.(map[string]interface{}); ok {
		stringifyScalars(top, scalarKeys)
	}
	var buf bytes.Buffer
	if err := codec.NewEncoder(&buf, codecBounceHandler).Encode(raw); err != nil {
		panic(ParseError.New("could not parse config: %s", errors.GetMessage(err)))
	}
	if err := codec.NewDecoder(&buf, codecBounceHandler).Decode(target); err != nil {
		panic(ParseError.New("could not parse config: %s", errors.GetMessage(err)))
	}
}

// Yaml types bare scalars aggressively ("timeout: 0" comes back as an
// int, "python: 3" too).  These fields are strings to us; coerce them
// before the strict decode sees them.
func stringifyScalars(m map[string]interface{}, keys []string) {
	for _, k := range keys {
		switch v := m[k].(type) {
		case int:
			m[k] = strconv.Itoa(v)
		case int64:
			m[k] = strconv.FormatInt(v, 10)
		case float64:
			m[k] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			// "timeout: false" is the yaml speller's way of disabling it.
			if v {
				panic(ParseError.New("option %q cannot be 'true'", k))
			}
			m[k] = "0"
		}
	}
}

// The yaml library produces map[interface{}]interface{}, which the
// cbor encoder will take but the struct decoder can't line up with
// string-keyed fields.  Rewrite keys, recursively.
func stringifyMapKeys(value interface{}) interface{} {
	switch value := value.(type) {
	case map[interface{}]interface{}:
		next := make(map[string]interface{}, len(value))
		for k, v := range value {
			key, ok := k.(string)
			if !ok {
				panic(ParseError.New("config mapping keys must be strings (got %v)", k))
			}
			next[key] = stringifyMapKeys(v)
		}
		return next
	case []interface{}:
		for i := 0; i < len(value); i++ {
			value[i] = stringifyMapKeys(value[i])
		}
		return value
	default:
		return value
	}
}

// Leading tabs become double spaces so tab-indented documents are
// acceptable input.  Ascii transform, line by line.
func tab2space(x []byte) []byte {
	lines := bytes.Split(x, []byte{'\n'})
	var buf bytes.Buffer
	for i, line := range lines {
		n := 0
		for n < len(line) && line[n] == '\t' {
			buf.WriteString("  ")
			n++
		}
		buf.Write(line[n:])
		if i != len(lines)-1 {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}
