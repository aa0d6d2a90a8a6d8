package pegstack

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

type Config map[string]*cfgVal

// NewConfig creates a new configuration object primed with all the
// default values expected by the interpreter.
func NewConfig() *Config {
	m := make(Config)
	// rule the run starts from
	m.SetString("vm.main", "main")
	// fail unless the whole input is consumed
	m.SetBool("vm.exact", true)
	// maximum amount of interpreter steps, zero means no limit
	m.SetInt("vm.limit", 0)
	// log one line per interpreter step
	m.SetBool("vm.debug", false)
	// colorize the debug trace with ANSI codes
	m.SetBool("vm.debug.colors", false)
	return &m
}

// Clone returns a copy of the configuration that can be changed
// without affecting `c`.
func (c *Config) Clone() *Config {
	m := make(Config, len(*c))
	for k, v := range *c {
		cp := *v
		m[k] = &cp
	}
	return &m
}

func (c *Config) String() string {
	keys := make([]string, 0, len(*c))
	width := 0
	for k := range *c {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	sort.Strings(keys)

	var s strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&s, "%-*s : %s\n", width, k, (*c)[k])
	}
	return s.String()
}

// Debug writes every setting and its value to `w`
func (c *Config) Debug(w io.Writer) {
	fmt.Fprintln(w, "Configuration")
	fmt.Fprint(w, c.String())
}

type cfgValType int

const (
	cfgValType_Undefined cfgValType = iota
	cfgValType_Bool
	cfgValType_Int
	cfgValType_String
)

func (vt cfgValType) String() string {
	return map[cfgValType]string{
		cfgValType_Undefined: "undefined",
		cfgValType_Bool:      "bool",
		cfgValType_Int:       "int",
		cfgValType_String:    "string",
	}[vt]
}

type cfgVal struct {
	typ      cfgValType
	asBool   bool
	asInt    int
	asString string
}

// assignType is mostly for preventing programming errors, it panics
// when a setting changes its type
func (v *cfgVal) assignType(vt cfgValType) {
	if v.typ != vt && v.typ != cfgValType_Undefined {
		panic(fmt.Sprintf("Can't assign `%s` to type `%s`", vt, v.typ))
	}
	v.typ = vt
}

func (v *cfgVal) checkType(vt cfgValType) {
	if v.typ != vt {
		panic(fmt.Sprintf("Can't retrieve `%s` from `%s` variable", vt, v.typ))
	}
}

func (v *cfgVal) String() string {
	switch v.typ {
	case cfgValType_Bool:
		return fmt.Sprintf("%t (bool)", v.asBool)
	case cfgValType_Int:
		return fmt.Sprintf("%d (int)", v.asInt)
	case cfgValType_String:
		return fmt.Sprintf("%s (string)", v.asString)
	case cfgValType_Undefined:
		return "(undefined)"
	default:
		panic(fmt.Sprintf("unknown cfgVal type: %v", v.typ))
	}
}

func (c *Config) value(path string) *cfgVal {
	if val, ok := (*c)[path]; ok {
		return val
	}
	val := &cfgVal{}
	(*c)[path] = val
	return val
}

func (c *Config) SetBool(path string, v bool) {
	val := c.value(path)
	val.assignType(cfgValType_Bool)
	val.asBool = v
}

func (c *Config) SetInt(path string, v int) {
	val := c.value(path)
	val.assignType(cfgValType_Int)
	val.asInt = v
}

func (c *Config) SetString(path string, v string) {
	val := c.value(path)
	val.assignType(cfgValType_String)
	val.asString = v
}

func (c *Config) GetBool(path string) bool {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Bool)
		return val.asBool
	}
	panic(fmt.Sprintf("Bool setting `%s` does not exist", path))
}

func (c *Config) GetInt(path string) int {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Int)
		return val.asInt
	}
	panic(fmt.Sprintf("Int setting `%s` does not exist", path))
}

func (c *Config) GetString(path string) string {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_String)
		return val.asString
	}
	panic(fmt.Sprintf("String setting `%s` does not exist", path))
}
