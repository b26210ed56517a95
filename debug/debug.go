// Package debug provides env-gated debug logging and a tree renderer
// for MML documents.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse     bool
	Query     bool
	Fragments bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("MML_DEBUG_PARSE")
	d.Query = boolEnv("MML_DEBUG_QUERY")
	d.Fragments = boolEnv("MML_DEBUG_FRAGMENTS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Query() bool {
	return d.Query
}
func Fragments() bool {
	return d.Fragments
}
