// Package rules contains the built-in lint rules.
//
// Rules register themselves with lint.DefaultRegistry during init(), so
// importing this package (usually blank-imported by the caller) is enough
// to make every built-in rule available.
package rules
