// Package commands wires the postfeed CLI: the terminal browser, a headless
// fetch loop, todo management and the metrics endpoint.
package commands
