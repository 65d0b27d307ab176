// Package program provides named coroutine programs used as executable
// fixtures by the CLI, the scenario runner, and the integration tests.
//
// Each constructor returns an engine.Definition; RegisterAll installs the
// whole set on a runtime under stable names:
//
//	data-consumer  two suspension points, completes with "result"
//	counter        yields 0..4
//	fibonacci      infinite Fibonacci sequence
//	inner          yields "a", "b"; returns "inner-done"
//	outer          yields "x", delegates to inner, yields "y"
//	recoverer      handles a thrown failure at its first yield
package program
