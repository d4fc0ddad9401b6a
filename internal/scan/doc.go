// Package scan discovers source tracks under the music directory and orders
// them into the sequence the combined output is built from: modification
// time ascending, then numeric-aware path order for identical timestamps.
package scan
