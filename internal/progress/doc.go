// Package progress renders executor transitions for people and logs.
package progress
