// Package game is the lane runner simulation: one State per run, advanced a
// frame at a time by Tick, and a Loop that hosts a run for a renderer or a
// network connection.
package game
