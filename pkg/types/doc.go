// Package types defines the geometry primitives, the closed Shape union,
// the Repository interface, and the standard error types for the clevis
// shape editor.
//
// Shapes are always handled through pointers. A Group holds the same
// pointers that the repository's name map holds, so moving a grouped member
// is visible through every path that still names it.
package types
