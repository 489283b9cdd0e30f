// Package answers holds the Configuration Model: the validated, immutable set
// of choices an operator makes before a site is generated. Values are collected
// through a Builder whose setters validate and normalize input; Build returns
// the finished Answers only when every field has been set exactly once.
//
// Answers can also be loaded from a YAML file validated against an embedded
// JSON Schema, which lets a plan be produced without an interactive session.
package answers
