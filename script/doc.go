// Package script implements an ops-pipeline document format: a
// YAML/JSON description of a sequence of ops.Op steps, each step naming
// an operation, its flags, and its arguments, with later steps able to
// reference an earlier step's result by name.
//
// The document shape (Config/Pipeline/Option, a name->constructor
// Registry, RegisterFlags on a *pflag.FlagSet) follows
// magicschema.Config/Generator directly, generalized from "YAML ->
// JSON Schema" to "ops pipeline document -> value.V".
package script
