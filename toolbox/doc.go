// Package toolbox maintains a catalog of callable tools for agent
// orchestration.
//
// Includes:
//   - Tool: one registered unit (name, source path, schema document, optional
//     source text, tags, optional handler).
//   - Registry: name- and tag-indexed store with idempotent registration and
//     YAML schema persistence.
//   - Resolve: turns a mixed list of names, tags, and filesystem paths into a
//     concrete tool set, triggering discovery for path entries.
//   - Invariants: a registered name is never overwritten or removed; the tag
//     index never holds a tool absent from the primary store.
package toolbox
