// Package placeholders parses query templates that mark bound parameters with
// {…} placeholders, e.g.
//
//	SELECT * FROM users WHERE id = {id} AND org IN ({orgs+})
//
// A placeholder body is empty ({} takes the next implicit position), a 1-based
// position ({2}) or a name ({id}), optionally followed by a Kleene quantifier:
// ? for zero or one value, * for zero or more, + for one or more.
//
// Text inside '…', "…" and `…` literals is never read as a placeholder. A
// quote preceded by a backslash does not close its literal.
//
// The parser only locates placeholders. Mapping them to a driver's native
// parameter syntax ($1, ?, @p1) and binding values is left to the caller.
package placeholders
