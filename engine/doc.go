// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening model databases and registering the SQL
// scalar functions used for embedding similarity queries. It keeps a thin,
// dependency-free surface so other packages can share the same driver
// instance without import cycles.
package engine
