// Package testutil provides testing utilities for meshdesc.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG and mesh fixtures built through the public
// creation API.
//
// # Fixtures
//
//	md := meshdesc.New()
//	g, polys := testutil.Grid(md, 4, 4)
//	testutil.Cube(md, 2)
//	testutil.RandomSoup(md, testutil.NewRNG(42), 100)
package testutil
