// Package catalog provides the static model registry used by the cost
// engine.
//
// The registry is a read-only catalog of model specifications (parameter
// count, context window, memory footprint, training feasibility) loaded
// once at startup. Lookups never mutate the catalog, so it is safe for
// concurrent use without locking.
//
// # Usage
//
//	reg := catalog.NewRegistry()
//	spec, err := reg.Get("llama-2-7b")
//	if err != nil {
//	    // *catalog.NotFoundError for unknown identifiers
//	}
//
//	local := reg.List(catalog.Filter{Feasibility: catalog.LocalFeasible})
package catalog
