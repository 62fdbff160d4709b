// Package desc implements the schema reflection model that drives wire
// encoding: a tree of namespaces, message types, enums, fields and
// services, built programmatically or from the schema JSON dialect.
//
// # Building a schema
//
// Programmatic construction:
//
//	root := desc.NewRoot()
//	car := desc.NewMessage("Car")
//	wheels, _ := desc.NewField("wheels", 1, "int32")
//	_ = car.Add(wheels)
//	_ = root.Add(car)
//	_ = root.ResolveAll()
//
// Or from JSON:
//
//	root, _ := desc.FromJSON([]byte(`{
//	    "nested": {
//	        "Car": {
//	            "fields": {
//	                "wheels": {"id": 1, "type": "int32"}
//	            }
//	        }
//	    }
//	}`))
//	_ = root.ResolveAll()
//
// # Resolution
//
// Fields reference their types symbolically ("int32", "Car",
// ".pkg.Car"). ResolveAll walks the tree depth-first and binds every
// symbolic reference through scoped hierarchical lookup: relative paths
// try the current level first and climb toward the root; absolute paths
// (leading dot) restart at the root. Resolution also installs extension
// fields into their target types, computes default values, builds each
// field's encoder, and indexes every fully-qualified name by xxHash64
// for O(1) Root.LookupFull.
//
// # Encoding
//
// Message values are map[string]any. Type-level encoding walks fields in
// declaration order and dispatches to each field's encoder, built once
// at resolve time:
//
//	w := wire.NewWriter()
//	err := car.Encode(map[string]any{"wheels": 4}, w)
//	data := w.Finish()
//
// # Ownership and concurrency
//
// A parent namespace exclusively owns its nested entries; resolved type
// back-references are weak and never form ownership cycles. The tree is
// effectively immutable after ResolveAll: concurrent readers are safe,
// mutation concurrent with readers is not.
package desc
