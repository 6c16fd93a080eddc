// Package hcl_adapter reads and writes killweb files in HCL.
//
//	killweb "strike" {
//	  component "Satellite" {
//	    task                 = "Find"
//	    task_arguments       = { probability = 0.9 }
//	    system_name          = "ISR"
//	    connected_components = ["Fusion"]
//	    attributes           = { color = "blue" }
//	  }
//	}
//
// Blocks keep their source order. The optional attributes object carries the
// free-form node attributes; every other field maps to the component
// specification directly.
package hcl_adapter
