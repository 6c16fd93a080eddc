// Package jsonconfig reads and writes killweb files in JSON.
//
// The document is an object of graphs, each an object of components:
//
//	{
//	    "my_killweb": {
//	        "Sensor": {
//	            "attributes": {
//	                "task": "Find",
//	                "task_arguments": {"probability": 0.9},
//	                "system_name": "ISR"
//	            },
//	            "connected_components": ["Shooter"]
//	        }
//	    }
//	}
//
// Object key order is significant: graphs and components keep the order in
// which they appear, so the decoder walks the token stream instead of
// unmarshalling into maps.
package jsonconfig
