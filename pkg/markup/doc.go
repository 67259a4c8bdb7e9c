// Package markup turns declarative YAML descriptions into widget trees.
//
// A description is a mapping with a type and optional geometry:
//
//	type: vertical
//	name: root
//	children:
//	  - type: control
//	    weight: 1
//	  - type: control
//	    height: 40
//	    margin: [0, 4, 0, 4]
//
// Each widget type registers a CreateFunc in a Registry. The Builder walks
// the description, calls the factory for every node, links the results
// with PushBack and finally sends EventTreeBuildingFinished to the root.
package markup
