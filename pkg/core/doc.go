// Package core provides the widget tree: an arena of widgets addressed by
// generation-checked IDs, the Base node every widget embeds, and the generic
// containers that own children.
//
// # Ownership
//
// A Tree owns every widget adopted into it. Containers own their children
// exclusively: a child is linked into exactly one container at a time and is
// moved between containers with RemoveJust followed by PushBack. Releasing a
// widget through Tree.Release runs its Cleanup, which releases whatever it
// owns, and then retires its ID so stale references resolve to nil.
//
// # Sibling links
//
// Container keeps its children in a doubly linked list whose prev/next links
// are IDs stored on each child's Base. Only this package writes those links;
// widgets see them through the read-only Prev, Next and Parent accessors.
//
//	type column struct{ core.Container }
//
//	list := &column{}
//	tree.Adopt(list)
//	list.PushBack(a)
//	list.PushBack(b)
//	list.SwapChild(a, b) // b, a
//
// # Threading
//
// A Tree is not safe for concurrent use. Every operation runs to completion
// on the calling goroutine, normally the UI goroutine. Mutating a container's
// children while iterating them (for example removing a child from inside a
// DoEvent fan-out) is not supported.
package core
