// Package widgets provides the concrete containers and controls of LongUI.
//
// # Containers
//
// VerticalLayout and HorizontalLayout keep any number of children in a
// linked list and share the available space by weight:
//
//	list := widgets.NewVerticalLayout(tree)
//	list.SetViewSize(geometry.Size{Width: 300, Height: 600})
//	list.PushBack(widgets.NewControl(tree, "header"))
//
// Single holds exactly one child and stretches it over its viewport. While
// it has no child it holds the tree's placeholder.
//
// # Flags
//
// Children flagged FlagWidthFixed or FlagHeightFixed keep that dimension.
// FlagFloating children are skipped by the layout engines. FlagMarginal
// children go to the container's edge slots instead of its child list.
//
// # Markup
//
// Register adds a factory for every type to a markup.Registry under the
// names "vertical", "horizontal", "single" and "control".
package widgets
