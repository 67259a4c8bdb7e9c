package core

// DebugMode controls the O(n) consistency checks on container operations:
// the membership scan in RemoveJust and IndexOf and the link walk after
// SwapChild. It defaults to true and to false in builds tagged longui_release.
var DebugMode = debugDefault

// SetDebugMode enables or disables the debug consistency checks.
func SetDebugMode(debug bool) {
	DebugMode = debug
}
