//go:build !longui_release

package core

const debugDefault = true
