package filesystem

import "github.com/brettbedarf/fstree"

// Reaches reports whether target is from itself or one of its descendants.
// from must be cycle-free.
func Reaches(from, target fstree.Node) bool {
	if from == target {
		return true
	}
	for _, c := range from.Children() {
		if Reaches(c, target) {
			return true
		}
	}
	return false
}
