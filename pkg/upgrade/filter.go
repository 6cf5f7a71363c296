package upgrade

// FilterNoOps drops plans that would not change the document
func FilterNoOps(paths []*Path) []*Path {
	var out []*Path
	for _, p := range paths {
		if !p.IsNoOp() {
			out = append(out, p)
		}
	}
	return out
}

// Resolved returns the plans that have a target plugin
func Resolved(paths []*Path) []*Path {
	var out []*Path
	for _, p := range paths {
		if p.HasCoordinates() {
			out = append(out, p)
		}
	}
	return out
}
