package scan

// Group is the unit of scheduling: either a single import, or a maximal
// run of contiguous scripts. Scripts separated only by other scripts share
// no ordering dependency, so they may be requested together; an import
// between them forces a synchronization point.
type Group struct {
	Kind Kind
	Deps []Dependency
}

// Grouped is the grouper's output. Stylesheets never block anything, so
// they are diverted out-of-band and do not occupy group slots.
type Grouped struct {
	Stylesheets []Dependency
	Groups      []Group
}

// Partition splits an ordered descriptor list into the parallel stylesheet
// bag and the ordered group sequence. Relative order of groups matches the
// original descriptor order. Imports are always solitary; adjacent scripts
// merge into one group.
func Partition(deps []Dependency) Grouped {
	var out Grouped
	for _, d := range deps {
		switch d.Kind {
		case KindStylesheet:
			out.Stylesheets = append(out.Stylesheets, d)
		case KindImport:
			out.Groups = append(out.Groups, Group{Kind: KindImport, Deps: []Dependency{d}})
		case KindScript:
			n := len(out.Groups)
			if n > 0 && out.Groups[n-1].Kind == KindScript {
				out.Groups[n-1].Deps = append(out.Groups[n-1].Deps, d)
				continue
			}
			out.Groups = append(out.Groups, Group{Kind: KindScript, Deps: []Dependency{d}})
		}
	}
	return out
}
