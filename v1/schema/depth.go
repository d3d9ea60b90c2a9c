package schema

// ComplexDepth returns the depth of the schema built from d: 0 when d declares
// no nested types, 2 for one level of nesting, and one more for every further
// level, taking the maximum across siblings. A cycle among nested descriptors
// returns a *CycleError.
func ComplexDepth(d *Descriptor) (int, error) {
	return complexDepth(d, nil)
}

func complexDepth(d *Descriptor, stack []*Descriptor) (int, error) {
	for i, s := range stack {
		if s == d || (s.Type != nil && s.Type == d.Type) {
			path := make([]string, 0, len(stack)-i+1)
			for _, p := range stack[i:] {
				path = append(path, p.ID)
			}
			return 0, &CycleError{Path: append(path, d.ID)}
		}
	}
	if !d.IsComplex() {
		return 0, nil
	}

	stack = append(stack, d)
	deepest := 1
	for _, child := range d.Nested {
		cd, err := complexDepth(child, stack)
		if err != nil {
			return 0, err
		}
		if cd > deepest {
			deepest = cd
		}
	}
	return 1 + deepest, nil
}
