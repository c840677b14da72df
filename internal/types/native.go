package types

// maxNativeDepth bounds walks up a backing chain.
const maxNativeDepth = 64

// Native names the host representation backing a declared type. The
// hierarchy is plain data: each backing links to its declared parent, and
// nothing is looked up through host reflection. A backing is fixed once
// declared.
type Native struct {
	name  string
	super *Native
}

// NewNative declares a backing named name whose parent is super (nil for a root).
func NewNative(name string, super *Native) *Native {
	return &Native{name: name, super: super}
}

// Name returns the backing name, e.g. java.math.BigDecimal.
func (n *Native) Name() string {
	if n == nil {
		return ""
	}
	return n.name
}

// Super returns the declared parent, nil for a root.
func (n *Native) Super() *Native {
	if n == nil {
		return nil
	}
	return n.super
}

// AssignableTo reports whether n is target or declares target as an ancestor.
// Backings match by name so separately built hierarchies agree.
func (n *Native) AssignableTo(target *Native) bool {
	if n == nil || target == nil {
		return false
	}
	found := false
	n.walk(func(cur *Native) bool {
		found = cur.name == target.name
		return !found
	})
	return found
}

// Chain returns n followed by its ancestors.
func (n *Native) Chain() []string {
	var out []string
	n.walk(func(cur *Native) bool {
		out = append(out, cur.name)
		return true
	})
	return out
}

// walk visits n and its ancestors until fn returns false. A chain that
// revisits a backing or exceeds maxNativeDepth ends the walk.
func (n *Native) walk(fn func(*Native) bool) {
	seen := make(map[*Native]struct{}, 8)
	for cur := n; cur != nil && len(seen) < maxNativeDepth; cur = cur.super {
		if _, ok := seen[cur]; ok {
			return
		}
		seen[cur] = struct{}{}
		if !fn(cur) {
			return
		}
	}
}
