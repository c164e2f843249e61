package fstree

// Visitor is implemented by read-only tree walkers. Leaves call VisitFile;
// composites call EnterDir, then Accept on every child in order, then
// LeaveDir. Any returned error stops the walk and is propagated.
type Visitor interface {
	VisitFile(n Node) error
	EnterDir(n Node) error
	LeaveDir(n Node) error
}

// VisitorFuncs adapts plain functions to a [Visitor]. Nil funcs are skipped.
type VisitorFuncs struct {
	File  func(n Node) error
	Enter func(n Node) error
	Leave func(n Node) error
}

func (v VisitorFuncs) VisitFile(n Node) error {
	if v.File == nil {
		return nil
	}
	return v.File(n)
}

func (v VisitorFuncs) EnterDir(n Node) error {
	if v.Enter == nil {
		return nil
	}
	return v.Enter(n)
}

func (v VisitorFuncs) LeaveDir(n Node) error {
	if v.Leave == nil {
		return nil
	}
	return v.Leave(n)
}

var _ Visitor = VisitorFuncs{}

// Walk visits n and its descendants pre-order, passing each node's depth
// relative to n (n itself is depth 0).
func Walk(n Node, fn func(n Node, depth int) error) error {
	depth := 0
	return n.Accept(VisitorFuncs{
		File: func(f Node) error {
			return fn(f, depth)
		},
		Enter: func(d Node) error {
			if err := fn(d, depth); err != nil {
				return err
			}
			depth++
			return nil
		},
		Leave: func(Node) error {
			depth--
			return nil
		},
	})
}
