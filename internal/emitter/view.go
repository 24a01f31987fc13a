package emitter

import (
	"fmt"

	"boltzc/internal/model"
	"boltzc/internal/planner"
)

// fieldView is one struct field of an emitted type: the slot for a single
// constructor argument.
type fieldView struct {
	Name   string
	GoType string
}

// ctorView is one constructor's emitted shape: its tag and its fields.
type ctorView struct {
	Name   string
	Fields []fieldView
}

// childView is one child call inside a branch, paired with the struct
// field it fills.
type childView struct {
	Field string
	List  bool
	Type  string
}

// branchView is one constructor alternative in a type's generator switch.
type branchView struct {
	Owner    string
	Ctor     string
	CumProb  float64
	Last     bool
	Weight   int
	Children []childView
}

// typeView is the complete emission unit for one declared type: its Go
// struct shape and its generator's branching table.
type typeView struct {
	Name          string
	Ctors         []ctorView
	Interruptible bool
	Branches      []branchView
}

// listView is a synthesised sequence-type generator.
type listView struct {
	ElementType  string
	ContinueProb float64
}

// docView is the top-level template data.
type docView struct {
	Package  string
	WithIO   bool
	WithShow bool
	RunID    string
	Rho      float64
	Types    []typeView
	Lists    []listView
	Root     string
}

func fieldName(ctor string, index int) string {
	return fmt.Sprintf("%s%d", ctor, index)
}

func buildDoc(s *model.System, ps *model.ParametrisedSystem, plan *planner.Plan, opts Options, runID string) (docView, error) {
	doc := docView{
		Package:  opts.Package,
		WithIO:   opts.WithIO,
		WithShow: opts.WithShow,
		RunID:    runID,
		Rho:      ps.Rho,
	}
	if len(s.Order) == 0 {
		return docView{}, fmt.Errorf("emitter: system has no types")
	}
	doc.Root = s.Order[0]

	for _, name := range s.Order {
		cons := s.Types[name]
		tv := typeView{Name: name}
		for _, c := range cons {
			cv := ctorView{Name: c.Name}
			for i, a := range c.Args {
				fn := fieldName(c.Name, i)
				switch a.Kind {
				case model.ArgType:
					cv.Fields = append(cv.Fields, fieldView{Name: fn, GoType: "*" + a.Type})
				case model.ArgList:
					cv.Fields = append(cv.Fields, fieldView{Name: fn, GoType: "[]" + a.Type})
				}
			}
			tv.Ctors = append(tv.Ctors, cv)
		}
		doc.Types = append(doc.Types, tv)
	}

	for _, tp := range plan.Types {
		for i := range doc.Types {
			if doc.Types[i].Name != tp.Name {
				continue
			}
			doc.Types[i].Interruptible = tp.Interruptible
			for _, b := range tp.Branches {
				bv := branchView{Owner: tp.Name, Ctor: b.Constructor.Name, CumProb: b.CumProb, Last: b.Last, Weight: b.Constructor.Weight}
				for j, ch := range b.Children {
					bv.Children = append(bv.Children, childView{
						Field: fieldName(b.Constructor.Name, j),
						List:  ch.Kind == model.ArgList,
						Type:  ch.Type,
					})
				}
				doc.Types[i].Branches = append(doc.Types[i].Branches, bv)
			}
		}
	}

	for _, lp := range plan.Lists {
		doc.Lists = append(doc.Lists, listView{ElementType: lp.ElementType, ContinueProb: lp.ContinueProb})
	}

	return doc, nil
}
