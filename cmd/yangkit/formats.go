package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/schemaforge/yangkit/pkg/yang"
)

func init() {
	register(&formatter{
		name: "yang",
		f:    doPrintYANG,
		help: "re-serialize each module as YANG source",
	})
	register(&formatter{
		name: "yin",
		f:    doPrintYIN,
		help: "serialize each module as YIN (XML)",
	})
	register(&formatter{
		name: "mandatory",
		f:    doMandatory,
		help: "report mandatory-node violations",
	})
	register(&formatter{
		name: "nacm",
		f:    doNACM,
		help: "list effective NACM access-control flags by path",
	})
	register(&formatter{
		name: "fieldnames",
		f:    doFieldNames,
		help: "list the Go identifier each schema node's name would map to",
	})
}

func doPrintYANG(w io.Writer, entries []*yang.Entry, opts yang.PrintOptions) {
	for _, e := range entries {
		if err := yang.PrintYANGEntry(w, e, &opts); err != nil {
			fmt.Fprintln(w, err)
		}
	}
}

func doPrintYIN(w io.Writer, entries []*yang.Entry, opts yang.PrintOptions) {
	for _, e := range entries {
		if err := yang.PrintYINEntry(w, e, &opts); err != nil {
			fmt.Fprintln(w, err)
		}
	}
}

func doMandatory(w io.Writer, entries []*yang.Entry, opts yang.PrintOptions) {
	for _, e := range entries {
		for _, err := range yang.CheckMandatory(e, false) {
			fmt.Fprintln(w, err)
		}
	}
}

func doNACM(w io.Writer, entries []*yang.Entry, opts yang.PrintOptions) {
	for _, e := range entries {
		printNACM(w, e, "")
	}
}

// doFieldNames prints, for every node in entries, the Go identifier a
// struct-generating tool would derive from its YANG name via
// yang.CamelCase, the same mapping goyang-derived codegen uses to turn
// dashed YANG identifiers into exported Go field names.
func doFieldNames(w io.Writer, entries []*yang.Entry, opts yang.PrintOptions) {
	for _, e := range entries {
		printFieldName(w, e, "")
	}
}

func printFieldName(w io.Writer, e *yang.Entry, path string) {
	if e == nil {
		return
	}
	p := path + "/" + e.Name
	fmt.Fprintf(w, "%s: %s\n", p, yang.CamelCase(e.Name))
	var names []string
	for k := range e.Dir {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		printFieldName(w, e.Dir[k], p)
	}
}

func printNACM(w io.Writer, e *yang.Entry, path string) {
	if e == nil {
		return
	}
	p := path + "/" + e.Name
	if e.NACM != yang.NACMNone {
		fmt.Fprintf(w, "%s: %v\n", p, e.NACM)
	}
	var names []string
	for k := range e.Dir {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		printNACM(w, e.Dir[k], p)
	}
}
