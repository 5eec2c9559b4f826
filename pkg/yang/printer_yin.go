package yang

// YIN output (RFC 7950 §13): the XML rendering of a YANG statement
// tree. Unlike YIN input (an external collaborator behind YINDecoder,
// since parsing arbitrary incoming XML is out of this module's
// scope), producing YIN from a tree this package already built is a
// direct structural mapping off Statement, so it is implemented
// directly rather than deferred to a collaborator.
//
// A statement's argument is written as an XML attribute called "name".
// The statements listed in yinElementArg (description, reference,
// contact, organization) instead carry their argument as the text of a
// nested <text> element. No other statement is in that table, so
// error-message, for example, also gets the "name" attribute.

import (
	"encoding/xml"
	"fmt"
	"io"
)

var yinElementArg = map[string]bool{
	"description":  true,
	"reference":    true,
	"contact":      true,
	"organization": true,
}

// PrintYIN serializes n's original Statement tree as YIN XML.
func PrintYIN(w io.Writer, n Node) error {
	s := n.Statement()
	if s == nil {
		return fmt.Errorf("yang: %s has no backing statement to print", n.NName())
	}
	return writeYINDoc(w, s)
}

// PrintYINEntry serializes e like PrintYIN, but with feature-disabled
// descendants left out unless opts.IncludeDisabledFeatures is set
// (spec.md §4.7); see filterStatement.
func PrintYINEntry(w io.Writer, e *Entry, opts *PrintOptions) error {
	s := filterStatement(e, opts)
	if s == nil {
		return nil
	}
	return writeYINDoc(w, s)
}

func writeYINDoc(w io.Writer, s *Statement) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := writeYINStatement(enc, s); err != nil {
		return err
	}
	return enc.Flush()
}

func writeYINStatement(enc *xml.Encoder, s *Statement) error {
	if s.Keyword == "" {
		for _, c := range s.SubStatements() {
			if err := writeYINStatement(enc, c); err != nil {
				return err
			}
		}
		return nil
	}

	start := xml.StartElement{Name: xml.Name{Local: s.Keyword}}
	arg, hasArg := s.Arg()
	if hasArg && !yinElementArg[s.Keyword] {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "name"}, Value: arg})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if hasArg && yinElementArg[s.Keyword] {
		textStart := xml.StartElement{Name: xml.Name{Local: "text"}}
		if err := enc.EncodeToken(textStart); err != nil {
			return err
		}
		if err := enc.EncodeToken(xml.CharData(arg)); err != nil {
			return err
		}
		if err := enc.EncodeToken(textStart.End()); err != nil {
			return err
		}
	}
	for _, c := range s.SubStatements() {
		if err := writeYINStatement(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
