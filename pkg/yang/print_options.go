package yang

// PrintOptions controls optional behavior shared by this package's
// printers (PrintYANGEntry, PrintYINEntry) and by cmd/yangkit's
// formatters built on top of them.
type PrintOptions struct {
	// IncludeDisabledFeatures, when true, causes printers to emit nodes
	// an if-feature statement currently disables (see EntryActive) as
	// well as active ones. The zero value skips disabled nodes: they
	// stay in the schema tree (FixChoice/mandatory checking still sees
	// them) but are hidden from rendered output, per spec.md §4.7.
	IncludeDisabledFeatures bool
}

func (o *PrintOptions) includeDisabled() bool {
	return o != nil && o.IncludeDisabledFeatures
}
