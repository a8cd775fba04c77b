package render

import (
	"fmt"
)

// ViewType names the format used when importing raw data. Module is the
// canonical module path the symbol can be imported from; when it is empty
// the type cannot be traced to a module and renders as a plain quoted name
// instead of gaining an import.
type ViewType struct {
	Name   string
	Module string
}

// InitMetadata renders the loading of metadata from disk and returns the
// usage variable bound to it. With a dumped metadata filename the load
// points at that file; otherwise a guidance comment and a raw placeholder
// path are rendered for the user to fill in.
func (r *Renderer) InitMetadata(name string, dumpedFilename string) UsageVariable {
	v := NewMetadataVariable(name)
	r.asm.RecordImport(runtimeModule, "Metadata")

	interfaceName := v.ToInterfaceName()
	var lines []string
	if dumpedFilename != "" {
		lines = []string{fmt.Sprintf("%s = Metadata.load(\"%s.tsv\")", interfaceName, dumpedFilename)}
	} else {
		r.asm.Comment(
			"NOTE: You may substitute already-loaded Metadata for the following, " +
				"or cast a pandas.DataFrame to Metadata as needed.")
		placeholder := Raw("<your metadata filepath>")
		lines = []string{fmt.Sprintf("%s = Metadata.load(%s)", interfaceName, placeholder.ToInterfaceName())}
	}

	r.asm.AddLines(lines)
	r.asm.NoteInitData(interfaceName, "metadata")
	return v
}

// ImportFromFormat renders the import of raw data as an artifact and
// returns the usage variable bound to it. The import path is always the
// raw "<your data here>" placeholder, since the original data location is
// not knowable from provenance. A view type with a canonical module gains
// an import record; one without falls back to its quoted textual name.
func (r *Renderer) ImportFromFormat(name, semanticType string, view *ViewType) UsageVariable {
	v := NewArtifactVariable(name)
	interfaceName := v.ToInterfaceName()
	importPath := Raw("<your data here>")

	lines := []string{
		fmt.Sprintf("%s = Artifact.import_data(", interfaceName),
		indent + quoteString(semanticType) + ",",
		indent + importPath.ToInterfaceName() + ",",
	}

	if view != nil {
		rendered := view.Name
		if view.Module != "" {
			r.asm.RecordImport(view.Module, view.Name)
		} else {
			rendered = quoteString(view.Name)
		}
		lines = append(lines, indent+rendered+",")
	}

	lines = append(lines,
		")",
		saveResultLine,
		fmt.Sprintf("%s.save('%s')", interfaceName, interfaceName),
		"",
	)

	r.asm.RecordImport(runtimeModule, "Artifact")
	r.asm.AddLines(lines)
	r.asm.NoteInitData(interfaceName, "import")
	return v
}
