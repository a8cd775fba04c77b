package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetadata(t *testing.T) {
	t.Run("with a dumped metadata file", func(t *testing.T) {
		asm := NewScriptAssembler()
		r := NewRenderer(asm)

		v := r.InitMetadata("sample_metadata", "sample-metadata")
		require.Equal(t, KindMetadata, v.Kind())

		rendered := asm.Render(false)
		assert.Contains(t, rendered, "from replay_api import Metadata")
		assert.Contains(t, rendered, `sample_metadata = Metadata.load("sample-metadata.tsv")`)
		assert.NotContains(t, rendered, "NOTE:")
	})

	t.Run("without a dumped file renders guidance and a raw placeholder", func(t *testing.T) {
		asm := NewScriptAssembler()
		r := NewRenderer(asm)

		r.InitMetadata("sample_metadata", "")

		rendered := asm.Render(false)
		assert.Contains(t, rendered, "# NOTE: You may substitute already-loaded Metadata")
		// The placeholder renders unquoted.
		assert.Contains(t, rendered, "sample_metadata = Metadata.load(<your metadata filepath>)")
		assert.NotContains(t, rendered, "'<your metadata filepath>'")
	})

	t.Run("records the variable origin for diagnostics", func(t *testing.T) {
		asm := NewScriptAssembler()
		NewRenderer(asm).InitMetadata("md", "f")
		assert.Equal(t, map[string]string{"md": "metadata"}, asm.InitDataRefs())
	})
}

func TestImportFromFormat(t *testing.T) {
	t.Run("with a canonical view type module", func(t *testing.T) {
		asm := NewScriptAssembler()
		r := NewRenderer(asm)

		v := r.ImportFromFormat("raw_seqs", "RawSequences",
			&ViewType{Name: "EMPSingleEndDirFmt", Module: "replay_formats.sequences"})
		require.Equal(t, KindArtifact, v.Kind())

		rendered := asm.Render(false)
		assert.Contains(t, rendered, "from replay_api import Artifact")
		assert.Contains(t, rendered, "from replay_formats.sequences import EMPSingleEndDirFmt")
		assert.Contains(t, rendered, "raw_seqs = Artifact.import_data(")
		assert.Contains(t, rendered, "    'RawSequences',")
		assert.Contains(t, rendered, "    <your data here>,")
		assert.Contains(t, rendered, "    EMPSingleEndDirFmt,")
		assert.Contains(t, rendered, "raw_seqs.save('raw_seqs')")
	})

	t.Run("ambiguous view type falls back to its quoted name", func(t *testing.T) {
		asm := NewScriptAssembler()
		r := NewRenderer(asm)

		r.ImportFromFormat("raw_seqs", "RawSequences", &ViewType{Name: "MysteryFormat"})

		rendered := asm.Render(false)
		assert.Contains(t, rendered, "    'MysteryFormat',")
		assert.NotContains(t, rendered, "import MysteryFormat")
	})

	t.Run("no view type omits the line", func(t *testing.T) {
		asm := NewScriptAssembler()
		NewRenderer(asm).ImportFromFormat("x", "SomeType", nil)

		rendered := asm.Render(false)
		lines := strings.Split(rendered, "\n")
		// import_data call has exactly two argument lines before the close.
		var callArgs int
		inCall := false
		for _, line := range lines {
			switch {
			case strings.HasSuffix(line, "Artifact.import_data("):
				inCall = true
			case line == ")":
				inCall = false
			case inCall:
				callArgs++
			}
		}
		assert.Equal(t, 2, callArgs)
	})

	t.Run("repeated imports record the Artifact symbol once", func(t *testing.T) {
		asm := NewScriptAssembler()
		r := NewRenderer(asm)
		r.ImportFromFormat("a", "T", nil)
		r.ImportFromFormat("b", "T", nil)

		rendered := asm.Render(false)
		assert.Equal(t, 1, strings.Count(rendered, "from replay_api import Artifact"))
	})
}
