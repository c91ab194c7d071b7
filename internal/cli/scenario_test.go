package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/treevent/pkg/treevent/dom"
)

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestRunListScenario(t *testing.T) {
	sc, err := LoadScenario("testdata/list.yaml")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Run(dom.NewDocument(), sc, &out))

	assert.Equal(t, []string{
		"inserted   ul#list",
		"inserted   li#a",
		"inserted   li#b",
		"inserted   li#c",
		"attributes li#b class (was <nil>)",
		"click      li#b",
		"click      li#b (at ul#list)",
		"removed    ul#list",
		"removed    li#a",
		"removed    li#b",
		"removed    li#c",
	}, lines(out.String()))
}

func TestRunDetachedTreeIsQuiet(t *testing.T) {
	sc, err := ParseScenario([]byte(`
steps:
  - {op: create, id: p, tag: div}
  - {op: create, id: c, tag: span}
  - {op: append, parent: p, id: c}
  - {op: detach, id: c}
  - {op: detach, id: c}
`))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Run(dom.NewDocument(), sc, &out))
	assert.Empty(t, out.String())
}

func TestRunInsertBefore(t *testing.T) {
	sc, err := ParseScenario([]byte(`
steps:
  - {op: create, id: a, tag: p}
  - {op: create, id: b, tag: p}
  - {op: create, id: c, tag: p}
  - {op: insert, parent: body, id: c}
  - {op: insert, parent: body, id: a, before: c}
  - {op: unset, id: a, name: id}
`))
	require.NoError(t, err)

	doc := dom.NewDocument()
	var out bytes.Buffer
	require.NoError(t, Run(doc, sc, &out))

	assert.Equal(t, []string{
		"inserted   p#c",
		"inserted   p#a",
		"attributes p id (was a)",
	}, lines(out.String()))
	require.Len(t, doc.Body().Children(), 2)
	assert.Equal(t, "c", doc.Body().Children()[1].ID())
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown op", `steps: [{op: explode}]`, `step 1 (explode): unknown op "explode"`},
		{"unknown node", `steps: [{op: destroy, id: ghost}]`, `unknown node "ghost"`},
		{"missing tag", `steps: [{op: create, id: x}]`, "tag is required"},
		{"missing id", `steps: [{op: text, text: hi}]`, "id is required"},
		{"duplicate id", `steps: [{op: create, id: x, tag: a}, {op: create, id: x, tag: b}]`, `step 2 (create): duplicate id "x"`},
		{"hierarchy", `steps: [{op: text, id: t}, {op: create, id: x, tag: a}, {op: append, parent: t, id: x}]`, "hierarchy request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := ParseScenario([]byte(tt.yaml))
			require.NoError(t, err)
			err = Run(dom.NewDocument(), sc, &bytes.Buffer{})
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseScenarioRejectsUnknownKeys(t *testing.T) {
	_, err := ParseScenario([]byte("steps: [{op: create, colour: red}]"))
	assert.ErrorContains(t, err, "parse scenario")

	sc, err := ParseScenario(nil)
	require.NoError(t, err)
	assert.Empty(t, sc.Steps)
}
